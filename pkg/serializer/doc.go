// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer provides writing of CLI reports and reading of schema
// documents in multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, indented representation
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Columns for values implementing Tabular, FIELD/VALUE pairs otherwise
//   - Suitable for terminal viewing
//   - Write-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to a file, falling back to stdout when path is empty:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// # Usage - Decoding
//
// Read a schema document, local or remote, with format detection:
//
//	doc, err := serializer.FromFileWithContext[edm.SchemaDocument](ctx, "https://example.com/sales.yaml")
//	if err != nil {
//	    return err
//	}
//
// Decoding is strict: unknown fields are rejected in both JSON and YAML.
//
// # Format Detection
//
// File extension-based detection (URL query strings are ignored):
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// # Remote Documents
//
// http and https paths are fetched with HTTPReader, which applies the
// timeouts in pkg/defaults, requires TLS 1.2 and caps the body at
// HTTPReaderMaxBytes.
package serializer
