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

package defaults

import "time"

// Environment variables consulted by odatactl flags.
const (
	// EnvModel names the schema file used when --model is not given.
	EnvModel = "ODATACTL_MODEL"

	// EnvFormat names the output format used when --format is not given.
	EnvFormat = "ODATACTL_FORMAT"
)

// Output defaults.
const (
	// OutputFormat is the default CLI output format.
	OutputFormat = "yaml"

	// LogLevel is the default log level when neither --log-level nor
	// LOG_LEVEL is set.
	LogLevel = "info"
)

// CLI timeouts for command-line operations.
const (
	// CLICommandTimeout bounds a single command, including schema loading
	// and writing the report.
	CLICommandTimeout = 30 * time.Second
)

// HTTP client timeouts for fetching remote schema documents.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)
