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

// Package defaults provides centralized configuration constants for odatactl.
//
// It defines the environment variables the CLI reads, default output
// settings and command timeouts.
//
// # Environment
//
//   - ODATACTL_MODEL: schema file for --model
//   - ODATACTL_FORMAT: output format for --format
//   - LOG_LEVEL: log level, see pkg/logging
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
//	defer cancel()
package defaults
