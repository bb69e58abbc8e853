// Package cli implements the command-line interface for odatactl.
//
// # Overview
//
// odatactl answers the question "which OData serializer produces this
// payload?" for a schema document and an optional request path. It is a
// thin front end over pkg/provider and is useful for checking schema
// bindings and request-path overrides without running a service.
//
// # Commands
//
// resolve - Resolve a single input:
//
//	odatactl resolve --model sales.yaml --type Sales.Customer
//	odatactl resolve --model sales.yaml --payload '[]int32' --path '/Orders/$count'
//
// Exactly one of --type and --payload is required. Special payload kinds
// (service-document, reference-link, reference-links, url, error, metadata)
// never load the model, so --model may be omitted for them.
//
// explain - Resolve every type of a schema:
//
//	odatactl explain --model sales.yaml --format table
//
// Each declared type is listed along with its collection and, for entity
// types, its delta feed.
//
// variants - List serializer variants:
//
//	odatactl variants [resource-set raw-value ...]
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Command Flags
//
//	--model, -m   Schema document, YAML or JSON
//	--path, -p    Request resource path
//	--output, -o  Output file path (default: stdout)
//	--format, -t  Output format: yaml, json, table (default: yaml)
//
// # Environment Variables
//
//	LOG_LEVEL        Default for --log-level
//	ODATACTL_MODEL   Default for --model
//	ODATACTL_FORMAT  Default for --format
//
// # Exit Codes
//
//	0  Success
//	1  Any error: invalid arguments, unmappable or unsupported types
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/odata-serializer/pkg/cli.version=1.0.0'"
package cli
