// Package logging provides structured logging utilities for the odatactl tool and the resolver packages.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("odatactl", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("resolving payload", "type", "NS.Customer")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("odatactl", "v2.0.0", "debug")
//	logger.Info("model loaded", "types", 12)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("odatactl", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug odatactl resolve --model schema.yaml --type NS.Customer
//	LOG_LEVEL=error odatactl explain --model schema.yaml
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "model loaded",
//	    "module": "odatactl",
//	    "version": "v1.0.0",
//	    "types": 12
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "provider.(*Provider).PayloadVariant",
//	        "file": "provider.go",
//	        "line": 45
//	    },
//	    "msg": "resolving payload",
//	    "module": "odatactl",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("myapp", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("payload resolved",
//	    "type", "NS.Customer",
//	    "path", "/Customers(1)/$count",
//	    "variant", "RawValue",
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("cache hit", "key", key) // Development/troubleshooting
//	slog.Info("model loaded")           // Normal operations
//	slog.Warn("unknown format")         // Potential issues
//	slog.Error("model load failed")     // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to resolve payload",
//	    "error", err,
//	    "type", typeName,
//	    "path", path,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging
//   - pkg/provider - resolution and encoder construction debug logs
package logging
