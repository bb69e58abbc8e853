// Package errors provides structured error types for the serializer
// resolution engine.
//
// Every failure returned by the resolver carries one of a small set of codes
// so that callers can map outcomes without string matching:
//
//   - INVALID_ARGUMENT: a required input was missing
//   - UNMAPPABLE: the runtime type has no schema counterpart
//   - UNSUPPORTED: the schema type kind has no serializer
//   - REGISTRY: the encoder registry failed to produce an instance
//
// Example usage:
//
//	variant, err := p.PayloadVariant(rt, modelFn, path)
//	switch errors.CodeOf(err) {
//	case errors.ErrCodeUnmappable, errors.ErrCodeUnsupported:
//	    // respond 406
//	case errors.ErrCodeInvalidArgument, errors.ErrCodeRegistry:
//	    // configuration fault
//	}
package errors
