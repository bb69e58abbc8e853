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

// Package provider selects the OData serializer variant for a payload.
//
// Selection runs in a fixed order:
//
//  1. Special payload rules. Service documents, reference links, reference
//     link collections, error payloads and models are recognized from the
//     Go type alone; the model function is never invoked for them.
//  2. Type mapping. The model function is called once and the Go type is
//     mapped to its schema type through the model's typemap cache.
//  3. Request context. A terminal $count segment, or a terminal $value
//     segment on a primitive or enum type, selects RawValue.
//  4. Structural kind. Enum, primitive, collection (delta, resource set or
//     plain), and entity or complex types each map to one variant.
//
// # Usage
//
//	p := provider.New(provider.WithErrorType(reflect.TypeFor[*MyError]()))
//
//	path, _ := odatapath.Parse("/Customers(1)/Orders/$count")
//	v, err := p.PayloadVariant(reflect.TypeFor[[]Order](), provider.StaticModel(schema), path)
//	// v == provider.VariantRawValue
//
//	enc, err := p.PayloadSerializer(rt, modelFn, path)
//	if err != nil {
//	    return err
//	}
//	err = enc.WriteObject(ctx, w, value)
//
// # Encoder Registry
//
// Encoders are built by factories registered per variant. Each registry
// constructs at most one encoder per variant, including under concurrent
// first use. Failed constructions are not cached.
//
// # Errors
//
// Failures are returned as pkg/errors structured errors:
//
//   - INVALID_ARGUMENT: nil runtime type, nil model function or nil model
//   - UNMAPPABLE: the Go type has no schema type in the model
//   - UNSUPPORTED: the schema type kind has no serializer variant
//   - REGISTRY: no factory for the variant or the factory failed
//
// # Metrics
//
// Resolutions are counted in odata_serializer_resolutions_total by variant
// and outcome. Encoder constructions and construction failures are counted
// per variant.
package provider
