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

package provider

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/errors"
	"github.com/NVIDIA/odata-serializer/pkg/odatapath"
	"github.com/NVIDIA/odata-serializer/pkg/typemap"
)

// ModelFunc produces the model lazily. It is only invoked when no special
// payload rule matches.
type ModelFunc func() edm.Model

// Provider selects the serializer for a payload. It holds no mutable state
// of its own and is safe for concurrent use.
type Provider struct {
	registry  *Registry
	errorType reflect.Type
	rules     []Rule
	logger    *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithErrorType registers an additional runtime type that is serialized as
// an error payload.
func WithErrorType(rt reflect.Type) Option {
	return func(p *Provider) {
		p.errorType = rt
	}
}

// WithRegistry sets the encoder registry. The default is NewDefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(p *Provider) {
		p.registry = r
	}
}

// WithLogger sets the logger used for debug output. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// New creates a Provider.
func New(opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = NewDefaultRegistry()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.rules = specialRules(p.errorType)
	return p
}

// Registry returns the encoder registry.
func (p *Provider) Registry() *Registry {
	return p.registry
}

// Rules returns a copy of the special payload rules in evaluation order.
func (p *Provider) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// EdmTypeVariant maps a schema type to a variant by its structural kind.
// ok is false when the kind has no variant; that is not an error.
func EdmTypeVariant(t edm.Type) (v Variant, ok bool, err error) {
	if edm.IsNil(t) {
		return VariantUnknown, false, errors.New(errors.ErrCodeInvalidArgument, "nil schema type")
	}

	//nolint:exhaustive // every other kind is unsupported
	switch t.Kind() {
	case edm.KindEnum:
		return VariantEnum, true, nil
	case edm.KindPrimitive:
		return VariantPrimitive, true, nil
	case edm.KindCollection:
		// Delta takes precedence over the element check.
		if edm.IsDeltaFeed(t) {
			return VariantDeltaFeed, true, nil
		}
		elem := edm.ElementType(t)
		if edm.IsEntity(elem) || edm.IsComplex(elem) {
			return VariantResourceSet, true, nil
		}
		return VariantCollection, true, nil
	case edm.KindComplex, edm.KindEntity:
		return VariantResource, true, nil
	default:
		return VariantUnknown, false, nil
	}
}

// EdmTypeSerializer returns the encoder for a schema type.
func (p *Provider) EdmTypeSerializer(t edm.Type) (ODataSerializer, error) {
	v, ok, err := EdmTypeVariant(t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, unsupported(t)
	}
	return p.registry.Get(v)
}

// EdmPathVariant selects the variant for an already mapped schema type,
// applying the $count and $value overrides of path.
func (p *Provider) EdmPathVariant(t edm.Type, path *odatapath.Path) (Variant, error) {
	if edm.IsNil(t) {
		return VariantUnknown, errors.New(errors.ErrCodeInvalidArgument, "nil schema type")
	}

	isCount := odatapath.IsCountRequest(path)
	isRawValue := odatapath.IsRawValueRequest(path)
	scalar := t.Kind() == edm.KindPrimitive || t.Kind() == edm.KindEnum
	if (scalar && isRawValue) || isCount {
		return VariantRawValue, nil
	}

	v, ok, err := EdmTypeVariant(t)
	if err != nil {
		return VariantUnknown, err
	}
	if !ok {
		return VariantUnknown, unsupported(t)
	}
	return v, nil
}

// PayloadVariant selects the variant for a value of runtime type rt.
//
// Special payload rules are evaluated first, in order, and never invoke
// modelFn. Otherwise modelFn is called once, rt is mapped to its schema
// type and EdmPathVariant decides.
func (p *Provider) PayloadVariant(rt reflect.Type, modelFn ModelFunc, path *odatapath.Path) (Variant, error) {
	v, err := p.payloadVariant(rt, modelFn, path)
	if err != nil {
		resolutionsTotal.WithLabelValues(labelNone, strings.ToLower(string(errors.CodeOf(err)))).Inc()
		p.logger.Debug("payload resolution failed", "type", typeName(rt), "path", path.String(), "error", err)
		return VariantUnknown, err
	}
	resolutionsTotal.WithLabelValues(v.String(), outcomeResolved).Inc()
	p.logger.Debug("payload resolved", "type", typeName(rt), "path", path.String(), "variant", v.String())
	return v, nil
}

func (p *Provider) payloadVariant(rt reflect.Type, modelFn ModelFunc, path *odatapath.Path) (Variant, error) {
	if rt == nil {
		return VariantUnknown, errors.New(errors.ErrCodeInvalidArgument, "nil runtime type")
	}
	if modelFn == nil {
		return VariantUnknown, errors.New(errors.ErrCodeInvalidArgument, "nil model function")
	}

	for _, r := range p.rules {
		if r.Match(rt) {
			return r.Variant, nil
		}
	}

	model := modelFn()
	if edm.IsNilModel(model) {
		return VariantUnknown, errors.New(errors.ErrCodeInvalidArgument, "model function returned nil")
	}

	t := typemap.For(model).EdmType(rt)
	if edm.IsNil(t) {
		return VariantUnknown, errors.NewWithContext(errors.ErrCodeUnmappable,
			"no schema type for runtime type", map[string]any{"type": rt.String()})
	}
	return p.EdmPathVariant(t, path)
}

// PayloadSerializer resolves the variant for rt and returns its encoder.
func (p *Provider) PayloadSerializer(rt reflect.Type, modelFn ModelFunc, path *odatapath.Path) (ODataSerializer, error) {
	v, err := p.PayloadVariant(rt, modelFn, path)
	if err != nil {
		return nil, err
	}
	return p.registry.Get(v)
}

// StaticModel returns a ModelFunc that always yields m.
func StaticModel(m edm.Model) ModelFunc {
	return func() edm.Model { return m }
}

func unsupported(t edm.Type) error {
	return errors.NewWithContext(errors.ErrCodeUnsupported, "no serializer for schema type kind",
		map[string]any{"type": t.FullName(), "kind": t.Kind().String()})
}

func typeName(rt reflect.Type) string {
	if rt == nil {
		return "<nil>"
	}
	return rt.String()
}
