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
	"bytes"
	"log/slog"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/errors"
	"github.com/NVIDIA/odata-serializer/pkg/odatapath"
	"github.com/NVIDIA/odata-serializer/pkg/payload"
)

type (
	customer struct{ ID int }
	address  struct{ City string }
	color    int
	orderRef struct{}
	unmapped struct{ C chan int }
	appError struct{ Reason string }
)

type links []url.URL

type linkSet struct{ all []*url.URL }

func (s linkSet) URLs() []*url.URL { return s.all }

// kindOnly is a schema type with an arbitrary kind.
type kindOnly edm.TypeKind

func (k kindOnly) Kind() edm.TypeKind { return edm.TypeKind(k) }
func (k kindOnly) FullName() string   { return "Test." + edm.TypeKind(k).String() }

func salesModel(t *testing.T) *edm.Schema {
	t.Helper()
	s := edm.NewSchema("Sales")
	cust := edm.NewEntityType("Sales", "Customer", "ID")
	addr := edm.NewComplexType("Sales", "Address")
	col := &edm.EnumType{Namespace: "Sales", Name: "Color"}
	ref := &edm.EntityReferenceType{Entity: cust}
	s.MustAddType(cust).MustAddType(addr).MustAddType(col)
	for _, b := range []struct {
		v any
		t edm.Type
	}{
		{customer{}, cust},
		{address{}, addr},
		{color(0), col},
		{orderRef{}, ref},
	} {
		if err := s.BindValue(b.v, b.t); err != nil {
			t.Fatalf("bind %T: %v", b.v, err)
		}
	}
	return s
}

func mustParse(t *testing.T, raw string) *odatapath.Path {
	t.Helper()
	p, err := odatapath.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return p
}

func quietProvider(opts ...Option) *Provider {
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	return New(opts...)
}

func TestEdmTypeVariant(t *testing.T) {
	cust := edm.NewEntityType("NS", "Customer", "ID")
	addr := edm.NewComplexType("NS", "Address")
	col := &edm.EnumType{Namespace: "NS", Name: "Color"}
	str := edm.MustPrimitive(edm.NameString)

	tests := []struct {
		name   string
		typ    edm.Type
		want   Variant
		wantOK bool
	}{
		{"enum", col, VariantEnum, true},
		{"primitive", str, VariantPrimitive, true},
		{"delta of entity", edm.NewDeltaCollection(cust), VariantDeltaFeed, true},
		{"delta of complex", edm.NewDeltaCollection(addr), VariantDeltaFeed, true},
		{"delta of primitive", edm.NewDeltaCollection(str), VariantDeltaFeed, true},
		{"collection of entity", edm.NewCollection(cust), VariantResourceSet, true},
		{"collection of complex", edm.NewCollection(addr), VariantResourceSet, true},
		{"collection of primitive", edm.NewCollection(str), VariantCollection, true},
		{"collection of enum", edm.NewCollection(col), VariantCollection, true},
		{"collection of collection", edm.NewCollection(edm.NewCollection(cust)), VariantCollection, true},
		{"complex", addr, VariantResource, true},
		{"entity", cust, VariantResource, true},
		{"entity reference", &edm.EntityReferenceType{Entity: cust}, VariantUnknown, false},
		{"type definition", &edm.TypeDefinition{Namespace: "NS", Name: "Code", UnderlyingType: str}, VariantUnknown, false},
		{"untyped", edm.UntypedType{}, VariantUnknown, false},
		{"path", kindOnly(edm.KindPath), VariantUnknown, false},
		{"none", kindOnly(edm.KindNone), VariantUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := EdmTypeVariant(tt.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("variant = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEdmTypeVariant_Nil(t *testing.T) {
	var typedNil *edm.StructuredType
	for name, typ := range map[string]edm.Type{"nil": nil, "typed nil": typedNil} {
		t.Run(name, func(t *testing.T) {
			_, _, err := EdmTypeVariant(typ)
			if !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}
}

func TestEdmTypeSerializer(t *testing.T) {
	p := quietProvider()

	enc, err := p.EdmTypeSerializer(edm.NewEntityType("NS", "E"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Variant() != VariantResource {
		t.Errorf("encoder variant = %s, want Resource", enc.Variant())
	}

	_, err = p.EdmTypeSerializer(edm.UntypedType{})
	if !errors.IsCode(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected UNSUPPORTED, got %v", err)
	}
}

func TestEdmPathVariant(t *testing.T) {
	p := quietProvider()
	cust := edm.NewEntityType("NS", "Customer", "ID")
	col := &edm.EnumType{Namespace: "NS", Name: "Color"}
	str := edm.MustPrimitive(edm.NameString)

	tests := []struct {
		name     string
		typ      edm.Type
		path     string
		want     Variant
		wantCode errors.ErrorCode
	}{
		{"entity without path", cust, "", VariantResource, ""},
		{"count on entity set", edm.NewCollection(cust), "/Customers/$count", VariantRawValue, ""},
		{"count on entity", cust, "/Customers(1)/Orders/$count", VariantRawValue, ""},
		{"count on untyped", edm.UntypedType{}, "/Things/$count", VariantRawValue, ""},
		{"value on entity", cust, "/Customers(1)/$value", VariantResource, ""},
		{"value on primitive", str, "/Customers(1)/Name/$value", VariantRawValue, ""},
		{"value on enum", col, "/Products(5)/Color/$value", VariantRawValue, ""},
		{"value not terminal", str, "/Customers(1)/$value/Name", VariantPrimitive, ""},
		{"ref path on entity", cust, "/Orders(1)/Customer/$ref", VariantResource, ""},
		{"unsupported kind", edm.UntypedType{}, "/Things", VariantUnknown, errors.ErrCodeUnsupported},
		{"nil type", nil, "/Things/$count", VariantUnknown, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path *odatapath.Path
			if tt.path != "" {
				path = mustParse(t, tt.path)
			}
			got, err := p.EdmPathVariant(tt.typ, path)
			if tt.wantCode != "" {
				if !errors.IsCode(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("variant = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPayloadVariant(t *testing.T) {
	model := salesModel(t)
	p := quietProvider(WithErrorType(reflect.TypeFor[*appError]()))

	tests := []struct {
		name     string
		rt       reflect.Type
		path     string
		want     Variant
		wantCode errors.ErrorCode
	}{
		{"entity", reflect.TypeFor[customer](), "", VariantResource, ""},
		{"entity pointer", reflect.TypeFor[*customer](), "", VariantResource, ""},
		{"complex", reflect.TypeFor[address](), "", VariantResource, ""},
		{"enum", reflect.TypeFor[color](), "", VariantEnum, ""},
		{"primitive", reflect.TypeFor[string](), "", VariantPrimitive, ""},
		{"time", reflect.TypeFor[time.Time](), "", VariantPrimitive, ""},
		{"entity slice", reflect.TypeFor[[]customer](), "", VariantResourceSet, ""},
		{"complex slice", reflect.TypeFor[[]*address](), "", VariantResourceSet, ""},
		{"primitive slice", reflect.TypeFor[[]int32](), "", VariantCollection, ""},
		{"delta feed", reflect.TypeFor[payload.DeltaSet[customer]](), "", VariantDeltaFeed, ""},
		{"entity count", reflect.TypeFor[customer](), "/Customers(1)/Orders/$count", VariantRawValue, ""},
		{"entity value", reflect.TypeFor[customer](), "/Customers(1)/$value", VariantResource, ""},
		{"primitive value", reflect.TypeFor[string](), "/Customers(1)/Name/$value", VariantRawValue, ""},
		{"enum value", reflect.TypeFor[color](), "/Products(5)/Color/$value", VariantRawValue, ""},
		{"service document", reflect.TypeFor[payload.ServiceDocument](), "", VariantServiceDocument, ""},
		{"service document pointer", reflect.TypeFor[*payload.ServiceDocument](), "", VariantServiceDocument, ""},
		{"url", reflect.TypeFor[url.URL](), "", VariantEntityReferenceLink, ""},
		{"url pointer", reflect.TypeFor[*url.URL](), "", VariantEntityReferenceLink, ""},
		{"reference link", reflect.TypeFor[payload.EntityReferenceLink](), "", VariantEntityReferenceLink, ""},
		{"url slice", reflect.TypeFor[[]*url.URL](), "", VariantEntityReferenceLinks, ""},
		{"url array", reflect.TypeFor[[2]url.URL](), "", VariantEntityReferenceLinks, ""},
		{"named url slice", reflect.TypeFor[links](), "", VariantEntityReferenceLinks, ""},
		{"url sequence", reflect.TypeFor[linkSet](), "", VariantEntityReferenceLinks, ""},
		{"reference links", reflect.TypeFor[*payload.EntityReferenceLinks](), "", VariantEntityReferenceLinks, ""},
		{"error payload", reflect.TypeFor[payload.Error](), "", VariantError, ""},
		{"error payload pointer", reflect.TypeFor[*payload.Error](), "", VariantError, ""},
		{"configured error type", reflect.TypeFor[*appError](), "", VariantError, ""},
		{"model", reflect.TypeFor[*edm.Schema](), "", VariantMetadata, ""},
		{"special type ignores count", reflect.TypeFor[payload.Error](), "/Errors/$count", VariantError, ""},
		{"unmapped struct", reflect.TypeFor[unmapped](), "", VariantUnknown, errors.ErrCodeUnmappable},
		{"map", reflect.TypeFor[map[string]int](), "", VariantUnknown, errors.ErrCodeUnmappable},
		{"unmapped with count", reflect.TypeFor[unmapped](), "/Things/$count", VariantUnknown, errors.ErrCodeUnmappable},
		{"entity reference kind", reflect.TypeFor[orderRef](), "", VariantUnknown, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path *odatapath.Path
			if tt.path != "" {
				path = mustParse(t, tt.path)
			}
			got, err := p.PayloadVariant(tt.rt, StaticModel(model), path)
			if tt.wantCode != "" {
				if !errors.IsCode(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				if got != VariantUnknown {
					t.Errorf("variant on error = %s, want Unknown", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("variant = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPayloadVariant_SpecialTypesNeverLoadModel(t *testing.T) {
	p := quietProvider(WithErrorType(reflect.TypeFor[appError]()))
	fatal := func() edm.Model {
		t.Fatal("model function must not be called")
		return nil
	}

	for _, rt := range []reflect.Type{
		reflect.TypeFor[payload.ServiceDocument](),
		reflect.TypeFor[*url.URL](),
		reflect.TypeFor[[]url.URL](),
		reflect.TypeFor[payload.Error](),
		reflect.TypeFor[appError](),
		reflect.TypeFor[*edm.Schema](),
	} {
		t.Run(rt.String(), func(t *testing.T) {
			if _, err := p.PayloadVariant(rt, fatal, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPayloadVariant_ErrorTypeIsExact(t *testing.T) {
	model := salesModel(t)
	p := quietProvider(WithErrorType(reflect.TypeFor[appError]()))

	// Only the configured type itself matches; its pointer is an ordinary type.
	_, err := p.PayloadVariant(reflect.TypeFor[*appError](), StaticModel(model), nil)
	if !errors.IsCode(err, errors.ErrCodeUnmappable) {
		t.Errorf("expected UNMAPPABLE for pointer to error type, got %v", err)
	}

	// Without a configured type, the payload error is still recognized.
	got, err := quietProvider().PayloadVariant(reflect.TypeFor[payload.Error](), StaticModel(model), nil)
	if err != nil || got != VariantError {
		t.Errorf("PayloadVariant() = %s, %v; want Error", got, err)
	}
}

func TestPayloadVariant_InvalidArguments(t *testing.T) {
	p := quietProvider()
	calls := 0
	counting := func() edm.Model {
		calls++
		return nil
	}

	tests := []struct {
		name    string
		rt      reflect.Type
		modelFn ModelFunc
	}{
		{"nil runtime type", nil, counting},
		{"nil model function", reflect.TypeFor[customer](), nil},
		{"nil model", reflect.TypeFor[customer](), counting},
		{"typed nil model", reflect.TypeFor[customer](), func() edm.Model {
			var s *edm.Schema
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.PayloadVariant(tt.rt, tt.modelFn, nil)
			if !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}

	// Only the nil-model case reaches the model function.
	if calls != 1 {
		t.Errorf("model function called %d times, want 1", calls)
	}
}

func TestPayloadVariant_ModelCalledOnce(t *testing.T) {
	model := salesModel(t)
	p := quietProvider()
	calls := 0
	fn := func() edm.Model {
		calls++
		return model
	}

	if _, err := p.PayloadVariant(reflect.TypeFor[[]customer](), fn, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("model function called %d times, want 1", calls)
	}
}

func TestPayloadSerializer(t *testing.T) {
	model := salesModel(t)

	t.Run("default encoder", func(t *testing.T) {
		p := quietProvider()
		enc, err := p.PayloadSerializer(reflect.TypeFor[[]customer](), StaticModel(model), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if enc.Variant() != VariantResourceSet {
			t.Errorf("encoder variant = %s, want ResourceSet", enc.Variant())
		}
	})

	t.Run("missing encoder is a registry error", func(t *testing.T) {
		p := quietProvider(WithRegistry(NewRegistry()))
		_, err := p.PayloadSerializer(reflect.TypeFor[customer](), StaticModel(model), nil)
		if !errors.IsCode(err, errors.ErrCodeRegistry) {
			t.Errorf("expected REGISTRY, got %v", err)
		}
	})

	t.Run("resolution error wins", func(t *testing.T) {
		p := quietProvider(WithRegistry(NewRegistry()))
		_, err := p.PayloadSerializer(reflect.TypeFor[unmapped](), StaticModel(model), nil)
		if !errors.IsCode(err, errors.ErrCodeUnmappable) {
			t.Errorf("expected UNMAPPABLE, got %v", err)
		}
	})
}

func TestRules_Order(t *testing.T) {
	want := []struct {
		name    string
		variant Variant
	}{
		{"service-document", VariantServiceDocument},
		{"entity-reference-link", VariantEntityReferenceLink},
		{"entity-reference-links", VariantEntityReferenceLinks},
		{"error", VariantError},
		{"metadata", VariantMetadata},
	}

	rules := quietProvider().Rules()
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, w := range want {
		if rules[i].Name != w.name || rules[i].Variant != w.variant {
			t.Errorf("rule %d = %s/%s, want %s/%s", i, rules[i].Name, rules[i].Variant, w.name, w.variant)
		}
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	p := quietProvider()
	rules := p.Rules()
	rules[0] = Rule{Name: "changed"}
	if p.Rules()[0].Name != "service-document" {
		t.Error("Rules() exposed internal slice")
	}
}

func TestPayloadVariant_Metrics(t *testing.T) {
	model := salesModel(t)
	p := quietProvider()

	resolved := resolutionsTotal.WithLabelValues("Resource", outcomeResolved)
	unmappable := resolutionsTotal.WithLabelValues(labelNone, "unmappable")
	beforeResolved := testutil.ToFloat64(resolved)
	beforeUnmappable := testutil.ToFloat64(unmappable)

	if _, err := p.PayloadVariant(reflect.TypeFor[customer](), StaticModel(model), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.PayloadVariant(reflect.TypeFor[unmapped](), StaticModel(model), nil); err == nil {
		t.Fatal("expected error")
	}

	if got := testutil.ToFloat64(resolved) - beforeResolved; got != 1 {
		t.Errorf("resolved delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(unmappable) - beforeUnmappable; got != 1 {
		t.Errorf("unmappable delta = %v, want 1", got)
	}
}
