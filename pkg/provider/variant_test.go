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
	"encoding/json"
	"testing"
)

func TestVariant_String(t *testing.T) {
	tests := []struct {
		v    Variant
		want string
	}{
		{VariantUnknown, "Unknown"},
		{VariantEnum, "Enum"},
		{VariantDeltaFeed, "DeltaFeed"},
		{VariantEntityReferenceLinks, "EntityReferenceLinks"},
		{VariantRawValue, "RawValue"},
		{Variant(42), "Variant(42)"},
		{Variant(-1), "Variant(-1)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Variant(%d).String() = %q, want %q", int(tt.v), got, tt.want)
		}
	}
}

func TestVariants(t *testing.T) {
	vs := Variants()
	if len(vs) != 12 {
		t.Fatalf("got %d variants, want 12", len(vs))
	}
	seen := make(map[string]bool)
	for _, v := range vs {
		if !v.Valid() {
			t.Errorf("%s is not valid", v)
		}
		if seen[v.String()] {
			t.Errorf("duplicate variant name %s", v)
		}
		seen[v.String()] = true
	}
	if VariantUnknown.Valid() {
		t.Error("Unknown must not be valid")
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"ResourceSet", VariantResourceSet, false},
		{"resourceset", VariantResourceSet, false},
		{"resource-set", VariantResourceSet, false},
		{"RESOURCE_SET", VariantResourceSet, false},
		{" raw value ", VariantRawValue, false},
		{"EntityReferenceLink", VariantEntityReferenceLink, false},
		{"entity-reference-links", VariantEntityReferenceLinks, false},
		{"Unknown", VariantUnknown, true},
		{"", VariantUnknown, true},
		{"feed", VariantUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseVariant(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestVariant_MarshalText(t *testing.T) {
	b, err := json.Marshal(map[string]Variant{"v": VariantDeltaFeed})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"v":"DeltaFeed"}` {
		t.Errorf("got %s", b)
	}
}
