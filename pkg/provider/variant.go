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
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Variant names a serializer that can produce a payload.
type Variant int

const (
	// VariantUnknown is the zero value; no resolution ever returns it.
	VariantUnknown Variant = iota
	VariantEnum
	VariantPrimitive
	VariantDeltaFeed
	VariantResourceSet
	VariantCollection
	VariantResource
	VariantServiceDocument
	VariantEntityReferenceLink
	VariantEntityReferenceLinks
	VariantError
	VariantMetadata
	VariantRawValue
)

var variantNames = [...]string{
	VariantUnknown:              "Unknown",
	VariantEnum:                 "Enum",
	VariantPrimitive:            "Primitive",
	VariantDeltaFeed:            "DeltaFeed",
	VariantResourceSet:          "ResourceSet",
	VariantCollection:           "Collection",
	VariantResource:             "Resource",
	VariantServiceDocument:      "ServiceDocument",
	VariantEntityReferenceLink:  "EntityReferenceLink",
	VariantEntityReferenceLinks: "EntityReferenceLinks",
	VariantError:                "Error",
	VariantMetadata:             "Metadata",
	VariantRawValue:             "RawValue",
}

// String returns the variant name.
func (v Variant) String() string {
	if v >= 0 && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Valid reports whether v is one of the producible variants.
func (v Variant) Valid() bool {
	return v > VariantUnknown && v <= VariantRawValue
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Variants returns every producible variant in declaration order.
func Variants() []Variant {
	out := make([]Variant, 0, int(VariantRawValue))
	for v := VariantEnum; v <= VariantRawValue; v++ {
		out = append(out, v)
	}
	return out
}

// ParseVariant parses a variant name. Matching ignores case, dashes and
// underscores, so "raw-value" and "RawValue" are equivalent.
func ParseVariant(s string) (Variant, error) {
	fold := cases.Fold()
	want := fold.String(normalizeName(s))
	for _, v := range Variants() {
		if fold.String(v.String()) == want {
			return v, nil
		}
	}
	return VariantUnknown, fmt.Errorf("unknown serializer variant: %q", s)
}

func normalizeName(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
}
