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
	"net/url"
	"reflect"

	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/payload"
)

// Rule maps runtime types that satisfy Match to a fixed variant without
// consulting the model.
type Rule struct {
	Name    string
	Variant Variant
	Match   func(rt reflect.Type) bool
}

var (
	serviceDocumentType = reflect.TypeFor[payload.ServiceDocument]()
	urlType             = reflect.TypeFor[url.URL]()
	referenceLinkType   = reflect.TypeFor[payload.EntityReferenceLink]()
	referenceLinksType  = reflect.TypeFor[payload.EntityReferenceLinks]()
	urlSequenceType     = reflect.TypeFor[payload.URLSequence]()
	errorPayloadType    = reflect.TypeFor[payload.Error]()
	modelType           = reflect.TypeFor[edm.Model]()
)

// specialRules returns the ordered rule table. The first matching rule
// wins; predicates overlap, so the order is part of the contract.
func specialRules(errorType reflect.Type) []Rule {
	return []Rule{
		{
			Name:    "service-document",
			Variant: VariantServiceDocument,
			Match:   func(rt reflect.Type) bool { return sameType(rt, serviceDocumentType) },
		},
		{
			Name:    "entity-reference-link",
			Variant: VariantEntityReferenceLink,
			Match: func(rt reflect.Type) bool {
				return sameType(rt, urlType) || sameType(rt, referenceLinkType)
			},
		},
		{
			Name:    "entity-reference-links",
			Variant: VariantEntityReferenceLinks,
			Match: func(rt reflect.Type) bool {
				return isURLSequence(rt) || sameType(rt, referenceLinksType)
			},
		},
		{
			Name:    "error",
			Variant: VariantError,
			Match: func(rt reflect.Type) bool {
				return sameType(rt, errorPayloadType) || (errorType != nil && rt == errorType)
			},
		},
		{
			Name:    "metadata",
			Variant: VariantMetadata,
			Match:   func(rt reflect.Type) bool { return rt.Implements(modelType) },
		},
	}
}

// sameType matches target and a pointer to target.
func sameType(rt, target reflect.Type) bool {
	return rt == target || (rt.Kind() == reflect.Pointer && rt.Elem() == target)
}

// isURLSequence matches slices and arrays of URLs and URLSequence
// implementations.
func isURLSequence(rt reflect.Type) bool {
	if k := rt.Kind(); k == reflect.Slice || k == reflect.Array {
		if sameType(rt.Elem(), urlType) {
			return true
		}
	}
	return rt.Implements(urlSequenceType)
}
