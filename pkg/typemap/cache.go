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

// Package typemap translates Go types into their schema counterparts.
//
// A Cache is bound to one model and memoizes lookups, including
// misses. Use For to obtain the cache stored on a model so that every
// caller shares it.
package typemap

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/payload"
)

// maxDepth bounds element unwrapping for self-referential slice types.
const maxDepth = 32

var (
	timeType      = reflect.TypeFor[time.Time]()
	durationType  = reflect.TypeFor[time.Duration]()
	uuidType      = reflect.TypeFor[uuid.UUID]()
	bytesType     = reflect.TypeFor[[]byte]()
	deltaFeedType = reflect.TypeFor[payload.DeltaFeed]()
)

type annotationKey struct{}

// entry wraps a lookup result so that misses can be cached too.
type entry struct {
	t edm.Type
}

// Cache maps Go types to schema types for a single model.
type Cache struct {
	model edm.Model
	types sync.Map // map[reflect.Type]entry
}

// New returns an empty cache for model.
func New(model edm.Model) *Cache {
	return &Cache{model: model}
}

// For returns the cache stored on model, creating it on first use.
// It returns nil for a nil model.
func For(model edm.Model) *Cache {
	if edm.IsNilModel(model) {
		return nil
	}
	ann := model.Annotations()
	if v, ok := ann.Load(annotationKey{}); ok {
		return v.(*Cache)
	}
	v, _ := ann.LoadOrStore(annotationKey{}, New(model))
	return v.(*Cache)
}

// Model returns the model the cache is bound to.
func (c *Cache) Model() edm.Model {
	return c.model
}

// EdmType returns the schema type for rt, or nil when rt has no
// counterpart in the model.
func (c *Cache) EdmType(rt reflect.Type) edm.Type {
	t, _ := c.lookup(rt, 0)
	return t
}

// Len returns the number of memoized lookups.
func (c *Cache) Len() int {
	n := 0
	c.types.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// lookup reports truncated when the depth limit cut the lookup short.
// Truncated results depend on the starting depth and are not memoized.
func (c *Cache) lookup(rt reflect.Type, depth int) (edm.Type, bool) {
	if rt == nil {
		return nil, false
	}
	if depth > maxDepth {
		return nil, true
	}
	if v, ok := c.types.Load(rt); ok {
		return v.(entry).t, false
	}
	t, truncated := c.resolve(rt, depth)
	if truncated {
		return t, true
	}
	v, _ := c.types.LoadOrStore(rt, entry{t: t})
	return v.(entry).t, false
}

func (c *Cache) resolve(rt reflect.Type, depth int) (edm.Type, bool) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if t, ok := c.model.Binding(rt); ok {
		return t, false
	}

	if elem, ok := deltaElement(rt); ok {
		et, truncated := c.lookup(elem, depth+1)
		if et == nil {
			return nil, truncated
		}
		return edm.NewDeltaCollection(et), false
	}

	if p := wellKnown(rt); p != nil {
		return p, false
	}

	//nolint:exhaustive // unlisted kinds have no schema counterpart
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		et, truncated := c.lookup(rt.Elem(), depth+1)
		if et == nil {
			return nil, truncated
		}
		return edm.NewCollection(et), false
	default:
		return primitiveFor(rt.Kind()), false
	}
}

func wellKnown(rt reflect.Type) edm.Type {
	switch rt {
	case timeType:
		return edm.MustPrimitive(edm.NameDateTimeOffset)
	case durationType:
		return edm.MustPrimitive(edm.NameDuration)
	case uuidType:
		return edm.MustPrimitive(edm.NameGuid)
	}
	if rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8 && rt.ConvertibleTo(bytesType) {
		return edm.MustPrimitive(edm.NameBinary)
	}
	return nil
}

func primitiveFor(k reflect.Kind) edm.Type {
	var name string
	//nolint:exhaustive // unlisted kinds are unmappable
	switch k {
	case reflect.Bool:
		name = edm.NameBoolean
	case reflect.String:
		name = edm.NameString
	case reflect.Int8:
		name = edm.NameSByte
	case reflect.Uint8:
		name = edm.NameByte
	case reflect.Int16:
		name = edm.NameInt16
	case reflect.Uint16, reflect.Int32:
		name = edm.NameInt32
	case reflect.Uint32, reflect.Int, reflect.Int64:
		name = edm.NameInt64
	case reflect.Uint, reflect.Uint64:
		name = edm.NameDecimal
	case reflect.Float32:
		name = edm.NameSingle
	case reflect.Float64:
		name = edm.NameDouble
	default:
		return nil
	}
	return edm.MustPrimitive(name)
}

// deltaElement returns the element type of a payload.DeltaFeed implementation.
func deltaElement(rt reflect.Type) (reflect.Type, bool) {
	if rt.Kind() == reflect.Interface {
		return nil, false
	}
	var v reflect.Value
	switch {
	case rt.Implements(deltaFeedType):
		v = reflect.Zero(rt)
	case reflect.PointerTo(rt).Implements(deltaFeedType):
		v = reflect.New(rt)
	default:
		return nil, false
	}
	return v.Interface().(payload.DeltaFeed).DeltaElementType(), true
}
