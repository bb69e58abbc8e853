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

package edm

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/NVIDIA/odata-serializer/pkg/errors"
)

// Model is the schema a payload is validated and mapped against.
// Implementations must be safe for concurrent reads.
type Model interface {
	Namespace() string
	// FindType resolves a qualified, unqualified, primitive or
	// "Collection(...)" type name.
	FindType(name string) (Type, bool)
	// Types returns the named types in declaration order.
	Types() []Type
	// Binding returns the schema type explicitly bound to a Go type.
	Binding(rt reflect.Type) (Type, bool)
	// Annotations is per-model storage for derived data such as caches.
	Annotations() *Annotations
}

// Annotations holds arbitrary values keyed by comparable keys.
type Annotations struct {
	m sync.Map
}

// Load returns the value stored for key.
func (a *Annotations) Load(key any) (any, bool) {
	return a.m.Load(key)
}

// LoadOrStore returns the existing value for key if present, otherwise it
// stores and returns value. loaded reports whether the value was present.
func (a *Annotations) LoadOrStore(key, value any) (actual any, loaded bool) {
	return a.m.LoadOrStore(key, value)
}

// Schema is the in-memory Model implementation.
type Schema struct {
	namespace string

	mu       sync.RWMutex
	types    map[string]Type
	order    []string
	bindings map[reflect.Type]Type

	annotations Annotations
}

var _ Model = (*Schema)(nil)

// IsNilModel reports whether m is nil or a typed nil pointer.
func IsNilModel(m Model) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// NewSchema creates an empty schema for the given namespace.
func NewSchema(namespace string) *Schema {
	return &Schema{
		namespace: namespace,
		types:     make(map[string]Type),
		bindings:  make(map[reflect.Type]Type),
	}
}

// Namespace returns the schema namespace.
func (s *Schema) Namespace() string { return s.namespace }

// Annotations returns the schema annotation store.
func (s *Schema) Annotations() *Annotations { return &s.annotations }

// AddType declares a named type. Collections and primitives are implicit
// and cannot be declared.
func (s *Schema) AddType(t Type) error {
	if IsNil(t) {
		return errors.New(errors.ErrCodeInvalidArgument, "nil schema type")
	}
	switch t.(type) {
	case *CollectionType, *PrimitiveType:
		return errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"type cannot be declared", map[string]any{"type": t.FullName()})
	}

	name := t.FullName()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.types[name]; exists {
		return fmt.Errorf("type %s already declared", name)
	}
	s.types[name] = t
	s.order = append(s.order, name)
	return nil
}

// MustAddType is like AddType but panics on error.
func (s *Schema) MustAddType(t Type) *Schema {
	if err := s.AddType(t); err != nil {
		panic(err)
	}
	return s
}

// Bind associates a Go type with a schema type. Pointer types are bound
// through their element type.
func (s *Schema) Bind(rt reflect.Type, t Type) error {
	if rt == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "nil runtime type")
	}
	if IsNil(t) {
		return errors.New(errors.ErrCodeInvalidArgument, "nil schema type")
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.bindings[rt]; ok && old != t {
		return fmt.Errorf("type %s already bound to %s", rt, old.FullName())
	}
	s.bindings[rt] = t
	return nil
}

// BindValue binds the dynamic type of v.
func (s *Schema) BindValue(v any, t Type) error {
	return s.Bind(reflect.TypeOf(v), t)
}

// Binding returns the schema type bound to rt, unwrapping pointers.
func (s *Schema) Binding(rt reflect.Type) (Type, bool) {
	if rt == nil {
		return nil, false
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.bindings[rt]
	return t, ok
}

// FindType resolves name against the schema.
func (s *Schema) FindType(name string) (Type, bool) {
	if elem, ok := splitCollection(name); ok {
		et, found := s.FindType(elem)
		if !found {
			return nil, false
		}
		return NewCollection(et), true
	}
	if name == NameUntyped {
		return UntypedType{}, true
	}
	if p, ok := primitives[name]; ok {
		return p, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.types[name]; ok {
		return t, true
	}
	if t, ok := s.types[qualify(s.namespace, name)]; ok {
		return t, true
	}
	return nil, false
}

// Types returns the declared types in declaration order.
func (s *Schema) Types() []Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Type, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.types[n])
	}
	return out
}
