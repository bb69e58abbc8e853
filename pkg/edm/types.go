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
	"reflect"
	"strings"
)

// Type is a handle into the schema. Every type has exactly one kind.
type Type interface {
	Kind() TypeKind
	FullName() string
}

// Primitive type names.
const (
	NameBinary         = "Edm.Binary"
	NameBoolean        = "Edm.Boolean"
	NameByte           = "Edm.Byte"
	NameDate           = "Edm.Date"
	NameDateTimeOffset = "Edm.DateTimeOffset"
	NameDecimal        = "Edm.Decimal"
	NameDouble         = "Edm.Double"
	NameDuration       = "Edm.Duration"
	NameGuid           = "Edm.Guid"
	NameInt16          = "Edm.Int16"
	NameInt32          = "Edm.Int32"
	NameInt64          = "Edm.Int64"
	NameSByte          = "Edm.SByte"
	NameSingle         = "Edm.Single"
	NameString         = "Edm.String"
	NameTimeOfDay      = "Edm.TimeOfDay"
	NameUntyped        = "Edm.Untyped"
)

// PrimitiveType is one of the built-in Edm.* scalar types.
type PrimitiveType struct {
	Name string
}

func (t *PrimitiveType) Kind() TypeKind   { return KindPrimitive }
func (t *PrimitiveType) FullName() string { return t.Name }

var primitives = func() map[string]*PrimitiveType {
	m := make(map[string]*PrimitiveType)
	for _, n := range []string{
		NameBinary, NameBoolean, NameByte, NameDate, NameDateTimeOffset,
		NameDecimal, NameDouble, NameDuration, NameGuid, NameInt16,
		NameInt32, NameInt64, NameSByte, NameSingle, NameString, NameTimeOfDay,
	} {
		m[n] = &PrimitiveType{Name: n}
	}
	return m
}()

// Primitive returns the shared primitive type with the given name.
func Primitive(name string) (*PrimitiveType, bool) {
	p, ok := primitives[name]
	return p, ok
}

// MustPrimitive is like Primitive but panics on unknown names.
func MustPrimitive(name string) *PrimitiveType {
	p, ok := primitives[name]
	if !ok {
		panic("edm: unknown primitive type " + name)
	}
	return p
}

// EnumMember is a single named value of an enum type.
type EnumMember struct {
	Name  string
	Value int64
}

// EnumType is a named set of integral values.
type EnumType struct {
	Namespace string
	Name      string
	Members   []EnumMember
	Flags     bool
}

func (t *EnumType) Kind() TypeKind   { return KindEnum }
func (t *EnumType) FullName() string { return qualify(t.Namespace, t.Name) }

// Property is a structural or navigation property of a structured type.
type Property struct {
	Name       string
	Type       Type
	Nullable   bool
	Navigation bool
}

// StructuredType is an entity or complex type.
type StructuredType struct {
	Namespace  string
	Name       string
	Key        []string
	Properties []Property
	BaseType   *StructuredType
	Abstract   bool
	OpenType   bool

	kind TypeKind
}

// NewEntityType returns an empty entity type.
func NewEntityType(namespace, name string, key ...string) *StructuredType {
	return &StructuredType{Namespace: namespace, Name: name, Key: key, kind: KindEntity}
}

// NewComplexType returns an empty complex type.
func NewComplexType(namespace, name string) *StructuredType {
	return &StructuredType{Namespace: namespace, Name: name, kind: KindComplex}
}

func (t *StructuredType) Kind() TypeKind   { return t.kind }
func (t *StructuredType) FullName() string { return qualify(t.Namespace, t.Name) }

// AddProperty appends a property and returns t for chaining.
func (t *StructuredType) AddProperty(name string, typ Type) *StructuredType {
	t.Properties = append(t.Properties, Property{Name: name, Type: typ, Nullable: true})
	return t
}

// FindProperty looks up a property by name, walking base types.
func (t *StructuredType) FindProperty(name string) (Property, bool) {
	for cur := t; cur != nil; cur = cur.BaseType {
		for _, p := range cur.Properties {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Property{}, false
}

// CollectionType is a collection of an element type. Delta marks a
// collection of changes rather than a full snapshot.
type CollectionType struct {
	Element Type
	Delta   bool
}

// NewCollection returns a collection of elem.
func NewCollection(elem Type) *CollectionType {
	return &CollectionType{Element: elem}
}

// NewDeltaCollection returns a delta feed of elem.
func NewDeltaCollection(elem Type) *CollectionType {
	return &CollectionType{Element: elem, Delta: true}
}

func (t *CollectionType) Kind() TypeKind { return KindCollection }

func (t *CollectionType) FullName() string {
	elem := "?"
	if !IsNil(t.Element) {
		elem = t.Element.FullName()
	}
	return "Collection(" + elem + ")"
}

// EntityReferenceType is a reference to an entity type.
type EntityReferenceType struct {
	Entity *StructuredType
}

func (t *EntityReferenceType) Kind() TypeKind { return KindEntityReference }

func (t *EntityReferenceType) FullName() string {
	if t.Entity == nil {
		return "Ref(?)"
	}
	return "Ref(" + t.Entity.FullName() + ")"
}

// TypeDefinition is a named alias of a primitive type.
type TypeDefinition struct {
	Namespace      string
	Name           string
	UnderlyingType *PrimitiveType
}

func (t *TypeDefinition) Kind() TypeKind   { return KindTypeDefinition }
func (t *TypeDefinition) FullName() string { return qualify(t.Namespace, t.Name) }

// UntypedType is Edm.Untyped.
type UntypedType struct{}

func (UntypedType) Kind() TypeKind   { return KindUntyped }
func (UntypedType) FullName() string { return NameUntyped }

// IsNil reports whether t is nil or a typed nil pointer.
func IsNil(t Type) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// IsEntity reports whether t is an entity type.
func IsEntity(t Type) bool { return !IsNil(t) && t.Kind() == KindEntity }

// IsComplex reports whether t is a complex type.
func IsComplex(t Type) bool { return !IsNil(t) && t.Kind() == KindComplex }

// IsDeltaFeed reports whether t is a delta collection.
func IsDeltaFeed(t Type) bool {
	c, ok := t.(*CollectionType)
	return ok && c != nil && c.Delta
}

// ElementType returns the element type of a collection, or nil.
func ElementType(t Type) Type {
	if c, ok := t.(*CollectionType); ok && c != nil {
		return c.Element
	}
	return nil
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// splitCollection returns the element name of "Collection(X)".
func splitCollection(name string) (string, bool) {
	const prefix = "Collection("
	if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ")") {
		return strings.TrimSpace(name[len(prefix) : len(name)-1]), true
	}
	return "", false
}
