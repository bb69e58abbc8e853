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
	"context"
	"fmt"
	"log/slog"

	"github.com/NVIDIA/odata-serializer/pkg/errors"
	"github.com/NVIDIA/odata-serializer/pkg/serializer"
)

// SchemaDocument is the file representation of a Schema.
//
//	namespace: Sales
//	enumTypes:
//	  - name: Color
//	    members: [Red, Green]
//	complexTypes:
//	  - name: Address
//	    properties:
//	      - {name: City, type: Edm.String}
//	entityTypes:
//	  - name: Customer
//	    key: [ID]
//	    properties:
//	      - {name: ID, type: Edm.Int32}
//	      - {name: Orders, type: Collection(Sales.Order), navigation: true}
type SchemaDocument struct {
	Namespace       string               `json:"namespace" yaml:"namespace"`
	EnumTypes       []EnumDocument       `json:"enumTypes,omitempty" yaml:"enumTypes,omitempty"`
	TypeDefinitions []TypeDefDocument    `json:"typeDefinitions,omitempty" yaml:"typeDefinitions,omitempty"`
	ComplexTypes    []StructuredDocument `json:"complexTypes,omitempty" yaml:"complexTypes,omitempty"`
	EntityTypes     []StructuredDocument `json:"entityTypes,omitempty" yaml:"entityTypes,omitempty"`
}

// EnumDocument describes an enum type. Members without explicit values
// are numbered by position.
type EnumDocument struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
	Flags   bool     `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// TypeDefDocument describes a type definition.
type TypeDefDocument struct {
	Name           string `json:"name" yaml:"name"`
	UnderlyingType string `json:"underlyingType" yaml:"underlyingType"`
}

// StructuredDocument describes an entity or complex type.
type StructuredDocument struct {
	Name       string             `json:"name" yaml:"name"`
	BaseType   string             `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Abstract   bool               `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Open       bool               `json:"open,omitempty" yaml:"open,omitempty"`
	Key        []string           `json:"key,omitempty" yaml:"key,omitempty"`
	Properties []PropertyDocument `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertyDocument describes a property.
type PropertyDocument struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Nullable   *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Navigation bool   `json:"navigation,omitempty" yaml:"navigation,omitempty"`
}

// LoadFile reads a JSON or YAML schema document and builds a Schema.
func LoadFile(path string) (*Schema, error) {
	return LoadFileContext(context.Background(), path)
}

// LoadFileContext is like LoadFile. path may also be an http or https URL,
// fetched within ctx.
func LoadFileContext(ctx context.Context, path string) (*Schema, error) {
	doc, err := serializer.FromFileWithContext[SchemaDocument](ctx, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "load schema "+path, err)
	}
	s, err := Load(doc)
	if err != nil {
		return nil, err
	}
	slog.Debug("schema loaded", "path", path, "namespace", s.Namespace(), "types", len(s.Types()))
	return s, nil
}

// Load builds a Schema from a document. Types are declared first and
// properties resolved second, so declaration order does not matter.
func Load(doc *SchemaDocument) (*Schema, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "nil schema document")
	}
	s := NewSchema(doc.Namespace)

	for _, e := range doc.EnumTypes {
		et := &EnumType{Namespace: doc.Namespace, Name: e.Name, Flags: e.Flags}
		for i, m := range e.Members {
			v := int64(i)
			if e.Flags {
				v = int64(1) << i
			}
			et.Members = append(et.Members, EnumMember{Name: m, Value: v})
		}
		if err := s.AddType(et); err != nil {
			return nil, err
		}
	}

	for _, td := range doc.TypeDefinitions {
		p, ok := Primitive(td.UnderlyingType)
		if !ok {
			return nil, unresolved(td.Name, td.UnderlyingType)
		}
		if err := s.AddType(&TypeDefinition{Namespace: doc.Namespace, Name: td.Name, UnderlyingType: p}); err != nil {
			return nil, err
		}
	}

	declared := make(map[*StructuredType]StructuredDocument)
	declare := func(docs []StructuredDocument, ctor func(string) *StructuredType) error {
		for _, d := range docs {
			st := ctor(d.Name)
			st.Key = d.Key
			st.Abstract = d.Abstract
			st.OpenType = d.Open
			if err := s.AddType(st); err != nil {
				return err
			}
			declared[st] = d
		}
		return nil
	}
	if err := declare(doc.ComplexTypes, func(n string) *StructuredType { return NewComplexType(doc.Namespace, n) }); err != nil {
		return nil, err
	}
	if err := declare(doc.EntityTypes, func(n string) *StructuredType { return NewEntityType(doc.Namespace, n) }); err != nil {
		return nil, err
	}

	for st, d := range declared {
		if d.BaseType != "" {
			bt, ok := s.FindType(d.BaseType)
			base, isStructured := bt.(*StructuredType)
			if !ok || !isStructured || base.Kind() != st.Kind() {
				return nil, unresolved(st.FullName(), d.BaseType)
			}
			st.BaseType = base
		}
		for _, pd := range d.Properties {
			pt, ok := s.FindType(pd.Type)
			if !ok {
				return nil, unresolved(st.FullName()+"."+pd.Name, pd.Type)
			}
			nullable := true
			if pd.Nullable != nil {
				nullable = *pd.Nullable
			}
			st.Properties = append(st.Properties, Property{
				Name:       pd.Name,
				Type:       pt,
				Nullable:   nullable,
				Navigation: pd.Navigation,
			})
		}
	}

	return s, nil
}

func unresolved(owner, typeName string) error {
	return errors.NewWithContext(errors.ErrCodeNotFound,
		fmt.Sprintf("cannot resolve type %q", typeName),
		map[string]any{"owner": owner})
}

// Describe converts a model back into its document form.
func Describe(m Model) *SchemaDocument {
	doc := &SchemaDocument{Namespace: m.Namespace()}
	for _, t := range m.Types() {
		switch tt := t.(type) {
		case *EnumType:
			ed := EnumDocument{Name: tt.Name, Flags: tt.Flags}
			for _, mem := range tt.Members {
				ed.Members = append(ed.Members, mem.Name)
			}
			doc.EnumTypes = append(doc.EnumTypes, ed)
		case *TypeDefinition:
			doc.TypeDefinitions = append(doc.TypeDefinitions, TypeDefDocument{
				Name:           tt.Name,
				UnderlyingType: tt.UnderlyingType.FullName(),
			})
		case *StructuredType:
			sd := StructuredDocument{
				Name:     tt.Name,
				Abstract: tt.Abstract,
				Open:     tt.OpenType,
				Key:      tt.Key,
			}
			if tt.BaseType != nil {
				sd.BaseType = tt.BaseType.FullName()
			}
			for _, p := range tt.Properties {
				nullable := p.Nullable
				sd.Properties = append(sd.Properties, PropertyDocument{
					Name:       p.Name,
					Type:       p.Type.FullName(),
					Nullable:   &nullable,
					Navigation: p.Navigation,
				})
			}
			if tt.Kind() == KindEntity {
				doc.EntityTypes = append(doc.EntityTypes, sd)
			} else {
				doc.ComplexTypes = append(doc.ComplexTypes, sd)
			}
		}
	}
	return doc
}
