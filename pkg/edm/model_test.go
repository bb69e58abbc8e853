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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/odata-serializer/pkg/errors"
)

const salesYAML = `namespace: Sales
enumTypes:
  - name: Color
    members: [Red, Green, Blue]
  - name: Access
    flags: true
    members: [Read, Write]
typeDefinitions:
  - name: Sku
    underlyingType: Edm.String
complexTypes:
  - name: Address
    properties:
      - {name: City, type: Edm.String}
entityTypes:
  - name: Order
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32, nullable: false}
  - name: Customer
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32}
      - {name: Home, type: Address}
      - {name: Orders, type: Collection(Sales.Order), navigation: true}
      - {name: Favorite, type: Color}
  - name: VipCustomer
    baseType: Customer
    properties:
      - {name: Level, type: Edm.Int16}
`

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	s, err := LoadFile(writeSchema(t, "sales.yaml", salesYAML))
	require.NoError(t, err)

	assert.Equal(t, "Sales", s.Namespace())
	assert.Len(t, s.Types(), 7)

	color, ok := s.FindType("Color")
	require.True(t, ok)
	assert.Equal(t, KindEnum, color.Kind())
	assert.Equal(t, "Sales.Color", color.FullName())

	access, _ := s.FindType("Sales.Access")
	require.IsType(t, &EnumType{}, access)
	assert.Equal(t, int64(2), access.(*EnumType).Members[1].Value)

	sku, ok := s.FindType("Sku")
	require.True(t, ok)
	assert.Equal(t, KindTypeDefinition, sku.Kind())

	cust, ok := s.FindType("Sales.Customer")
	require.True(t, ok)
	require.IsType(t, &StructuredType{}, cust)
	assert.Equal(t, KindEntity, cust.Kind())

	orders, ok := cust.(*StructuredType).FindProperty("Orders")
	require.True(t, ok)
	assert.True(t, orders.Navigation)
	assert.Equal(t, "Collection(Sales.Order)", orders.Type.FullName())
	assert.True(t, IsEntity(ElementType(orders.Type)))

	vip, _ := s.FindType("VipCustomer")
	level, ok := vip.(*StructuredType).FindProperty("ID")
	require.True(t, ok, "inherited property should resolve through base type")
	assert.Equal(t, NameInt32, level.Type.FullName())

	order, _ := s.FindType("Order")
	id, _ := order.(*StructuredType).FindProperty("ID")
	assert.False(t, id.Nullable)
}

func TestLoadFile_JSON(t *testing.T) {
	doc := `{"namespace":"NS","complexTypes":[{"name":"Point","properties":[{"name":"X","type":"Edm.Double"}]}]}`
	s, err := LoadFile(writeSchema(t, "ns.json", doc))
	require.NoError(t, err)

	pt, ok := s.FindType("NS.Point")
	require.True(t, ok)
	assert.True(t, IsComplex(pt))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  *SchemaDocument
		code errors.ErrorCode
	}{
		{
			name: "nil document",
			doc:  nil,
			code: errors.ErrCodeInvalidArgument,
		},
		{
			name: "unknown property type",
			doc: &SchemaDocument{Namespace: "NS", EntityTypes: []StructuredDocument{
				{Name: "E", Properties: []PropertyDocument{{Name: "P", Type: "NS.Missing"}}},
			}},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "base type of other kind",
			doc: &SchemaDocument{
				Namespace:    "NS",
				ComplexTypes: []StructuredDocument{{Name: "C"}},
				EntityTypes:  []StructuredDocument{{Name: "E", BaseType: "C"}},
			},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "bad type definition",
			doc: &SchemaDocument{Namespace: "NS", TypeDefinitions: []TypeDefDocument{
				{Name: "T", UnderlyingType: "NS.Nope"},
			}},
			code: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.doc)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestLoad_DuplicateType(t *testing.T) {
	_, err := Load(&SchemaDocument{
		Namespace:    "NS",
		ComplexTypes: []StructuredDocument{{Name: "X"}},
		EntityTypes:  []StructuredDocument{{Name: "X"}},
	})
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestSchema_FindType(t *testing.T) {
	s := NewSchema("NS")
	s.MustAddType(NewEntityType("NS", "Person", "ID"))

	tests := []struct {
		name     string
		wantKind TypeKind
		wantOK   bool
	}{
		{"Person", KindEntity, true},
		{"NS.Person", KindEntity, true},
		{"Edm.String", KindPrimitive, true},
		{"Edm.Untyped", KindUntyped, true},
		{"Collection(NS.Person)", KindCollection, true},
		{"Collection(Edm.Int32)", KindCollection, true},
		{"Collection(NS.Nope)", KindNone, false},
		{"Other.Person", KindNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.FindType(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantKind, got.Kind())
			}
		})
	}
}

func TestSchema_AddTypeRejects(t *testing.T) {
	s := NewSchema("NS")
	assert.Error(t, s.AddType(nil))
	assert.Error(t, s.AddType((*StructuredType)(nil)))
	assert.Error(t, s.AddType(MustPrimitive(NameString)))
	assert.Error(t, s.AddType(NewCollection(MustPrimitive(NameString))))
}

type person struct{ ID int }

func TestSchema_Bind(t *testing.T) {
	s := NewSchema("NS")
	p := NewEntityType("NS", "Person", "ID")
	s.MustAddType(p)

	require.NoError(t, s.BindValue(person{}, p))
	require.NoError(t, s.Bind(reflect.TypeOf(&person{}), p), "rebinding to the same type is idempotent")

	got, ok := s.Binding(reflect.TypeOf(&person{}))
	require.True(t, ok)
	assert.Same(t, p, got)

	other := NewEntityType("NS", "Other")
	assert.Error(t, s.Bind(reflect.TypeOf(person{}), other))
	assert.Error(t, s.Bind(nil, p))
	assert.Error(t, s.Bind(reflect.TypeOf(person{}), nil))

	_, ok = s.Binding(nil)
	assert.False(t, ok)
}

func TestIsNilModel(t *testing.T) {
	var typedNil *Schema
	assert.True(t, IsNilModel(nil))
	assert.True(t, IsNilModel(typedNil))
	assert.False(t, IsNilModel(NewSchema("NS")))
}

func TestSchema_Annotations(t *testing.T) {
	s := NewSchema("NS")
	type key struct{}

	v, loaded := s.Annotations().LoadOrStore(key{}, 1)
	assert.False(t, loaded)
	assert.Equal(t, 1, v)

	v, loaded = s.Annotations().LoadOrStore(key{}, 2)
	assert.True(t, loaded)
	assert.Equal(t, 1, v)

	got, ok := s.Annotations().Load(key{})
	assert.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestDescribe_RoundTrip(t *testing.T) {
	s, err := LoadFile(writeSchema(t, "sales.yaml", salesYAML))
	require.NoError(t, err)

	doc := Describe(s)
	assert.Equal(t, "Sales", doc.Namespace)
	assert.Len(t, doc.EnumTypes, 2)
	assert.Len(t, doc.TypeDefinitions, 1)
	assert.Len(t, doc.ComplexTypes, 1)
	assert.Len(t, doc.EntityTypes, 3)

	again, err := Load(doc)
	require.NoError(t, err)
	vip, ok := again.FindType("Sales.VipCustomer")
	require.True(t, ok)
	assert.Equal(t, "Sales.Customer", vip.(*StructuredType).BaseType.FullName())
}
