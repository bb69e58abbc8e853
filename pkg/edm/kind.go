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
	"strings"
)

// TypeKind is the structural classification of a schema type.
type TypeKind int

const (
	// KindNone is the zero kind; it never classifies a valid type.
	KindNone TypeKind = iota
	KindPrimitive
	KindEntity
	KindComplex
	KindCollection
	KindEntityReference
	KindEnum
	KindTypeDefinition
	KindUntyped
	KindPath
)

var kindNames = map[TypeKind]string{
	KindNone:            "None",
	KindPrimitive:       "Primitive",
	KindEntity:          "Entity",
	KindComplex:         "Complex",
	KindCollection:      "Collection",
	KindEntityReference: "EntityReference",
	KindEnum:            "Enum",
	KindTypeDefinition:  "TypeDefinition",
	KindUntyped:         "Untyped",
	KindPath:            "Path",
}

// String returns the kind name.
func (k TypeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// ParseTypeKind parses a kind name, case-insensitively.
func ParseTypeKind(s string) (TypeKind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown type kind: %q", s)
}
