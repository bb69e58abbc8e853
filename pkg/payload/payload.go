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

// Package payload defines the Go types of payload kinds that are serialized
// without consulting the schema: the service document, entity reference
// links and errors. It also defines the markers used to recognize delta
// feeds and URL sequences.
package payload

import (
	"net/url"
	"reflect"
)

// ServiceDocument lists the top-level resources a service exposes.
type ServiceDocument struct {
	EntitySets      []ServiceElement `json:"entitySets,omitempty" yaml:"entitySets,omitempty"`
	Singletons      []ServiceElement `json:"singletons,omitempty" yaml:"singletons,omitempty"`
	FunctionImports []ServiceElement `json:"functionImports,omitempty" yaml:"functionImports,omitempty"`
}

// ServiceElement is a single named entry in a service document.
type ServiceElement struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// EntityReferenceLink is a single $ref response.
type EntityReferenceLink struct {
	URL *url.URL `json:"@odata.id" yaml:"id"`
}

// EntityReferenceLinks is a collection $ref response.
type EntityReferenceLinks struct {
	Links    []*url.URL `json:"value" yaml:"value"`
	Count    *int64     `json:"@odata.count,omitempty" yaml:"count,omitempty"`
	NextLink *url.URL   `json:"@odata.nextLink,omitempty" yaml:"nextLink,omitempty"`
}

// Error is the built-in error payload.
type Error struct {
	Code       string        `json:"code" yaml:"code"`
	Message    string        `json:"message" yaml:"message"`
	Target     string        `json:"target,omitempty" yaml:"target,omitempty"`
	Details    []ErrorDetail `json:"details,omitempty" yaml:"details,omitempty"`
	InnerError *InnerError   `json:"innererror,omitempty" yaml:"innererror,omitempty"`
}

// Error implements the error interface so the payload can travel as a Go error.
func (e *Error) Error() string {
	if e.Target != "" {
		return e.Code + ": " + e.Message + " (" + e.Target + ")"
	}
	return e.Code + ": " + e.Message
}

// ErrorDetail is an additional error entry.
type ErrorDetail struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
}

// InnerError carries service-specific debugging information.
type InnerError struct {
	Message    string      `json:"message,omitempty" yaml:"message,omitempty"`
	TypeName   string      `json:"type,omitempty" yaml:"type,omitempty"`
	StackTrace string      `json:"stacktrace,omitempty" yaml:"stacktrace,omitempty"`
	Inner      *InnerError `json:"internalexception,omitempty" yaml:"internalexception,omitempty"`
}

// URLSequence is implemented by types that enumerate URLs. Such types are
// serialized as entity reference link collections.
type URLSequence interface {
	URLs() []*url.URL
}

// DeltaFeed is implemented by collections of changes. The method must be
// callable on the zero value of the implementing type.
type DeltaFeed interface {
	DeltaElementType() reflect.Type
}

// DeltaSet is a delta feed of T.
type DeltaSet[T any] []T

// DeltaElementType implements DeltaFeed.
func (DeltaSet[T]) DeltaElementType() reflect.Type {
	return reflect.TypeFor[T]()
}
