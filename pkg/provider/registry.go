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
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/odata-serializer/pkg/errors"
)

// Factory constructs the encoder for a variant.
type Factory func() (ODataSerializer, error)

// Registry owns one lazily constructed encoder instance per variant.
// Concurrent first use of a variant results in a single construction.
// A failed construction is not cached, so the next Get retries.
type Registry struct {
	mu        sync.RWMutex
	factories map[Variant]Factory

	instances sync.Map // map[Variant]ODataSerializer
	group     singleflight.Group
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Variant]Factory),
	}
}

// NewDefaultRegistry creates a Registry populated with the built-in encoders.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// Register adds the factory for v.
// Returns an error if v is invalid or already registered.
func (r *Registry) Register(v Variant, f Factory) error {
	if !v.Valid() {
		return errors.NewWithContext(errors.ErrCodeInvalidArgument, "invalid variant",
			map[string]any{"variant": v.String()})
	}
	if f == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "nil factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[v]; exists {
		return errors.NewWithContext(errors.ErrCodeInvalidArgument, "encoder already registered",
			map[string]any{"variant": v.String()})
	}
	r.factories[v] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(v Variant, f Factory) {
	if err := r.Register(v, f); err != nil {
		panic(err)
	}
}

// Get returns the shared encoder for v, constructing it on first use.
func (r *Registry) Get(v Variant) (ODataSerializer, error) {
	if inst, ok := r.instances.Load(v); ok {
		return inst.(ODataSerializer), nil
	}

	r.mu.RLock()
	f, ok := r.factories[v]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeRegistry, "no encoder registered",
			map[string]any{"variant": v.String()})
	}

	res, err, _ := r.group.Do(v.String(), func() (any, error) {
		// Another flight may have finished between the fast-path load and here.
		if inst, ok := r.instances.Load(v); ok {
			return inst, nil
		}
		inst, err := f()
		if err != nil {
			return nil, err
		}
		if isNilEncoder(inst) {
			return nil, fmt.Errorf("factory returned nil encoder")
		}
		r.instances.Store(v, inst)
		encoderConstructions.WithLabelValues(v.String()).Inc()
		slog.Debug("encoder constructed", "variant", v.String())
		return inst, nil
	})
	if err != nil {
		encoderConstructionFailures.WithLabelValues(v.String()).Inc()
		return nil, errors.WrapWithContext(errors.ErrCodeRegistry, "construct encoder", err,
			map[string]any{"variant": v.String()})
	}
	return res.(ODataSerializer), nil
}

func isNilEncoder(s ODataSerializer) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Registered returns the variants with a factory, in declaration order.
func (r *Registry) Registered() []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Variant, 0, len(r.factories))
	for v := range r.factories {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Constructed reports whether the encoder for v has been built.
func (r *Registry) Constructed(v Variant) bool {
	_, ok := r.instances.Load(v)
	return ok
}
