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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/serializer"
)

// ODataSerializer writes a payload of a single variant.
type ODataSerializer interface {
	Variant() Variant
	WriteObject(ctx context.Context, w io.Writer, graph any) error
}

// RegisterDefaults registers the built-in encoder for every variant.
func RegisterDefaults(r *Registry) {
	for _, v := range Variants() {
		switch v {
		case VariantRawValue:
			r.MustRegister(v, func() (ODataSerializer, error) { return rawValueEncoder{}, nil })
		case VariantMetadata:
			r.MustRegister(v, func() (ODataSerializer, error) { return metadataEncoder{}, nil })
		case VariantError:
			r.MustRegister(v, func() (ODataSerializer, error) {
				return &jsonEncoder{variant: v, envelope: "error"}, nil
			})
		case VariantResourceSet, VariantCollection, VariantDeltaFeed:
			r.MustRegister(v, func() (ODataSerializer, error) {
				return &jsonEncoder{variant: v, envelope: "value"}, nil
			})
		default:
			r.MustRegister(v, func() (ODataSerializer, error) { return &jsonEncoder{variant: v}, nil })
		}
	}
}

// jsonEncoder writes the graph as JSON, optionally wrapped in a single-key
// envelope object.
type jsonEncoder struct {
	variant  Variant
	envelope string
}

func (e *jsonEncoder) Variant() Variant { return e.variant }

func (e *jsonEncoder) WriteObject(ctx context.Context, w io.Writer, graph any) error {
	var v any = graph
	if e.envelope != "" {
		v = map[string]any{e.envelope: graph}
	}
	return serializer.NewWriter(serializer.FormatJSON, w).Serialize(ctx, v)
}

// rawValueEncoder writes scalars without any envelope.
type rawValueEncoder struct{}

func (rawValueEncoder) Variant() Variant { return VariantRawValue }

func (rawValueEncoder) WriteObject(ctx context.Context, w io.Writer, graph any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	switch v := graph.(type) {
	case nil:
		return nil
	case []byte:
		_, err = w.Write(v)
	case time.Time:
		_, err = io.WriteString(w, v.Format(time.RFC3339Nano))
	case fmt.Stringer:
		_, err = io.WriteString(w, v.String())
	default:
		_, err = fmt.Fprint(w, v)
	}
	return err
}

// metadataEncoder writes the model in its YAML document form.
type metadataEncoder struct{}

func (metadataEncoder) Variant() Variant { return VariantMetadata }

func (metadataEncoder) WriteObject(ctx context.Context, w io.Writer, graph any) error {
	m, ok := graph.(edm.Model)
	if !ok || m == nil {
		return fmt.Errorf("metadata payload must be an edm.Model, got %T", graph)
	}
	return serializer.NewWriter(serializer.FormatYAML, w).Serialize(ctx, edm.Describe(m))
}
