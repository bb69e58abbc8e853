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
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/payload"
)

func encoderFor(t *testing.T, v Variant) ODataSerializer {
	t.Helper()
	enc, err := NewDefaultRegistry().Get(v)
	require.NoError(t, err)
	return enc
}

func TestJSONEncoder_Envelopes(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		graph   any
		key     string
	}{
		{"resource set", VariantResourceSet, []customer{{ID: 1}}, "value"},
		{"collection", VariantCollection, []int{1, 2}, "value"},
		{"delta feed", VariantDeltaFeed, payload.DeltaSet[customer]{{ID: 2}}, "value"},
		{"error", VariantError, &payload.Error{Code: "E1", Message: "boom"}, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encoderFor(t, tt.variant).WriteObject(context.Background(), &buf, tt.graph))

			var out map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
			assert.Contains(t, out, tt.key)
			assert.Len(t, out, 1)
		})
	}
}

func TestJSONEncoder_Bare(t *testing.T) {
	var buf bytes.Buffer
	link := payload.EntityReferenceLink{URL: &url.URL{Scheme: "https", Host: "svc", Path: "/Customers(1)"}}
	require.NoError(t, encoderFor(t, VariantEntityReferenceLink).WriteObject(context.Background(), &buf, link))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, out, "@odata.id")
}

func TestRawValueEncoder(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		graph any
		want  string
	}{
		{"nil", nil, ""},
		{"bytes", []byte("abc"), "abc"},
		{"int", int64(42), "42"},
		{"string", "hello", "hello"},
		{"time", ts, "2025-03-01T12:00:00Z"},
		{"stringer", VariantEnum, "Enum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encoderFor(t, VariantRawValue).WriteObject(context.Background(), &buf, tt.graph))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRawValueEncoder_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := encoderFor(t, VariantRawValue).WriteObject(ctx, &buf, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestMetadataEncoder(t *testing.T) {
	s := edm.NewSchema("Sales")
	s.MustAddType(edm.NewEntityType("Sales", "Customer", "ID").
		AddProperty("ID", edm.MustPrimitive(edm.NameInt32)))

	var buf bytes.Buffer
	require.NoError(t, encoderFor(t, VariantMetadata).WriteObject(context.Background(), &buf, s))

	var doc edm.SchemaDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Sales", doc.Namespace)
	require.Len(t, doc.EntityTypes, 1)
	assert.Equal(t, "Customer", doc.EntityTypes[0].Name)

	err := encoderFor(t, VariantMetadata).WriteObject(context.Background(), &buf, "not a model")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "edm.Model"))
}
