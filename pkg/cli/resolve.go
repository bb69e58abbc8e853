/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/odata-serializer/pkg/defaults"
	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/errors"
	"github.com/NVIDIA/odata-serializer/pkg/odatapath"
	"github.com/NVIDIA/odata-serializer/pkg/payload"
	"github.com/NVIDIA/odata-serializer/pkg/provider"
	"github.com/NVIDIA/odata-serializer/pkg/typemap"
)

// payloadKinds are the Go payload types selectable with --payload.
// A "[]" prefix selects a slice of the named kind.
var payloadKinds = map[string]reflect.Type{
	"service-document": reflect.TypeFor[payload.ServiceDocument](),
	"reference-link":   reflect.TypeFor[payload.EntityReferenceLink](),
	"reference-links":  reflect.TypeFor[payload.EntityReferenceLinks](),
	"url":              reflect.TypeFor[*url.URL](),
	"error":            reflect.TypeFor[payload.Error](),
	"metadata":         reflect.TypeFor[*edm.Schema](),
	"bool":             reflect.TypeFor[bool](),
	"string":           reflect.TypeFor[string](),
	"int32":            reflect.TypeFor[int32](),
	"int64":            reflect.TypeFor[int64](),
	"float64":          reflect.TypeFor[float64](),
	"bytes":            reflect.TypeFor[[]byte](),
	"time":             reflect.TypeFor[time.Time](),
	"duration":         reflect.TypeFor[time.Duration](),
	"uuid":             reflect.TypeFor[uuid.UUID](),
}

func supportedPayloadKinds() []string {
	out := make([]string, 0, len(payloadKinds))
	for k := range payloadKinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func payloadType(kind string) (reflect.Type, error) {
	k := strings.ToLower(strings.TrimSpace(kind))
	elem, isSlice := strings.CutPrefix(k, "[]")
	rt, ok := payloadKinds[elem]
	if !ok {
		return nil, fmt.Errorf("unknown payload kind: %q, supported values: %v", kind, supportedPayloadKinds())
	}
	if isSlice {
		return reflect.SliceOf(rt), nil
	}
	return rt, nil
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resolve",
		EnableShellCompletion: true,
		Usage:                 "Select the serializer variant for a schema type or payload kind",
		Description: `Resolve the serializer variant for either:
  - a schema type declared in the model (--type), or
  - a Go payload kind (--payload), such as error, url, []url or string

Special payload kinds (service-document, reference-link, reference-links,
url, error, metadata) are resolved without loading the model.

An optional --path applies the request context: a terminal $count segment
selects RawValue, as does a terminal $value segment on a primitive or enum.

# Examples

  odatactl resolve --model sales.yaml --type Sales.Customer
  odatactl resolve --model sales.yaml --type Collection(Sales.Order) --path '/Customers(1)/Orders/$count'
  odatactl resolve --payload '[]url'`,
		Flags: []cli.Flag{
			modelFlag(),
			&cli.StringFlag{
				Name:  "type",
				Usage: "Qualified or unqualified schema type name, e.g. Sales.Customer or Collection(Sales.Order)",
			},
			&cli.StringFlag{
				Name:  "payload",
				Usage: fmt.Sprintf("Payload kind (supported values: %s)", strings.Join(supportedPayloadKinds(), ", ")),
			},
			pathFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			typeName, kind := cmd.String("type"), cmd.String("payload")
			if (typeName == "") == (kind == "") {
				return fmt.Errorf("exactly one of --type or --payload is required")
			}

			path, err := parsePath(cmd.String("path"))
			if err != nil {
				return err
			}

			p := provider.New()
			loader := &modelLoader{ctx: ctx, path: cmd.String("model")}

			var rep *ResolveReport
			if typeName != "" {
				rep, err = resolveSchemaType(p, loader, typeName, path)
			} else {
				rep, err = resolvePayload(p, loader, kind, path)
			}
			if err != nil {
				return err
			}

			return writeReport(ctx, cmd, rep)
		},
	}
}

func resolveSchemaType(p *provider.Provider, loader *modelLoader, typeName string, path *odatapath.Path) (*ResolveReport, error) {
	m, err := loader.load()
	if err != nil {
		return nil, err
	}

	t, ok := m.FindType(typeName)
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "schema type not found",
			map[string]any{"type": typeName, "namespace": m.Namespace()})
	}

	v, err := p.EdmPathVariant(t, path)
	if err != nil {
		return nil, err
	}

	return newResolveReport(p, typeName, t.FullName(), path, v)
}

func resolvePayload(p *provider.Provider, loader *modelLoader, kind string, path *odatapath.Path) (*ResolveReport, error) {
	rt, err := payloadType(kind)
	if err != nil {
		return nil, err
	}

	v, err := p.PayloadVariant(rt, loader.modelFunc(), path)
	if err != nil {
		// A nil model from the loader is reported as its load failure.
		if lerr := loader.failure(); lerr != nil {
			return nil, lerr
		}
		return nil, err
	}

	var edmType string
	if m := loader.loaded(); m != nil {
		if t := typemap.For(m).EdmType(rt); !edm.IsNil(t) {
			edmType = t.FullName()
		}
	}

	return newResolveReport(p, kind, edmType, path, v)
}

func newResolveReport(p *provider.Provider, input, edmType string, path *odatapath.Path, v provider.Variant) (*ResolveReport, error) {
	enc, err := p.Registry().Get(v)
	if err != nil {
		return nil, err
	}
	return &ResolveReport{
		Input:   input,
		EdmType: edmType,
		Path:    path.String(),
		Variant: v.String(),
		Encoder: fmt.Sprintf("%T", enc),
	}, nil
}

func parsePath(raw string) (*odatapath.Path, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	p, err := odatapath.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, "invalid --path", err)
	}
	return p, nil
}

// modelLoader loads the schema document at most once, on first use.
type modelLoader struct {
	ctx  context.Context
	path string

	once  sync.Once
	model *edm.Schema
	err   error
}

func (l *modelLoader) load() (*edm.Schema, error) {
	l.once.Do(func() {
		if strings.TrimSpace(l.path) == "" {
			l.err = errors.New(errors.ErrCodeInvalidArgument, "--model is required to resolve this input")
			return
		}
		l.model, l.err = edm.LoadFileContext(l.ctx, l.path)
	})
	return l.model, l.err
}

func (l *modelLoader) modelFunc() provider.ModelFunc {
	return func() edm.Model {
		m, err := l.load()
		if err != nil {
			return nil
		}
		return m
	}
}

// failure returns the load error, if a load was attempted and failed.
func (l *modelLoader) failure() error {
	if l.model == nil {
		return l.err
	}
	return nil
}

// loaded returns the model if it was loaded successfully.
func (l *modelLoader) loaded() *edm.Schema {
	if l.err != nil {
		return nil
	}
	return l.model
}
