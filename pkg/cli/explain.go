/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/odata-serializer/pkg/defaults"
	"github.com/NVIDIA/odata-serializer/pkg/edm"
	"github.com/NVIDIA/odata-serializer/pkg/errors"
	"github.com/NVIDIA/odata-serializer/pkg/odatapath"
	"github.com/NVIDIA/odata-serializer/pkg/provider"
)

func explainCmd() *cli.Command {
	return &cli.Command{
		Name:                  "explain",
		EnableShellCompletion: true,
		Usage:                 "List the serializer variant of every type declared in a schema",
		Description: `Load a schema document and resolve every declared type, together with
its collection and, for entity types, its delta feed.

Types whose kind has no serializer (type definitions, for example) are
listed with the UNSUPPORTED code instead of a variant.

# Examples

  odatactl explain --model sales.yaml --format table
  odatactl explain --model sales.yaml --path '/Products(5)/Color/$value'`,
		Flags: []cli.Flag{
			modelFlag(),
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

			path, err := parsePath(cmd.String("path"))
			if err != nil {
				return err
			}

			m, err := (&modelLoader{ctx: ctx, path: cmd.String("model")}).load()
			if err != nil {
				return err
			}

			return writeReport(ctx, cmd, explainModel(provider.New(), m, path))
		},
	}
}

// explainModel resolves each declared type of m and its derived collections.
func explainModel(p *provider.Provider, m edm.Model, path *odatapath.Path) *ExplainReport {
	rep := &ExplainReport{
		Namespace: m.Namespace(),
		Path:      path.String(),
	}

	for _, t := range m.Types() {
		candidates := []edm.Type{t, edm.NewCollection(t)}
		if edm.IsEntity(t) {
			candidates = append(candidates, edm.NewDeltaCollection(t))
		}
		for _, c := range candidates {
			rep.Entries = append(rep.Entries, explainType(p, c, path))
		}
	}
	return rep
}

func explainType(p *provider.Provider, t edm.Type, path *odatapath.Path) ExplainEntry {
	e := ExplainEntry{
		Type: t.FullName(),
		Kind: t.Kind().String(),
	}
	if edm.IsDeltaFeed(t) {
		e.Type = "Delta(" + edm.ElementType(t).FullName() + ")"
	}

	v, err := p.EdmPathVariant(t, path)
	if err != nil {
		e.Error = string(errors.CodeOf(err))
		return e
	}
	e.Variant = v.String()
	return e
}
