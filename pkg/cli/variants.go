/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/odata-serializer/pkg/provider"
)

func variantsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "variants",
		EnableShellCompletion: true,
		Usage:                 "List serializer variants and their default encoders",
		ArgsUsage:             "[variant...]",
		Description: `List every serializer variant and whether the default registry
provides an encoder for it.

Arguments narrow the list. Names are matched case-insensitively and
ignore dashes, underscores and spaces, so resource-set, ResourceSet and
RESOURCE_SET are equivalent.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			selected := provider.Variants()
			if cmd.Args().Present() {
				selected = nil
				for _, arg := range cmd.Args().Slice() {
					v, err := provider.ParseVariant(arg)
					if err != nil {
						return fmt.Errorf("invalid variant argument: %w", err)
					}
					selected = append(selected, v)
				}
			}

			return writeReport(ctx, cmd, listVariants(provider.NewDefaultRegistry(), selected))
		},
	}
}

func listVariants(r *provider.Registry, selected []provider.Variant) *VariantsReport {
	registered := r.Registered()
	rep := &VariantsReport{}
	for _, v := range selected {
		rep.Variants = append(rep.Variants, VariantEntry{
			Name:       v.String(),
			Registered: slices.Contains(registered, v),
		})
	}
	return rep
}
