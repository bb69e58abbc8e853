/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import "strconv"

// ResolveReport is the output of the resolve command.
type ResolveReport struct {
	Input   string `json:"input" yaml:"input"`
	EdmType string `json:"edmType,omitempty" yaml:"edmType,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Variant string `json:"variant" yaml:"variant"`
	Encoder string `json:"encoder" yaml:"encoder"`
}

func (r *ResolveReport) Header() []string {
	return []string{"INPUT", "EDM TYPE", "PATH", "VARIANT", "ENCODER"}
}

func (r *ResolveReport) Rows() [][]string {
	return [][]string{{r.Input, orDash(r.EdmType), orDash(r.Path), r.Variant, r.Encoder}}
}

// ExplainReport is the output of the explain command.
type ExplainReport struct {
	Namespace string         `json:"namespace" yaml:"namespace"`
	Path      string         `json:"path,omitempty" yaml:"path,omitempty"`
	Entries   []ExplainEntry `json:"entries" yaml:"entries"`
}

// ExplainEntry is the resolution of a single schema type. Exactly one of
// Variant and Error is set.
type ExplainEntry struct {
	Type    string `json:"type" yaml:"type"`
	Kind    string `json:"kind" yaml:"kind"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r *ExplainReport) Header() []string {
	return []string{"TYPE", "KIND", "VARIANT"}
}

func (r *ExplainReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		v := e.Variant
		if e.Error != "" {
			v = e.Error
		}
		rows = append(rows, []string{e.Type, e.Kind, v})
	}
	return rows
}

// VariantsReport is the output of the variants command.
type VariantsReport struct {
	Variants []VariantEntry `json:"variants" yaml:"variants"`
}

type VariantEntry struct {
	Name       string `json:"name" yaml:"name"`
	Registered bool   `json:"registered" yaml:"registered"`
}

func (r *VariantsReport) Header() []string {
	return []string{"VARIANT", "REGISTERED"}
}

func (r *VariantsReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Variants))
	for _, v := range r.Variants {
		rows = append(rows, []string{v.Name, strconv.FormatBool(v.Registered)})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
