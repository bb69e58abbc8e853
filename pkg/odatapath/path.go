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

// Package odatapath models the request path that accompanies a payload and
// classifies its terminal segment.
//
// Only the last segment influences serializer selection: a trailing
// $count asks for the cardinality of a collection and a trailing $value
// asks for the raw value of a primitive or enum property.
//
//	p, err := odatapath.Parse("/Customers(1)/Orders/$count")
//	odatapath.IsCountRequest(p) // true
package odatapath

import (
	"fmt"
	"net/url"
	"strings"
)

// SegmentKind classifies a path segment.
type SegmentKind int

const (
	SegmentEntitySet SegmentKind = iota + 1
	SegmentSingleton
	SegmentKey
	SegmentProperty
	SegmentNavigation
	SegmentTypeCast
	SegmentOperation
	SegmentCount
	SegmentValue
	SegmentRef
	SegmentMetadata
	SegmentBatch
)

var segmentNames = map[SegmentKind]string{
	SegmentEntitySet:  "EntitySet",
	SegmentSingleton:  "Singleton",
	SegmentKey:        "Key",
	SegmentProperty:   "Property",
	SegmentNavigation: "Navigation",
	SegmentTypeCast:   "TypeCast",
	SegmentOperation:  "Operation",
	SegmentCount:      "Count",
	SegmentValue:      "Value",
	SegmentRef:        "Ref",
	SegmentMetadata:   "Metadata",
	SegmentBatch:      "Batch",
}

func (k SegmentKind) String() string {
	if s, ok := segmentNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

// Segment is one element of a request path.
type Segment struct {
	Kind       SegmentKind
	Identifier string
}

// String renders the segment as it appears in a URL.
func (s Segment) String() string {
	switch s.Kind {
	case SegmentCount:
		return "$count"
	case SegmentValue:
		return "$value"
	case SegmentRef:
		return "$ref"
	case SegmentMetadata:
		return "$metadata"
	case SegmentBatch:
		return "$batch"
	case SegmentKey:
		return "(" + s.Identifier + ")"
	default:
		return s.Identifier
	}
}

// Path is an ordered sequence of segments.
type Path struct {
	Segments []Segment
}

// New returns a path made of segs.
func New(segs ...Segment) *Path {
	return &Path{Segments: segs}
}

// Last returns the terminal segment.
func (p *Path) Last() (Segment, bool) {
	if p == nil || len(p.Segments) == 0 {
		return Segment{}, false
	}
	return p.Segments[len(p.Segments)-1], true
}

// String renders the path with a leading slash.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, s := range p.Segments {
		if s.Kind != SegmentKey {
			b.WriteByte('/')
		}
		b.WriteString(s.String())
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// IsCountRequest reports whether the terminal segment is $count.
// A nil path is never a count request.
func IsCountRequest(p *Path) bool {
	last, ok := p.Last()
	return ok && last.Kind == SegmentCount
}

// IsRawValueRequest reports whether the terminal segment is $value.
func IsRawValueRequest(p *Path) bool {
	last, ok := p.Last()
	return ok && last.Kind == SegmentValue
}

var systemSegments = map[string]SegmentKind{
	"$count":    SegmentCount,
	"$value":    SegmentValue,
	"$ref":      SegmentRef,
	"$metadata": SegmentMetadata,
	"$batch":    SegmentBatch,
}

// Parse splits a resource path into segments. The query string is ignored.
// Without a model, non-leading identifiers are classified as properties and
// qualified identifiers as type casts or, when followed by parentheses,
// operations.
func Parse(raw string) (*Path, error) {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	p := &Path{}
	for _, part := range strings.Split(strings.Trim(raw, "/"), "/") {
		if part == "" {
			continue
		}
		seg, err := url.PathUnescape(part)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %w", part, err)
		}
		if err := p.appendPart(seg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Path) appendPart(part string) error {
	if strings.HasPrefix(part, "$") {
		kind, ok := systemSegments[part]
		if !ok {
			return fmt.Errorf("unknown system segment %q", part)
		}
		if (kind == SegmentMetadata || kind == SegmentBatch) && len(p.Segments) > 0 {
			return fmt.Errorf("%s must be the first segment", part)
		}
		if _, ok := p.Last(); !ok && kind != SegmentMetadata && kind != SegmentBatch {
			return fmt.Errorf("%s cannot be the first segment", part)
		}
		p.Segments = append(p.Segments, Segment{Kind: kind})
		return nil
	}

	name, args, hasArgs, err := splitArgs(part)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("empty identifier in segment %q", part)
	}

	first := len(p.Segments) == 0
	switch {
	case strings.Contains(name, ".") && hasArgs:
		p.Segments = append(p.Segments, Segment{Kind: SegmentOperation, Identifier: name})
		return nil
	case strings.Contains(name, "."):
		p.Segments = append(p.Segments, Segment{Kind: SegmentTypeCast, Identifier: name})
	case first:
		p.Segments = append(p.Segments, Segment{Kind: SegmentEntitySet, Identifier: name})
	case hasArgs:
		p.Segments = append(p.Segments, Segment{Kind: SegmentNavigation, Identifier: name})
	default:
		p.Segments = append(p.Segments, Segment{Kind: SegmentProperty, Identifier: name})
	}
	if hasArgs {
		p.Segments = append(p.Segments, Segment{Kind: SegmentKey, Identifier: args})
	}
	return nil
}

// splitArgs separates "Name(args)" into its parts.
func splitArgs(part string) (name, args string, ok bool, err error) {
	open := strings.IndexByte(part, '(')
	if open < 0 {
		return part, "", false, nil
	}
	if !strings.HasSuffix(part, ")") {
		return "", "", false, fmt.Errorf("unbalanced parentheses in segment %q", part)
	}
	return part[:open], part[open+1 : len(part)-1], true, nil
}
