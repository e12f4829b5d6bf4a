// Package schema derives the immutable per-column descriptors consumed
// read-only by every stage of the write pipeline.
//
// Descriptors are built once per write session, from the first table's
// columns (optionally adjusted by user-supplied hints). Nested group columns
// are flattened to leaves using dotted name paths, with the nesting depth
// recorded on each leaf.
package schema

import (
	"strings"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/table"
)

// Descriptor describes one leaf column for the duration of a write session.
// It is immutable after Build/FromTable returns.
type Descriptor struct {
	// Name is the dotted path of the leaf, e.g. "user.address.zip".
	Name string
	// Type is the physical type of the leaf values.
	Type format.PhysicalType
	// Depth is the nesting depth of the leaf; 0 for a top-level column.
	Depth uint8
	// Nullable reports whether the column may contain nulls.
	Nullable bool
	// DictEligible reports whether the column may be dictionary-encoded.
	// Booleans are never dictionary-encoded; their cardinality is already 2.
	DictEligible bool
}

// Hint carries optional user-supplied metadata for one column, applied by
// position over the table-derived descriptor.
type Hint struct {
	// Name overrides the column name when non-empty.
	Name string
	// ForceNullable marks the column nullable even when the input column
	// carries no validity slice. Useful for chunked sessions where later
	// writes may contain nulls.
	ForceNullable bool
}

// Node is one node of a nested input schema. A node with children is a
// group; a node without children is a leaf of the given physical type.
type Node struct {
	Name     string
	Type     format.PhysicalType
	Nullable bool
	Children []Node
}

// Build flattens a nested schema into leaf descriptors, depth-first in
// declaration order. Group nullability propagates to all leaves beneath it.
func Build(roots []Node) []Descriptor {
	var out []Descriptor
	for i := range roots {
		out = flatten(out, &roots[i], "", 0, false)
	}

	return out
}

func flatten(out []Descriptor, n *Node, prefix string, depth uint8, nullable bool) []Descriptor {
	name := n.Name
	if prefix != "" {
		name = prefix + "." + n.Name
	}
	nullable = nullable || n.Nullable

	if len(n.Children) == 0 {
		return append(out, Descriptor{
			Name:         name,
			Type:         n.Type,
			Depth:        depth,
			Nullable:     nullable,
			DictEligible: dictEligible(n.Type),
		})
	}

	for i := range n.Children {
		out = flatten(out, &n.Children[i], name, depth+1, nullable)
	}

	return out
}

// FromTable derives leaf descriptors from a table's columns. Columns named
// with dotted paths are treated as pre-flattened leaves and keep the path
// segments as their recorded depth.
func FromTable(t *table.Table, hints []Hint) []Descriptor {
	out := make([]Descriptor, t.NumColumns())
	for i := range out {
		col := t.Column(i)
		d := Descriptor{
			Name:         col.Name(),
			Type:         col.Type(),
			Depth:        uint8(strings.Count(col.Name(), ".")),
			Nullable:     col.HasNulls(),
			DictEligible: dictEligible(col.Type()),
		}
		if i < len(hints) {
			if hints[i].Name != "" {
				d.Name = hints[i].Name
				d.Depth = uint8(strings.Count(hints[i].Name, "."))
			}
			if hints[i].ForceNullable {
				d.Nullable = true
			}
		}
		out[i] = d
	}

	return out
}

// Equal reports whether two flattened schemas are identical. It is the
// schema-mismatch check applied to every table after the first write.
//
// Nullability participates: validity-slice presence is part of the schema, so
// the footer's recorded nullability always agrees with the pages written.
// Sessions whose later chunks introduce nulls must declare it up front with
// Hint.ForceNullable.
func Equal(a, b []Descriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type ||
			a[i].Depth != b[i].Depth || a[i].Nullable != b[i].Nullable {
			return false
		}
	}

	return true
}

func dictEligible(t format.PhysicalType) bool {
	return t != format.TypeBool
}
