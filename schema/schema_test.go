package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/format"
	"github.com/arloliu/strata/table"
)

func TestBuildFlattensNestedSchema(t *testing.T) {
	roots := []Node{
		{Name: "id", Type: format.TypeInt64},
		{
			Name:     "user",
			Nullable: true,
			Children: []Node{
				{Name: "name", Type: format.TypeString},
				{
					Name: "address",
					Children: []Node{
						{Name: "zip", Type: format.TypeInt32, Nullable: true},
					},
				},
			},
		},
	}

	descs := Build(roots)
	require.Equal(t, []Descriptor{
		{Name: "id", Type: format.TypeInt64, Depth: 0, Nullable: false, DictEligible: true},
		{Name: "user.name", Type: format.TypeString, Depth: 1, Nullable: true, DictEligible: true},
		{Name: "user.address.zip", Type: format.TypeInt32, Depth: 2, Nullable: true, DictEligible: true},
	}, descs)
}

func TestBuildGroupNullabilityPropagates(t *testing.T) {
	roots := []Node{{
		Name:     "g",
		Nullable: true,
		Children: []Node{{Name: "leaf", Type: format.TypeBool}},
	}}

	descs := Build(roots)
	require.Len(t, descs, 1)
	require.True(t, descs[0].Nullable)
	require.False(t, descs[0].DictEligible)
}

func TestFromTable(t *testing.T) {
	tbl, err := table.New(
		table.NewInt64Column("id", []int64{1}, nil),
		table.NewStringColumn("user.name", []string{"a"}, []bool{true}),
		table.NewBoolColumn("flag", []bool{true}, nil),
	)
	require.NoError(t, err)

	descs := FromTable(tbl, nil)
	require.Equal(t, []Descriptor{
		{Name: "id", Type: format.TypeInt64, Depth: 0, Nullable: false, DictEligible: true},
		{Name: "user.name", Type: format.TypeString, Depth: 1, Nullable: true, DictEligible: true},
		{Name: "flag", Type: format.TypeBool, Depth: 0, Nullable: false, DictEligible: false},
	}, descs)
}

func TestFromTableHints(t *testing.T) {
	tbl, err := table.New(
		table.NewInt64Column("c0", []int64{1}, nil),
		table.NewInt64Column("c1", []int64{1}, nil),
	)
	require.NoError(t, err)

	descs := FromTable(tbl, []Hint{
		{Name: "metrics.count", ForceNullable: true},
	})

	require.Equal(t, "metrics.count", descs[0].Name)
	require.Equal(t, uint8(1), descs[0].Depth)
	require.True(t, descs[0].Nullable)

	// Columns beyond the hint slice keep their derived descriptor.
	require.Equal(t, "c1", descs[1].Name)
	require.False(t, descs[1].Nullable)
}

func TestEqual(t *testing.T) {
	a := []Descriptor{
		{Name: "id", Type: format.TypeInt64},
		{Name: "v", Type: format.TypeFloat64},
	}

	b := make([]Descriptor, len(a))
	copy(b, a)
	require.True(t, Equal(a, b))

	// Nullability is part of the schema; the footer's recorded nullability
	// must match every chunk written.
	b[0].Nullable = true
	require.False(t, Equal(a, b))

	b[0].Nullable = false
	b[0].Name = "uid"
	require.False(t, Equal(a, b))

	b[0].Name = "id"
	b[1].Type = format.TypeFloat32
	require.False(t, Equal(a, b))

	require.False(t, Equal(a, a[:1]))
}
