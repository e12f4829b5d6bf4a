package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	value int
	label string
}

func TestApply(t *testing.T) {
	tgt := &target{}
	err := Apply(tgt,
		NoError(func(t *target) { t.value = 42 }),
		NoError(func(t *target) { t.label = "set" }),
	)
	require.NoError(t, err)
	require.Equal(t, 42, tgt.value)
	require.Equal(t, "set", tgt.label)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	tgt := &target{}

	err := Apply(tgt,
		NoError(func(t *target) { t.value = 1 }),
		New(func(t *target) error { return boom }),
		NoError(func(t *target) { t.value = 2 }),
	)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, tgt.value)
}

func TestApplyNoOptions(t *testing.T) {
	require.NoError(t, Apply(&target{}))
}
