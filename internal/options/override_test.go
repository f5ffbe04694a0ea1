package options

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithOverridesRoundTrip(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)
	require.NoError(t, store.Set("threshold", 0.3))

	err := store.WithOverrides([]Override{{Key: "threshold", Value: 0.9}}, func() error {
		got, err := store.Get("threshold")
		require.NoError(t, err)
		assert.Equal(t, 0.9, got)
		return nil
	})
	require.NoError(t, err)

	got, err := store.Get("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.3, got)
}

func TestWithOverridesRestoresOnError(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)
	boom := errors.New("boom")

	err := store.WithOverrides([]Override{{Key: "threshold", Value: 0.9}}, func() error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.2, got)
}

func TestWithOverridesRestoresOnPanic(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = store.WithOverrides([]Override{{Key: "threshold", Value: 0.9}}, func() error {
			panic("boom")
		})
	})

	got, err := store.Get("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.2, got)
}

func TestWithOverridesMultipleKeys(t *testing.T) {
	t.Parallel()

	store := NewDefault()
	before := store.Snapshot()

	overrides := []Override{
		{Key: EmailInferenceRegex, Value: ".*"},
		{Key: CategoricalThreshold, Value: 0.5},
		{Key: NumericCategoricalThreshold, Value: 0.1},
	}
	err := store.WithOverrides(overrides, func() error {
		for _, o := range overrides {
			got, err := store.Get(o.Key)
			require.NoError(t, err)
			assert.Equal(t, o.Value, got)
		}
		return nil
	})
	require.NoError(t, err)

	if diff := cmp.Diff(before, store.Snapshot()); diff != "" {
		t.Fatalf("values not restored (-before +after):\n%s", diff)
	}
}

func TestWithOverridesUnknownKeyMutatesNothing(t *testing.T) {
	t.Parallel()

	store := NewDefault()
	before := store.Snapshot()
	called := false

	err := store.WithOverrides([]Override{
		{Key: CategoricalThreshold, Value: 0.9},
		{Key: "nonexistent", Value: 1},
	}, func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.False(t, called, "block must not run when an override key is unknown")

	if diff := cmp.Diff(before, store.Snapshot()); diff != "" {
		t.Fatalf("store mutated (-before +after):\n%s", diff)
	}
}

func TestWithOverridesRepeatedKey(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)

	err := store.WithOverrides([]Override{
		{Key: "threshold", Value: 0.4},
		{Key: "threshold", Value: 0.6},
	}, func() error {
		got, err := store.Get("threshold")
		require.NoError(t, err)
		assert.Equal(t, 0.6, got)
		return nil
	})
	require.NoError(t, err)

	got, err := store.Get("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.2, got)
}

func TestWithOverridesNested(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)

	err := store.WithOverrides([]Override{{Key: "threshold", Value: 0.4}}, func() error {
		inner := store.WithOverrides([]Override{{Key: "threshold", Value: 0.8}}, func() error {
			return nil
		})
		got, err := store.Get("threshold")
		require.NoError(t, err)
		assert.Equal(t, 0.4, got)
		return inner
	})
	require.NoError(t, err)

	got, err := store.Get("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.2, got)
}

func TestApplyRestoreIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)

	restore, err := store.Apply(Override{Key: "threshold", Value: 0.9})
	require.NoError(t, err)

	restore()
	require.NoError(t, store.Set("threshold", 0.7))
	restore()

	got, err := store.Get("threshold")
	require.NoError(t, err)
	assert.Equal(t, 0.7, got)
}

func TestApplyUnknownKey(t *testing.T) {
	t.Parallel()

	store := newThresholdStore(t)

	restore, err := store.Apply(Override{Key: "missing", Value: 1})
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.Nil(t, restore)
}
