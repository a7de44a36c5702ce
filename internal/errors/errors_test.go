package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	base := NewStd("put failed")
	err := New(base).
		Component("variant-writer").
		Category(CategoryStorageWrite).
		PathContext("uploads/user/avatar/thumbnail/a.webp").
		Build()

	assert.Equal(t, "put failed", err.Error())
	assert.Equal(t, "variant-writer", err.Component)
	assert.Equal(t, CategoryStorageWrite, err.Category)
	assert.Equal(t, "uploads/user/avatar/thumbnail/a.webp", err.Context["path"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestErrorBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("owner %d missing", 42).Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Equal(t, "owner 42 missing", err.Error())
}

func TestUnwrapPreservesOriginal(t *testing.T) {
	t.Parallel()

	sentinel := NewStd("sentinel")
	wrapped := fmt.Errorf("outer: %w", sentinel)
	err := New(wrapped).Category(CategoryDatabase).Build()

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, wrapped, Unwrap(err))
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		want     bool
	}{
		{"matching category", New(NewStd("x")).Category(CategoryNotFound).Build(), CategoryNotFound, true},
		{"different category", New(NewStd("x")).Category(CategoryStorageWrite).Build(), CategoryNotFound, false},
		{"plain error", NewStd("x"), CategoryNotFound, false},
		{"wrapped enhanced error", fmt.Errorf("batch: %w", New(NewStd("x")).Category(CategoryConfiguration).Build()), CategoryConfiguration, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsCategory(tt.err, tt.category))
		})
	}
}

func TestIsNotFoundHelper(t *testing.T) {
	t.Parallel()

	err := Newf("no records named %q", "gone.webp").Category(CategoryNotFound).Build()
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConfiguration(err))
}

func TestGetContextReturnsCopy(t *testing.T) {
	t.Parallel()

	err := New(NewStd("x")).Context("key", "value").Build()
	ctx := err.GetContext()
	ctx["key"] = "mutated"
	assert.Equal(t, "value", err.Context["key"])
}
