package serviceregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type translator struct{}

func (translator) Translate(s string) string { return s }

func TestAddGet(t *testing.T) {
	r := New()
	svc := &translator{}

	require.NoError(t, r.Add("Translate", svc))

	got, ok := r.Get("Translate")
	require.True(t, ok)
	assert.Same(t, svc, got)
}

func TestAddRejectsDuplicates(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("Translate", &translator{}))

	err := r.Add("Translate", &translator{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestAddRejectsEmptyNameAndNilService(t *testing.T) {
	r := New()

	assert.Error(t, r.Add("", &translator{}))
	assert.Error(t, r.Add("Translate", nil))
	assert.Equal(t, 0, r.Count())
}

func TestRemove(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("Translate", &translator{}))

	require.NoError(t, r.Remove("Translate"))
	_, ok := r.Get("Translate")
	assert.False(t, ok)

	assert.Error(t, r.Remove("Translate"))
}

func TestNamesAndCount(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("A", &translator{}))
	require.NoError(t, r.Add("B", &translator{}))

	assert.Equal(t, 2, r.Count())
	assert.ElementsMatch(t, []string{"A", "B"}, r.Names())
}
