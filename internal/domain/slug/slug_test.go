package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := map[string][]string{
		"blue-hour":     {"Blue Hour"},
		"john-doe":      {"  John ", "Doe"},
		"terrace-night": {"Terrace", "@ Night"},
		"a-b":           {"a__b"},
		"":              {"!!!"},
	}
	for want, parts := range tests {
		assert.Equal(t, want, Make(parts...), "parts %q", parts)
	}
}

func TestUnique(t *testing.T) {
	s, err := Unique("gallery", func(string) (bool, error) { return false, nil }, "Modern Art")
	require.NoError(t, err)
	assert.Equal(t, "modern-art", s)

	calls := 0
	s, err = Unique("gallery", func(c string) (bool, error) {
		calls++
		return c == "modern-art", nil
	}, "Modern Art")
	require.NoError(t, err)
	assert.Regexp(t, `^modern-art-[0-9a-f]{8}$`, s)
	assert.Equal(t, 2, calls)

	s, err = Unique("gallery", func(string) (bool, error) { return false, nil }, "???")
	require.NoError(t, err)
	assert.Equal(t, "gallery", s)

	_, err = Unique("gallery", func(string) (bool, error) { return false, errors.New("db down") }, "x")
	assert.Error(t, err)
}
