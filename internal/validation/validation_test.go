package validation

import (
	"testing"

	"artmarket-admin/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ArtworkID string  `json:"artworkId" validate:"required"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Kind      string  `json:"kind" validate:"omitempty,oneof=gallery museum"`
	Price     float64 `json:"price" validate:"gte=0"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{"missing required", sample{}, "artworkId", "artworkId is required"},
		{"bad email", sample{ArtworkID: "A", Email: "nope"}, "email", "Invalid email format"},
		{"bad enum", sample{ArtworkID: "A", Kind: "zoo"}, "kind", "kind must be one of: gallery museum"},
		{"negative", sample{ArtworkID: "A", Price: -1}, "price", "price must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			require.Error(t, err)
			e := apperr.As(err)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Equal(t, tt.wantField, e.Field)
			assert.Equal(t, tt.wantMsg, e.Message)
		})
	}
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(sample{ArtworkID: "A1", Email: "a@b.co", Kind: "museum", Price: 10}))
}
