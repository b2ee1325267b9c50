package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpire(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "days", in: "7d", want: 7 * 24 * time.Hour},
		{name: "weeks", in: "2w", want: 14 * 24 * time.Hour},
		{name: "go duration", in: "36h", want: 36 * time.Hour},
		{name: "minutes", in: "90m", want: 90 * time.Minute},
		{name: "empty", in: "", wantErr: true},
		{name: "zero days", in: "0d", wantErr: true},
		{name: "garbage", in: "soon", wantErr: true},
		{name: "negative", in: "-1h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpire(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	c := &Config{JWTExpire: "bogus"}
	assert.Equal(t, 7*24*time.Hour, c.JWTTTL())
	assert.False(t, c.MailEnabled())
	assert.False(t, c.GoogleEnabled())

	c = &Config{
		JWTExpire:           "1d",
		ClientEmail:         "ops@example.com",
		ClientEmailPassword: "secret",
		GoogleClientID:      "id",
		GoogleClientSecret:  "s",
		GoogleCallbackURL:   "http://localhost/cb",
		AppEnv:              "production",
	}
	assert.Equal(t, 24*time.Hour, c.JWTTTL())
	assert.True(t, c.MailEnabled())
	assert.True(t, c.GoogleEnabled())
	assert.True(t, c.IsProduction())
}
