package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)

	raw, err := iss.Issue(Claims{UserID: 42, Email: "ana@example.com", Role: "ADMIN"})
	require.NoError(t, err)

	c, err := iss.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "ADMIN", c.Role)
}

func TestParse_Rejects(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)

	expired := NewIssuer("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	oldTok, err := expired.Issue(Claims{UserID: 1, Role: "USER"})
	require.NoError(t, err)

	otherKey, err := NewIssuer("other", time.Hour).Issue(Claims{UserID: 1, Role: "USER"})
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"expired":   oldTok,
		"wrong key": otherKey,
		"alg none":  noneTok,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := iss.Parse(raw)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestIssue_RequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour).Issue(Claims{UserID: 1})
	assert.Error(t, err)
}
