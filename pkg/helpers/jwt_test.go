package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("unit-secret", time.Hour)

	token, exp, err := m.Generate("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("unit-secret", -time.Minute)

	token, _, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	issuer := NewJWTManager("issuer-secret", time.Hour)
	verifier := NewJWTManager("other-secret", time.Hour)

	token, _, err := issuer.Generate("user-1")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestJWTTamperedTokenRejected(t *testing.T) {
	m := NewJWTManager("unit-secret", time.Hour)

	token, _, err := m.Generate("user-1")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = m.Parse(tampered)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	m := NewJWTManager("unit-secret", time.Hour)

	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}
