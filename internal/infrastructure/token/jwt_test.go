package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain"
)

func newTestIssuer(t *testing.T) *JWTIssuer {
	t.Helper()
	issuer, err := NewJWTIssuer(Config{Secret: "test-secret", Issuer: "stockroom-test", TTL: time.Hour})
	require.NoError(t, err)
	return issuer
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer(Config{})
	assert.Error(t, err)
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)
	session := domain.Session{Username: "admin", Role: domain.RoleAdmin}

	signed, expiresAt, err := issuer.Issue(session)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestJWTIssuer_Verify_Rejects(t *testing.T) {
	issuer := newTestIssuer(t)
	session := domain.Session{Username: "worker", Role: domain.RoleWorker}

	otherSecret, err := NewJWTIssuer(Config{Secret: "other", Issuer: "stockroom-test", TTL: time.Hour})
	require.NoError(t, err)
	forged, _, err := otherSecret.Issue(session)
	require.NoError(t, err)

	expired := newTestIssuer(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.Issue(session)
	require.NoError(t, err)

	otherIssuer, err := NewJWTIssuer(Config{Secret: "test-secret", Issuer: "someone-else", TTL: time.Hour})
	require.NoError(t, err)
	foreign, _, err := otherIssuer.Issue(session)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "stockroom-test", Subject: "worker"},
		Role:             domain.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRole, _, err := issuer.Issue(domain.Session{Username: "x", Role: "root"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: forged},
		{name: "expired", token: stale},
		{name: "wrong issuer", token: foreign},
		{name: "unsigned", token: none},
		{name: "unknown role", token: badRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
