package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService("test-secret", 24*time.Hour)
	require.NoError(t, err)
	return s
}

func TestIssueAndVerify(t *testing.T) {
	s := newTestTokenService(t)

	raw, err := s.Issue(7, "alice")
	require.NoError(t, err)

	claims, err := s.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyPayloadShape(t *testing.T) {
	s := newTestTokenService(t)
	raw, err := s.Issue(3, "bob")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	assert.EqualValues(t, 3, claims["userId"])
	assert.Equal(t, "bob", claims["username"])
	assert.Contains(t, claims, "exp")
}

func TestVerifyExpired(t *testing.T) {
	s := newTestTokenService(t)
	s.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	raw, err := s.Issue(1, "alice")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	s := newTestTokenService(t)
	raw, err := s.Issue(1, "alice")
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, err = s.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	other, err := NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)
	raw, err := other.Issue(1, "alice")
	require.NoError(t, err)

	_, err = newTestTokenService(t).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	s := newTestTokenService(t)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	s := newTestTokenService(t)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	s := newTestTokenService(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, Username: "alice"})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceValidation(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewTokenService("secret", 0)
	assert.Error(t, err)
}
