package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("test-secret-key", 24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestJWTManager_IssueVerify(t *testing.T) {
	m := newTestJWT(t)

	issued, err := m.Issue("user-123", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 2*time.Second)

	claims, err := m.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := newTestJWT(t)

	valid, err := m.Issue("user-123", time.Hour)
	require.NoError(t, err)

	t.Run("zero ttl", func(t *testing.T) {
		issued, err := m.Issue("user-123", 0)
		require.NoError(t, err)
		_, err = m.Verify(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("past expiry", func(t *testing.T) {
		issued, err := m.Issue("user-123", -time.Minute)
		require.NoError(t, err)
		_, err = m.Verify(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expires while held", func(t *testing.T) {
		issued, err := m.Issue("user-123", time.Minute)
		require.NoError(t, err)
		later := *m
		later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		_, err = later.Verify(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(valid.Token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		// a middle character maps to whole signature bits, unlike the last one
		i := len(sig) / 2
		if sig[i] == 'A' {
			sig[i] = 'B'
		} else {
			sig[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)
		_, err := m.Verify(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		other, err := m.Issue("user-999", time.Hour)
		require.NoError(t, err)
		a := strings.Split(valid.Token, ".")
		b := strings.Split(other.Token, ".")
		_, err = m.Verify(a[0] + "." + b[1] + "." + a[2])
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		o, err := NewJWTManager("another-secret", time.Hour)
		require.NoError(t, err)
		_, err = o.Verify(valid.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, s := range []string{"", "abc", "a.b.c", "a.b"} {
			_, err := m.Verify(s)
			assert.ErrorIs(t, err, ErrInvalidToken, s)
		}
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{UserID: "user-123", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
		s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := &Claims{UserID: "user-123"}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
		require.NoError(t, err)
		_, err = m.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing principal", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
		require.NoError(t, err)
		_, err = m.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
