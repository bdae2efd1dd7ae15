package auth

import (
	"testing"
	"time"

	autherrors "go-hrops/internal/auth/errors"
	"go-hrops/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager(testSecret, 7*24*time.Hour)
	actor := domain.Actor{ID: 5, Email: "five@example.com", Role: domain.Predefined(domain.RoleHROfficer)}

	token, expiresAt, err := m.Issue(actor)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, "five@example.com", claims.Email)
	assert.Equal(t, "HR Officer", claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Issue(domain.Actor{ID: 1, Role: domain.Predefined(domain.RoleAdmin)})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
		token, _, err := other.Issue(domain.Actor{ID: 1, Role: domain.Predefined(domain.RoleAdmin)})
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token, _, err := m.Issue(domain.Actor{ID: 0, Role: domain.Predefined(domain.RoleAdmin)})
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
