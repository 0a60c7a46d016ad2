package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/models"
)

var _ middleware.TokenValidator = (*TokenManager)(nil)

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", "blog-platform", time.Hour)
	user := models.NewUser("writer@example.com", "hash")

	token, expiresAt, err := tm.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Sub)
	assert.Equal(t, "writer@example.com", claims.Email)
	assert.Equal(t, "blog-platform", claims.Iss)
	assert.Equal(t, expiresAt.Unix(), claims.Exp)
}

func TestTokenManager_ValidateToken_Failures(t *testing.T) {
	user := models.NewUser("writer@example.com", "hash")
	tm := NewTokenManager("test-secret", "blog-platform", time.Hour)

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("test-secret", "blog-platform", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.Issue(user)
		require.NoError(t, err)

		_, err = tm.ValidateToken(context.Background(), token)
		assert.True(t, errors.Is(err, ErrTokenExpired))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", "blog-platform", time.Hour)
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = tm.ValidateToken(context.Background(), token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager("test-secret", "someone-else", time.Hour)
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = tm.ValidateToken(context.Background(), token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("unsigned algorithm rejected", func(t *testing.T) {
		claims := Claims{
			UserID: user.ID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "blog-platform",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.ValidateToken(context.Background(), token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("missing userId", func(t *testing.T) {
		claims := Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "blog-platform",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.ValidateToken(context.Background(), token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ValidateToken(context.Background(), "not.a.token")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	ok, err := CheckPassword(hash, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "s3cret!")
	assert.Error(t, err)
}
