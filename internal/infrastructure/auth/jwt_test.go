package auth

import (
	"testing"
	"time"

	"github.com/mercado/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-characters",
		AccessTokenExpiration: expiration,
		Issuer:                "mercado-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()
	customerID := uuid.New()
	sellerID := uuid.New()

	t.Run("round trips all claims", func(t *testing.T) {
		token, expiresAt, err := service.Issue(userID, "maria", &customerID, &sellerID)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "maria", claims.Username)

		parsed, ok := claims.ParsedCustomerID()
		require.True(t, ok)
		assert.Equal(t, customerID, parsed)

		parsed, ok = claims.ParsedSellerID()
		require.True(t, ok)
		assert.Equal(t, sellerID, parsed)
	})

	t.Run("profiles are optional", func(t *testing.T) {
		token, _, err := service.Issue(userID, "maria", nil, nil)
		require.NoError(t, err)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		_, ok := claims.ParsedCustomerID()
		assert.False(t, ok)
		_, ok = claims.ParsedSellerID()
		assert.False(t, ok)
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		token, _, err := service.Issue(userID, "maria", nil, nil)
		require.NoError(t, err)

		_, err = service.Validate(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-with-32-characters",
			AccessTokenExpiration: time.Hour,
			Issuer:                "mercado-test",
		})
		token, _, err := other.Issue(userID, "maria", nil, nil)
		require.NoError(t, err)

		_, err = service.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, _, err := expired.Issue(userID, "maria", nil, nil)
		require.NoError(t, err)

		_, err = expired.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
