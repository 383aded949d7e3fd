package auth

import (
	"testing"
	"time"

	"github.com/flexprice/assignments/internal/config"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAPIKey(t *testing.T) {
	active, inactive := GenerateAPIKey(), GenerateAPIKey()
	cfg := &config.Configuration{
		Auth: config.AuthConfig{
			APIKeys: map[string]config.APIKey{
				HashAPIKey(active):   {TenantID: "tenant_1", UserID: "user_1", IsActive: true},
				HashAPIKey(inactive): {TenantID: "tenant_1", UserID: "user_2", IsActive: false},
			},
		},
	}

	tenantID, userID, ok := ValidateAPIKey(cfg, active)
	assert.True(t, ok)
	assert.Equal(t, "tenant_1", tenantID)
	assert.Equal(t, "user_1", userID)

	_, _, ok = ValidateAPIKey(cfg, inactive)
	assert.False(t, ok)

	_, _, ok = ValidateAPIKey(cfg, "unknown")
	assert.False(t, ok)

	_, _, ok = ValidateAPIKey(cfg, "")
	assert.False(t, ok)
}

func TestHashAPIKey(t *testing.T) {
	assert.Equal(t, HashAPIKey("key"), HashAPIKey("key"))
	assert.NotEqual(t, HashAPIKey("key"), HashAPIKey("other"))
	assert.Len(t, HashAPIKey("key"), 64)
}

func TestValidateToken(t *testing.T) {
	const secret = "test-secret"

	token, err := GenerateToken(secret, "user_1", "tenant_1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "tenant_1", claims.TenantID)

	_, err = ValidateToken("other-secret", token)
	assert.True(t, ierr.IsPermissionDenied(err))

	expired, err := GenerateToken(secret, "user_1", "tenant_1", -time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(secret, expired)
	assert.True(t, ierr.IsPermissionDenied(err))

	noTenant, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user_1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	claims, err = ValidateToken(secret, noTenant)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTenantID, claims.TenantID)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": "tenant_1",
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ValidateToken(secret, noUser)
	assert.True(t, ierr.IsPermissionDenied(err))
}
