package testutil

import (
	"context"

	"github.com/flexprice/assignments/internal/types"
)

// SetupContext returns a request context of the default tenant and user
func SetupContext() context.Context {
	return TenantContext(types.DefaultTenantID, types.DefaultUserID)
}

// TenantContext returns a request context as the auth middleware would build
// it for a key of tenantID
func TenantContext(tenantID, userID string) context.Context {
	ctx := types.SetTenantID(context.Background(), tenantID)
	ctx = types.SetUserID(ctx, userID)
	return types.SetRequestID(ctx, types.GenerateUUID())
}
