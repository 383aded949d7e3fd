package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex cust_01J9Z7Y8K3P4Q5R6S7T8V9W0XY
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	UUID_PREFIX_CUSTOMER      = "cust"
	UUID_PREFIX_ASSET         = "asset"
	UUID_PREFIX_DEVICE        = "dev"
	UUID_PREFIX_AUDIT_LOG     = "alog"
	UUID_PREFIX_WEBHOOK_EVENT = "webhook"
	UUID_PREFIX_REQUEST       = "req"
)
