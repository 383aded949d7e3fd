package main

import (
	"flag"
	"fmt"

	"github.com/flexprice/assignments/internal/auth"
	"github.com/flexprice/assignments/internal/types"
)

// keygen prints a fresh api key and the auth.api_keys entry that accepts it
func main() {
	name := flag.String("name", "api key", "display name of the key")
	tenantID := flag.String("tenant", types.DefaultTenantID, "tenant the key authenticates as")
	userID := flag.String("user", types.DefaultUserID, "user the key authenticates as")
	flag.Parse()

	key := auth.GenerateAPIKey()

	fmt.Println("API key (keep it secret):", key)
	fmt.Println()
	fmt.Println("auth:")
	fmt.Println("  api_keys:")
	fmt.Printf("    %q:\n", auth.HashAPIKey(key))
	fmt.Printf("      tenant_id: %q\n", *tenantID)
	fmt.Printf("      user_id: %q\n", *userID)
	fmt.Printf("      name: %q\n", *name)
	fmt.Println("      is_active: true")
}
