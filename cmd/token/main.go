// Command token issues tenant-scoped bearer tokens for POS terminals and
// local testing. The signing secret comes from QREATS_AUTH_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/qreats/backend/internal/infrastructure/auth"
	"github.com/qreats/backend/internal/infrastructure/config"
)

func main() {
	var (
		tenant  string
		subject string
		ttl     time.Duration
	)
	flag.StringVar(&tenant, "tenant", "", "Tenant ID the token is scoped to (required)")
	flag.StringVar(&subject, "subject", "pos-terminal", "Subject claim, usually a terminal or user name")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.token_ttl)")
	flag.Parse()

	tenantID, err := uuid.Parse(tenant)
	if err != nil {
		fmt.Fprintln(os.Stderr, "a valid -tenant UUID is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if ttl > 0 {
		cfg.Auth.TokenTTL = ttl
	}

	svc := auth.NewJWTService(cfg.Auth)
	if !svc.Enabled() {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret is not configured")
		os.Exit(1)
	}

	token, expiresAt, err := svc.Issue(tenantID, subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}
