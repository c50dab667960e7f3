// Command token mints an admin bearer token for POST /api/admin/refresh,
// signed with the configured auth.jwt_secret.
//
// Flags:
//
//	--subject  who the token is issued to (required)
//	--ttl      token lifetime (default: auth.token_ttl)
//
// The token is written to stdout. Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/heartmarshall/glossary/internal/app"
	"github.com/heartmarshall/glossary/internal/auth"
	"github.com/heartmarshall/glossary/internal/config"
)

func main() {
	subjectFlag := flag.String("subject", "", "token subject, e.g. an operator e-mail")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime (default: auth.token_ttl)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if !cfg.Auth.Enabled() {
		logger.Error("auth.jwt_secret is not configured")
		os.Exit(1)
	}
	if *subjectFlag == "" {
		logger.Error("--subject is required")
		os.Exit(1)
	}

	ttl := cfg.Auth.TokenTTL
	if *ttlFlag > 0 {
		ttl = *ttlFlag
	}

	mgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl)
	token, err := mgr.GenerateToken(*subjectFlag, auth.RoleAdmin)
	if err != nil {
		logger.Error("generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("admin token issued",
		slog.String("subject", *subjectFlag),
		slog.Duration("ttl", ttl),
	)
	fmt.Println(token)
}
