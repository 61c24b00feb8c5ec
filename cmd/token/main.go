// Command token issues a bearer token for a verifier client.
//
//	CPV_JWT_SECRET=... go run ./cmd/token -client node-a
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"commercial-paper-verifier/config"
	"commercial-paper-verifier/internal/service"
)

func main() {
	clientID := flag.String("client", "", "client id to embed in the token (required)")
	cfgPath := flag.String("config", "", "path to config file")
	expiry := flag.Duration("expiry", 0, "token lifetime, overrides jwt.expiry when set")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "jwt.secret must be set (CPV_JWT_SECRET)")
		os.Exit(1)
	}

	ttl := cfg.JWT.Expiry
	if *expiry > 0 {
		ttl = *expiry
	}

	token, exp, err := service.NewJWTTokenService(cfg.JWT.Secret, ttl, cfg.JWT.Issuer).Generate(*clientID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", exp.UTC().Format(time.RFC3339))
}
