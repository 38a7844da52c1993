// Package main implements tokengen, a development CLI that mints signed
// JWTs carrying a city claim, for exercising the API locally. The signing
// secret comes from the same configuration the server reads.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/cityinfohq/cityinfo-api/internal/config"
	"github.com/cityinfohq/cityinfo-api/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "dev-user", "token subject")
	city := flag.String("city", "", "value for the city claim (required)")
	claimKey := flag.String("claim-key", "", "claim key override; defaults to the configured auth.city_claim_key")
	flag.Parse()

	if *city == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	key := cfg.Auth.CityClaimKey
	if *claimKey != "" {
		key = *claimKey
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to create JWT service: %v", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), *subject, map[string]string{
		key: *city,
	})
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
