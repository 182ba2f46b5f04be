package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/browncherrycoffee/gwanak-church/internal/platform/auth/hmactoken"
	platformclock "github.com/browncherrycoffee/gwanak-church/internal/platform/clock"
	"github.com/browncherrycoffee/gwanak-church/internal/platform/config"
)

// Tiny dev tool: mints a session token from the configured secret so the API
// can be exercised with curl without going through POST /api/auth.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ttl := cfg.TokenTTL
	if v := os.Getenv("TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("TTL must be a duration (e.g. 1h): %v", err)
		}
		ttl = d
	}

	signer := hmactoken.New(cfg.AuthSecret, ttl, platformclock.NewSystemClock())
	fmt.Println(signer.Mint())
}
