// The stubcms binary runs the in-memory Nomad Tales backend on a local
// port. It exists for development against a predictable dataset; state is
// lost on exit.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/nomad-tales/nomadtales/internal/logging"
	"github.com/nomad-tales/nomadtales/internal/stubcms"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("STUBCMS_ADDR", ":1337"), "listen address")
	secret := flag.String("secret", envOr("STUBCMS_JWT_SECRET", "stubcms-dev-secret"), "jwt signing secret")
	seed := flag.String("seed", os.Getenv("STUBCMS_SEED_FILE"), "optional YAML seed file")
	flag.Parse()

	logger := logging.NewDefault("info")

	server, err := stubcms.NewServer(stubcms.Config{JWTSecret: *secret, SeedFile: *seed}, logger)
	if err != nil {
		log.Fatalf("stubcms init: %v", err)
	}

	log.Printf("stubcms listening on %s", *addr)
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		log.Fatalf("stubcms: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
