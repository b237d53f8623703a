package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	MongoURI      string
	JWTSecret     string
	Port          string
	Env           string // "production" | anything else (dev)
	CookieName    string
	CORSOrigins   []string
	ProtectDelete bool // gate DELETE /book/:id and /user/:id behind librarian
}

// defaultOrigins are the known client deployments; override with CORS_ORIGIN.
var defaultOrigins = []string{
	"http://localhost:5173",
	"https://bookify-library.netlify.app",
	"https://bookify-library-client.firebaseapp.com",
}

func loadConfig() Config {
	_ = godotenv.Load() // .env if present (ok if missing in prod)

	cfg := Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		JWTSecret:     os.Getenv("ACCESS_TOKEN_SECRET"),
		Port:          getenv("PORT", "4549"),
		Env:           getenv("APP_ENV", "development"),
		CookieName:    getenv("COOKIE_NAME", "token"),
		CORSOrigins:   defaultOrigins,
		ProtectDelete: os.Getenv("PROTECT_DELETE") == "true",
	}

	if raw := os.Getenv("CORS_ORIGIN"); raw != "" {
		var origins []string
		for _, p := range strings.Split(raw, ",") {
			if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	if cfg.MongoURI == "" {
		log.Fatal().Msg("[env] MONGO_URI is not set. Refusing to start.")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("[env] ACCESS_TOKEN_SECRET is not set. Refusing to start.")
	}
	return cfg
}

func (c Config) production() bool { return c.Env == "production" }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
