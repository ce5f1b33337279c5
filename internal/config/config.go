// Package config reads runtime settings from the environment.
//
// An optional .env file in the working directory is loaded first; variables
// already set in the environment win over it.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/robalobadob/letterboxed/internal/board"
)

// Config holds the settings shared by the CLI and the HTTP mode.
type Config struct {
	LogLevel     string // LOG_LEVEL; zerolog level name, empty means the command default
	Addr         string // LETTERBOXED_ADDR; listen address for serve
	ClientOrigin string // CLIENT_ORIGIN; allowed CORS origin for serve
	MinSides     int    // LETTERBOXED_MIN_SIDES; never below board.MinSides
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	c := Config{
		LogLevel:     getEnv("LOG_LEVEL", ""),
		Addr:         getEnv("LETTERBOXED_ADDR", ":5175"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		MinSides:     envInt("LETTERBOXED_MIN_SIDES", board.MinSides),
	}
	if c.MinSides < board.MinSides {
		c.MinSides = board.MinSides
	}
	return c
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
