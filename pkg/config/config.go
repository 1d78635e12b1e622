// Package config loads environment-driven configuration structs.
//
// Structs declare their variables with caarlos0/env tags. Values from .env
// files are loaded first with godotenv and never override variables that are
// already set in the process environment:
//
//	type AppConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrNilPointer    = errors.New("config: nil pointer")
	ErrLoadingEnv    = errors.New("config: failed to load env file")
	ErrParsingConfig = errors.New("config: failed to parse config")
)

// DefaultEnvFile is read by Load when no files are given. It may be absent.
const DefaultEnvFile = ".env"

// Load reads env files into the process environment and parses v.
// Missing files are skipped; malformed ones are an error.
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := LoadEnv(files...); err != nil {
		return err
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
}

// LoadEnv loads the given env files, or DefaultEnvFile when none are given.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Join(ErrLoadingEnv, err)
		}
	}
	return nil
}
