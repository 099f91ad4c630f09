// Package config parses environment variables into tagged structs.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for reading .env files. Nothing is read until
// Load is called, and Load never mutates the process environment: values
// from .env files are layered underneath the real environment, so an
// exported variable always wins over a file entry.
//
//	var cfg email.Config
//	if err := config.Load(&cfg, config.WithEnvFiles(".env")); err != nil {
//	    return err
//	}
//
// Missing .env files are skipped unless WithRequiredEnvFiles is used.
package config
