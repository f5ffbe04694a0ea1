// Package config loads the server's runtime settings from multiple sources
// (YAML file, environment variables, CLI flags) with precedence: CLI flags >
// Environment variables > YAML config > Defaults. Option values for the
// option store are never read from these sources; only explicit
// key=value assignments passed on the command line are parsed here.
package config
