package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoadEnv loads environment variables from a .env file. A missing file is
// not an error; variables already set in the environment win over the file.
func LoadEnv(filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", filename, err)
	}
	defer file.Close()

	log.Debug().Str("file", filename).Msg("Loading environment variables")

	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			log.Warn().Str("file", filename).Int("line", lineNumber).Msg("Skipping invalid .env line")
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = unquote(value)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}
	return nil
}

// LoadEnvWithFallback tries the standard .env file locations in order
func LoadEnvWithFallback() {
	locations := []string{
		".env",
		".env.local",
		"config/.env",
	}

	for _, location := range locations {
		if err := LoadEnv(location); err != nil {
			log.Warn().Err(err).Str("file", location).Msg("Could not load .env file")
		}
	}
}

// EnvOrDefault returns the value of key, or fallback when unset or blank
func EnvOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// EnvBool interprets key as a boolean flag ("true"/"1"/"yes" are true,
// "false"/"0"/"no" are false), returning fallback when unset or unparsable.
func EnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

// unquote strips a single pair of matching surrounding quotes
func unquote(value string) string {
	if len(value) >= 2 {
		if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
			(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
			return value[1 : len(value)-1]
		}
	}
	return value
}
