// Package id generates prefixed NanoID identifiers for stored records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new identifier of the form "prefix-nanoid", e.g.
// "text-V1StGXR8_Z5jdHi6B-myT". The NanoID part is 21 URL-safe characters.
// It fails only when the system cannot supply secure random bytes.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate is Generate with a panic on failure. Reserve it for startup
// paths where missing entropy should crash the process.
func MustGenerate(prefix string) string {
	s, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return s
}
