// Package id generates prefixed, URL-safe identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the identifiers minted by the server.
const (
	PrefixSync = "sync"
)

// nanoidLength is the go-nanoid default length.
const nanoidLength = 21

// Generate creates an identifier of the form prefix-nanoid,
// e.g. "sync-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewSyncID returns an identifier for one calendar sync run.
// Every event inserted by the run carries the same sync id.
func NewSyncID() (string, error) {
	return Generate(PrefixSync)
}

// Valid reports whether s looks like an identifier minted with prefix.
func Valid(prefix, s string) bool {
	if len(s) != len(prefix)+1+nanoidLength || s[:len(prefix)+1] != prefix+"-" {
		return false
	}
	for _, r := range s[len(prefix)+1:] {
		if !isNanoidRune(r) {
			return false
		}
	}
	return true
}

func isNanoidRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}
