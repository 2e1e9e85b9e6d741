package store

import (
	_ "embed"
	"os"
)

// defaultSeed is the fixed dataset loaded at process start. It keeps the
// historical raw shape on purpose: case-variant fan field spellings,
// mixed timestamp encodings, and both message storage strategies.
//
//go:embed seed.json
var defaultSeed []byte

// SeedDefault loads the embedded seed dataset.
func SeedDefault() error {
	return Seed(defaultSeed)
}

// SeedFile loads a seed document from disk, for deployments that ship
// their own dataset.
func SeedFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Seed(b)
}
