// Package hash provides file hashing used to compare template files with the
// copies already present in a project.
//
// The merge engine hashes both sides of an additive file merge so it can
// report how many provisioned files were already up to date. A fake
// implementation is provided for tests that need deterministic digests.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the hash of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile computes the SHA-256 hash of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// SameContent reports whether the files at a and b hash to the same digest.
// A missing b is not an error; it simply differs.
func SameContent(h Hasher, a, b string) (bool, error) {
	if _, err := os.Stat(b); os.IsNotExist(err) {
		return false, nil
	}
	ha, err := h.HashFile(a)
	if err != nil {
		return false, err
	}
	hb, err := h.HashFile(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// FakeHasher implements Hasher with fixed digests for testing.
type FakeHasher struct {
	hashes map[string]string
	err    error
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the hash for a specific path.
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// SetError makes every HashFile call fail with err.
func (h *FakeHasher) SetError(err error) {
	h.err = err
}

// HashFile returns the configured hash for the given path, or the path itself
// so that unconfigured files never compare equal.
func (h *FakeHasher) HashFile(path string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	return "fake:" + path, nil
}
