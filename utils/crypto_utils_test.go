package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256(t *testing.T) {
	message := []byte("Hello World!")
	digest := SHA256(message)
	assert.Len(t, digest, 32)
	// Deterministic for the same input.
	assert.Equal(t, digest, SHA256([]byte("Hello World!")))
	assert.NotEqual(t, digest, SHA256([]byte("Hello World")))
	// Known vector for the empty input.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", BytesToHex(SHA256(nil)))
}
