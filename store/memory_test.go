package store

import (
	"testing"

	"github.com/Luismorlan/fileshare_in_go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	data := []byte("some sensitive data to be shared securely")

	ref, err := s.Put(data)
	require.Nil(t, err)
	assert.Equal(t, utils.BytesToHex(utils.SHA256(data)), ref)

	got, err := s.Get(ref)
	require.Nil(t, err)
	assert.Equal(t, data, got)
}

func TestMemoryStorePutIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ref1, _ := s.Put([]byte("same bytes"))
	ref2, _ := s.Put([]byte("same bytes"))
	assert.Equal(t, ref1, ref2)
}

func TestMemoryStoreGetUnknownRef(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get("deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	s := NewMemoryStore()
	data := []byte("mutable")
	ref, _ := s.Put(data)
	data[0] = 'X'

	got, err := s.Get(ref)
	require.Nil(t, err)
	assert.Equal(t, []byte("mutable"), got)

	// Mutating the returned slice doesn't corrupt the stored blob either.
	got[0] = 'Y'
	again, _ := s.Get(ref)
	assert.Equal(t, []byte("mutable"), again)
}
