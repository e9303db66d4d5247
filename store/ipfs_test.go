package store

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDaemon mimics the two IPFS API endpoints the store uses.
func fakeDaemon(blobs map[string][]byte) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/add", func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		buf := make([]byte, 1<<20)
		n, _ := file.Read(buf)
		cid := fmt.Sprintf("Qm%d", len(blobs))
		blobs[cid] = buf[:n]
		fmt.Fprintf(w, `{"Name":"blob","Hash":"%s","Size":"%d"}`, cid, n)
	})
	mux.HandleFunc("/api/v0/cat", func(w http.ResponseWriter, r *http.Request) {
		cid := r.URL.Query().Get("arg")
		blob, ok := blobs[cid]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, `{"Message":"merkledag: not found","Code":0}`)
			return
		}
		w.Write(blob)
	})
	return httptest.NewServer(mux)
}

func TestIPFSStorePutGet(t *testing.T) {
	blobs := make(map[string][]byte)
	daemon := fakeDaemon(blobs)
	defer daemon.Close()

	s := NewIPFSStore(strings.TrimPrefix(daemon.URL, "http://"))

	data := []byte("hello ipfs")
	ref, err := s.Put(data)
	require.Nil(t, err)
	assert.NotEmpty(t, ref)

	got, err := s.Get(ref)
	require.Nil(t, err)
	assert.Equal(t, data, got)
}

func TestIPFSStoreGetUnknownCID(t *testing.T) {
	daemon := fakeDaemon(make(map[string][]byte))
	defer daemon.Close()

	s := NewIPFSStore(strings.TrimPrefix(daemon.URL, "http://"))
	_, err := s.Get("QmUnknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIPFSStoreDaemonUnreachable(t *testing.T) {
	// Nothing listens here.
	s := NewIPFSStore("127.0.0.1:1")

	_, err := s.Put([]byte("data"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = s.Get("QmX")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
