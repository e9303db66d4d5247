package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IPFSStore talks to a local IPFS daemon over its HTTP API. Files are
// added with /api/v0/add and fetched back with /api/v0/cat; the content
// ref is the CID the daemon returns.
type IPFSStore struct {
	// Host:port of the daemon API, e.g. "127.0.0.1:5001".
	apiAddr string
	client  *http.Client
}

func NewIPFSStore(apiAddr string) *IPFSStore {
	return &IPFSStore{
		apiAddr: apiAddr,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type addResponse struct {
	Hash string `json:"Hash"`
}

func (s *IPFSStore) Put(data []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "blob")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("http://%s/api/v0/add", s.apiAddr)
	resp, err := s.client.Post(endpoint, writer.FormDataContentType(), body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: add returned status %d", ErrStoreUnavailable, resp.StatusCode)
	}
	var ar addResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("%w: malformed add response: %v", ErrStoreUnavailable, err)
	}
	if ar.Hash == "" {
		return "", fmt.Errorf("%w: add response carries no CID", ErrStoreUnavailable)
	}
	return ar.Hash, nil
}

func (s *IPFSStore) Get(contentRef string) ([]byte, error) {
	endpoint := fmt.Sprintf("http://%s/api/v0/cat?arg=%s", s.apiAddr, url.QueryEscape(contentRef))
	resp, err := s.client.Post(endpoint, "application/octet-stream", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return ioutil.ReadAll(resp.Body)
	}
	// The daemon reports unknown CIDs and invalid paths over a 500 with a
	// JSON message. Anything that decodes is a lookup failure, anything
	// else means the daemon is misbehaving.
	msg, _ := ioutil.ReadAll(resp.Body)
	if strings.Contains(strings.ToLower(string(msg)), "not found") || resp.StatusCode == http.StatusInternalServerError {
		return nil, ErrNotFound
	}
	return nil, fmt.Errorf("%w: cat returned status %d", ErrStoreUnavailable, resp.StatusCode)
}
