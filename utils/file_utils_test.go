package utils

import (
	"path/filepath"
	"testing"

	"github.com/Luismorlan/fileshare_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainPersistenceRoundTrip(t *testing.T) {
	difficulty := 1
	bc := mineTestChain(t, difficulty,
		[]model.Transaction{{Kind: model.TxUpload, Owner: "alice", ContentRef: "QmX", Timestamp: 1}},
		[]model.Transaction{{Kind: model.TxGrant, Owner: "alice", Recipient: "bob", ContentRef: "QmX", Timestamp: 2}},
	)

	fPath := filepath.Join(t.TempDir(), "chain.json")
	require.Nil(t, SaveChainToFile(bc, fPath))

	loaded, err := ReadChainFromFPath(fPath)
	require.Nil(t, err)
	assert.Equal(t, bc, loaded)

	// Reload must re-validate and re-authorize identically.
	assert.Nil(t, ValidateChain(loaded, difficulty))
	assert.Nil(t, Authorize(loaded, "bob", model.TxRequest, "QmX"))
	assert.NotNil(t, Authorize(loaded, "mallory", model.TxRequest, "QmX"))
}

func TestParseChainFileMissingStartsFresh(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "chain.json")
	bc, err := ParseChainFile(fPath, 1)
	require.Nil(t, err)
	assert.Equal(t, NewBlockchain(), bc)
}

func TestParseChainFileRejectsTamperedChain(t *testing.T) {
	difficulty := 1
	bc := mineTestChain(t, difficulty,
		[]model.Transaction{{Kind: model.TxUpload, Owner: "alice", ContentRef: "QmX", Timestamp: 1}},
	)
	bc.Blocks[1].Txs[0].Owner = "mallory"

	fPath := filepath.Join(t.TempDir(), "chain.json")
	require.Nil(t, SaveChainToFile(bc, fPath))

	_, err := ParseChainFile(fPath, difficulty)
	var cie *model.ChainIntegrityError
	assert.ErrorAs(t, err, &cie)
}

func TestParseChainFileEmptyPath(t *testing.T) {
	_, err := ParseChainFile("", 1)
	assert.NotNil(t, err)
}
