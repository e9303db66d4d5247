package engine

import (
	"fmt"
	"testing"

	"github.com/Luismorlan/fileshare_in_go/commands"
	"github.com/Luismorlan/fileshare_in_go/model"
	"github.com/Luismorlan/fileshare_in_go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mineHistory seals each transaction batch into its own block.
func mineHistory(t *testing.T, batches ...[]model.Transaction) *model.Blockchain {
	bc := utils.NewBlockchain()
	for _, txs := range batches {
		ctl := make(chan commands.Command)
		block, _, err := utils.CreateNewBlock(txs, bc.Tail().Hash, bc.Length(), 1, ctl)
		require.Nil(t, err)
		bc.Blocks = append(bc.Blocks, block)
	}
	return bc
}

func TestAccessIndexOwnerAndGrants(t *testing.T) {
	bc := mineHistory(t,
		[]model.Transaction{{Kind: model.TxUpload, Owner: "alice", ContentRef: "QmX", Timestamp: 1}},
		[]model.Transaction{{Kind: model.TxGrant, Owner: "alice", Recipient: "bob", ContentRef: "QmX", Timestamp: 2}},
	)
	ix := BuildAccessIndex(bc)

	owner, known := ix.Owner("QmX")
	assert.True(t, known)
	assert.Equal(t, "alice", owner)
	_, known = ix.Owner("QmUnknown")
	assert.False(t, known)

	assert.Nil(t, ix.Authorize("bob", model.TxRequest, "QmX"))
	assert.NotNil(t, ix.Authorize("carol", model.TxRequest, "QmX"))
}

// The incremental index must answer exactly like the from-scratch chain
// scan, for every actor, action and content ref, at every chain length.
func TestAccessIndexEquivalentToChainScan(t *testing.T) {
	batches := [][]model.Transaction{
		{{Kind: model.TxUpload, Owner: "alice", ContentRef: "QmX", Timestamp: 1}},
		{
			{Kind: model.TxGrant, Owner: "alice", Recipient: "bob", ContentRef: "QmX", Timestamp: 2},
			{Kind: model.TxUpload, Owner: "carol", ContentRef: "QmY", Timestamp: 2},
		},
		{
			// Forged grant: mallory is not the owner of QmX.
			{Kind: model.TxGrant, Owner: "mallory", Recipient: "dave", ContentRef: "QmX", Timestamp: 3},
			// Colliding upload: QmX is already registered to alice.
			{Kind: model.TxUpload, Owner: "mallory", ContentRef: "QmX", Timestamp: 3},
		},
		{
			{Kind: model.TxGrant, Owner: "carol", Recipient: "alice", ContentRef: "QmY", Timestamp: 4},
			{Kind: model.TxRequest, Owner: "alice", Recipient: "bob", ContentRef: "QmX", Timestamp: 4},
		},
	}

	actors := []string{"alice", "bob", "carol", "dave", "mallory", "nobody"}
	actions := []model.TxKind{model.TxUpload, model.TxGrant, model.TxRequest}
	refs := []string{"QmX", "QmY", "QmUnknown"}

	full := mineHistory(t, batches...)
	ix := NewAccessIndex()
	for i, block := range full.Blocks {
		ix.ApplyBlock(block)
		// Compare against a scan of the prefix chain ending at this block.
		prefix := &model.Blockchain{Blocks: full.Blocks[:i+1]}
		for _, actor := range actors {
			for _, action := range actions {
				for _, ref := range refs {
					want := utils.Authorize(prefix, actor, action, ref)
					got := ix.Authorize(actor, action, ref)
					assert.Equal(t, want, got,
						fmt.Sprintf("block %d: %s %s %s", i, actor, action, ref))
				}
			}
		}
	}
}

func TestBuildAccessIndexMatchesIncremental(t *testing.T) {
	bc := mineHistory(t,
		[]model.Transaction{{Kind: model.TxUpload, Owner: "alice", ContentRef: "QmX", Timestamp: 1}},
		[]model.Transaction{{Kind: model.TxGrant, Owner: "alice", Recipient: "bob", ContentRef: "QmX", Timestamp: 2}},
	)

	rebuilt := BuildAccessIndex(bc)
	incremental := NewAccessIndex()
	for _, b := range bc.Blocks {
		incremental.ApplyBlock(b)
	}
	assert.Equal(t, rebuilt, incremental)
}
