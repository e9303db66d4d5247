package engine

import (
	"github.com/Luismorlan/fileshare_in_go/model"
)

// fileACL is the access state of one content ref: who registered it and
// who has been granted access so far.
type fileACL struct {
	owner    string
	grantees map[string]bool
}

// AccessIndex is an incrementally maintained owner/grantee view of the
// mined chain, so authorization doesn't rescan the whole history on every
// submit. It must stay equivalent to the from-scratch utils.Authorize
// scan; the engine only feeds it blocks that were appended to the chain.
type AccessIndex struct {
	files map[string]*fileACL
}

func NewAccessIndex() *AccessIndex {
	return &AccessIndex{
		files: make(map[string]*fileACL),
	}
}

// BuildAccessIndex replays every mined block of the chain.
func BuildAccessIndex(bc *model.Blockchain) *AccessIndex {
	ix := NewAccessIndex()
	for _, b := range bc.Blocks {
		ix.ApplyBlock(b)
	}
	return ix
}

// ApplyBlock folds one newly mined block into the index.
func (ix *AccessIndex) ApplyBlock(b *model.Block) {
	for i := 0; i < len(b.Txs); i++ {
		ix.applyTx(&b.Txs[i])
	}
}

func (ix *AccessIndex) applyTx(tx *model.Transaction) {
	switch tx.Kind {
	case model.TxUpload:
		// The earliest upload wins, matching the chain scan.
		if _, exist := ix.files[tx.ContentRef]; !exist {
			ix.files[tx.ContentRef] = &fileACL{
				owner:    tx.Owner,
				grantees: make(map[string]bool),
			}
		}
	case model.TxGrant:
		acl, exist := ix.files[tx.ContentRef]
		// A grant only counts when issued by the registered owner.
		if exist && acl.owner == tx.Owner {
			acl.grantees[tx.Recipient] = true
		}
	case model.TxRequest:
		// Requests don't change access state.
	}
}

// Owner returns the registered owner of contentRef, if any.
func (ix *AccessIndex) Owner(contentRef string) (string, bool) {
	acl, exist := ix.files[contentRef]
	if !exist {
		return "", false
	}
	return acl.owner, true
}

// Authorize applies the same rules as utils.Authorize, answered from the
// index instead of a chain scan.
func (ix *AccessIndex) Authorize(actor string, action model.TxKind, contentRef string) error {
	acl, known := ix.files[contentRef]

	switch action {
	case model.TxUpload:
		if known && acl.owner != actor {
			return &model.AuthorizationDenied{Reason: "content is already registered to a different owner"}
		}
		return nil
	case model.TxGrant:
		if !known {
			return &model.AuthorizationDenied{Reason: "unknown file"}
		}
		if actor != acl.owner {
			return &model.AuthorizationDenied{Reason: "not owner"}
		}
		return nil
	case model.TxRequest:
		if !known {
			return &model.AuthorizationDenied{Reason: "unknown file"}
		}
		if actor == acl.owner || acl.grantees[actor] {
			return nil
		}
		return &model.AuthorizationDenied{Reason: "not granted"}
	}
	return &model.AuthorizationDenied{Reason: "unknown action"}
}
