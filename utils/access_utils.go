package utils

import (
	"github.com/Luismorlan/fileshare_in_go/model"
)

// RegisteredOwner scans mined blocks oldest to newest and returns the
// owner recorded by the earliest upload of contentRef. The second return
// is false when the file is unknown to the ledger.
func RegisteredOwner(bc *model.Blockchain, contentRef string) (string, bool) {
	for _, b := range bc.Blocks {
		for i := 0; i < len(b.Txs); i++ {
			tx := &b.Txs[i]
			if tx.Kind == model.TxUpload && tx.ContentRef == contentRef {
				return tx.Owner, true
			}
		}
	}
	return "", false
}

// Grantees accumulates every recipient granted access to contentRef by its
// registered owner. Grants are monotonic: there is no revoke transaction,
// so once granted always granted.
func Grantees(bc *model.Blockchain, contentRef string, owner string) map[string]bool {
	grantees := make(map[string]bool)
	for _, b := range bc.Blocks {
		for i := 0; i < len(b.Txs); i++ {
			tx := &b.Txs[i]
			if tx.Kind == model.TxGrant && tx.ContentRef == contentRef && tx.Owner == owner {
				grantees[tx.Recipient] = true
			}
		}
	}
	return grantees
}

// Authorize answers whether actor may perform the given action on
// contentRef, purely from mined history. Pending pool contents are never
// consulted: an unconfirmed grant can't justify a request.
//
// Rules:
//   - upload: permitted unless the ref is already registered to someone
//     else (re-upload by the same owner is permitted).
//   - grant: only the registered owner may grant.
//   - request: the registered owner or any accumulated grantee.
//
// Returns nil when permitted and *model.AuthorizationDenied otherwise.
// Deterministic: identical chains give identical answers.
func Authorize(bc *model.Blockchain, actor string, action model.TxKind, contentRef string) error {
	owner, known := RegisteredOwner(bc, contentRef)

	switch action {
	case model.TxUpload:
		if known && owner != actor {
			return &model.AuthorizationDenied{Reason: "content is already registered to a different owner"}
		}
		return nil
	case model.TxGrant:
		if !known {
			return &model.AuthorizationDenied{Reason: "unknown file"}
		}
		if actor != owner {
			return &model.AuthorizationDenied{Reason: "not owner"}
		}
		return nil
	case model.TxRequest:
		if !known {
			return &model.AuthorizationDenied{Reason: "unknown file"}
		}
		if actor == owner {
			return nil
		}
		if Grantees(bc, contentRef, owner)[actor] {
			return nil
		}
		return &model.AuthorizationDenied{Reason: "not granted"}
	}
	return &model.AuthorizationDenied{Reason: "unknown action"}
}
