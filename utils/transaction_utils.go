package utils

import (
	"github.com/Luismorlan/fileshare_in_go/model"
)

// GetTransactionBytes converts a transaction to its canonical byte
// encoding: kind, owner, recipient, content ref and timestamp in fixed
// field order. String fields are length-prefixed so the encoding is
// unambiguous.
func GetTransactionBytes(t *model.Transaction) []byte {
	var data []byte
	data = append(data, Int64ToBytes(int64(t.Kind))...)
	data = append(data, StringToBytes(t.Owner)...)
	data = append(data, StringToBytes(t.Recipient)...)
	data = append(data, StringToBytes(t.ContentRef)...)
	data = append(data, Int64ToBytes(t.Timestamp)...)
	return data
}

// GetTransactionDigest returns the hex SHA256 of the canonical encoding.
// Used for auditing and display; chain linkage hashes the block header.
func GetTransactionDigest(t *model.Transaction) string {
	return BytesToHex(SHA256(GetTransactionBytes(t)))
}

// A transaction is structurally valid if:
// 1. The kind is a known kind.
// 2. Owner is always present.
// 3. Recipient is present exactly for grant and request.
// 4. ContentRef is always present (grants are indexed by it too).
func ValidateTransactionFields(t *model.Transaction) error {
	switch t.Kind {
	case model.TxUpload:
		if t.Recipient != "" {
			return &model.ValidationError{Reason: "upload must not carry a recipient"}
		}
	case model.TxGrant, model.TxRequest:
		if t.Recipient == "" {
			return &model.ValidationError{Reason: t.Kind.String() + " requires a recipient"}
		}
	default:
		return &model.ValidationError{Reason: "unknown transaction kind"}
	}
	if t.Owner == "" {
		return &model.ValidationError{Reason: "owner is missing"}
	}
	if t.ContentRef == "" {
		return &model.ValidationError{Reason: "content ref is missing"}
	}
	return nil
}
