package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionPoolKeepsArrivalOrder(t *testing.T) {
	p := NewTransactionPool()
	p.Append(Transaction{Kind: TxUpload, Owner: "alice", ContentRef: "QmA", Timestamp: 10})
	p.Append(Transaction{Kind: TxUpload, Owner: "bob", ContentRef: "QmB", Timestamp: 11})

	assert.Equal(t, 2, p.Size())
	assert.Equal(t, "alice", p.Txs[0].Owner)
	assert.Equal(t, "bob", p.Txs[1].Owner)
}

func TestTransactionPoolClampsTimestamps(t *testing.T) {
	p := NewTransactionPool()
	p.Append(Transaction{Kind: TxUpload, Owner: "alice", ContentRef: "QmA", Timestamp: 10})
	// The wall clock stepped backwards between submissions.
	p.Append(Transaction{Kind: TxUpload, Owner: "bob", ContentRef: "QmB", Timestamp: 4})

	assert.Equal(t, int64(10), p.Txs[1].Timestamp)
}

func TestTxKindString(t *testing.T) {
	assert.Equal(t, "upload", TxUpload.String())
	assert.Equal(t, "grant", TxGrant.String())
	assert.Equal(t, "request", TxRequest.String())
	assert.Equal(t, "unknown", TxKind(42).String())
}
