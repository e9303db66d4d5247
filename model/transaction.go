package model

// TxKind tells what kind of action a transaction records.
type TxKind int64

const (
	// Register a new file and its owner on the ledger.
	TxUpload TxKind = iota
	// Owner grants a recipient access to a file.
	TxGrant
	// A permitted actor retrieved the file content.
	TxRequest
)

func (k TxKind) String() string {
	switch k {
	case TxUpload:
		return "upload"
	case TxGrant:
		return "grant"
	case TxRequest:
		return "request"
	}
	return "unknown"
}

// Transaction is a single immutable record of one file-sharing action.
// Its identity for auditing is the SHA256 digest of its canonical byte
// encoding, computed on demand and never stored.
type Transaction struct {
	// What happened: upload, grant or request.
	Kind TxKind
	// Identity of the file's registered owner. Set at upload, carried
	// forward on grant/request for convenience. Authority is always derived
	// from chain history, never from this field alone.
	Owner string
	// Identity of the counterparty. Empty for upload.
	Recipient string
	// Opaque content identifier handed out by the content store.
	ContentRef string
	// Creation time in unix seconds. Non-decreasing within a block.
	Timestamp int64
}

// TransactionPool contains all pending transactions that haven't been mined
// into a block yet, kept in arrival order.
type TransactionPool struct {
	Txs []Transaction
}

// NewTransactionPool creates a new transaction pool with no transaction at all.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{}
}

// Append adds an already validated transaction to the back of the pool.
// Timestamps are clamped so the pool stays non-decreasing even if the wall
// clock steps backwards between submissions.
func (p *TransactionPool) Append(tx Transaction) {
	if n := len(p.Txs); n > 0 && tx.Timestamp < p.Txs[n-1].Timestamp {
		tx.Timestamp = p.Txs[n-1].Timestamp
	}
	p.Txs = append(p.Txs, tx)
}

// Size returns how many transactions are pending.
func (p *TransactionPool) Size() int {
	return len(p.Txs)
}
