package engine

import (
	"sync"
	"time"

	"github.com/Luismorlan/fileshare_in_go/commands"
	"github.com/Luismorlan/fileshare_in_go/config"
	"github.com/Luismorlan/fileshare_in_go/model"
	"github.com/Luismorlan/fileshare_in_go/store"
	"github.com/Luismorlan/fileshare_in_go/utils"
	"github.com/jinzhu/copier"
	uuid "github.com/satori/go.uuid"
)

// LedgerEngine owns the one authoritative chain and the pending pool and
// exposes the upload/grant/request/mine/status operations to the command
// surface. All mutation goes through a single mutex so a future
// long-running service can't corrupt the chain under concurrent access.
type LedgerEngine struct {
	// The authoritative history.
	blockchain *model.Blockchain
	// Pending transactions, in arrival order. Incoming accepted
	// transactions are added to this pool.
	txPool *model.TransactionPool
	// Incremental owner/grantee view of the mined chain.
	index *AccessIndex
	// External collaborator holding the actual file bytes.
	store store.ContentStore
	// Ledger config.
	config config.AppConfig
	// A single mutex for changing internal state.
	m sync.RWMutex
	// A unique identifier of this engine instance. Doesn't affect the
	// chain, only used to tag artifacts like rendered chain images.
	uuid string
}

// Status is the answer to the status operation.
type Status struct {
	ChainLength int64
	PoolSize    int
	Valid       bool
	TailHash    string
}

// NewLedgerEngine creates an engine starting from the fixed genesis block.
func NewLedgerEngine(c config.AppConfig, cs store.ContentStore) *LedgerEngine {
	myuuid := uuid.NewV4()
	bc := utils.NewBlockchain()
	return &LedgerEngine{
		blockchain: bc,
		txPool:     model.NewTransactionPool(),
		index:      BuildAccessIndex(bc),
		store:      cs,
		config:     c,
		m:          sync.RWMutex{},
		uuid:       myuuid.String(),
	}
}

// NewLedgerEngineWithChain creates an engine on top of an existing chain,
// e.g. one restored from disk. The chain is revalidated first.
func NewLedgerEngineWithChain(c config.AppConfig, cs store.ContentStore, bc *model.Blockchain) (*LedgerEngine, error) {
	if err := utils.ValidateChain(bc, c.DIFFICULTY); err != nil {
		return nil, err
	}
	e := NewLedgerEngine(c, cs)
	e.blockchain = bc
	e.index = BuildAccessIndex(bc)
	return e, nil
}

// UUID returns the instance identifier.
func (e *LedgerEngine) UUID() string {
	return e.uuid
}

// SubmitTransaction validates the transaction and appends it to the pool.
// Structural validation first, then authorization against mined history
// only; pending pool contents never justify a submission. All or nothing:
// a rejected transaction leaves no trace.
func (e *LedgerEngine) SubmitTransaction(tx model.Transaction) error {
	if tx.Timestamp == 0 {
		tx.Timestamp = time.Now().Unix()
	}
	if err := utils.ValidateTransactionFields(&tx); err != nil {
		return err
	}

	e.m.Lock()
	defer e.m.Unlock()

	if err := e.index.Authorize(actorOf(&tx), tx.Kind, tx.ContentRef); err != nil {
		return err
	}
	e.txPool.Append(tx)
	return nil
}

// actorOf tells which identity is performing the action a transaction
// records: the owner acts on uploads and grants, the recipient on requests.
func actorOf(tx *model.Transaction) string {
	if tx.Kind == model.TxRequest {
		return tx.Recipient
	}
	return tx.Owner
}

// Upload stores the bytes with the content store and submits the upload
// transaction. A store failure prevents the submission entirely, so the
// ledger never records content that was never stored.
func (e *LedgerEngine) Upload(owner string, data []byte) (string, error) {
	contentRef, err := e.store.Put(data)
	if err != nil {
		return "", err
	}
	err = e.SubmitTransaction(model.Transaction{
		Kind:       model.TxUpload,
		Owner:      owner,
		ContentRef: contentRef,
	})
	if err != nil {
		return "", err
	}
	return contentRef, nil
}

// Grant submits a grant transaction. Only the registered owner of the
// content ref will pass authorization.
func (e *LedgerEngine) Grant(contentRef, owner, recipient string) error {
	return e.SubmitTransaction(model.Transaction{
		Kind:       model.TxGrant,
		Owner:      owner,
		Recipient:  recipient,
		ContentRef: contentRef,
	})
}

// Request retrieves the file bytes for a permitted recipient and records
// the retrieval on the ledger. The store is consulted before the request
// transaction is submitted: a missing or unreachable store leaves the
// ledger untouched.
func (e *LedgerEngine) Request(contentRef, recipient string) ([]byte, error) {
	e.m.RLock()
	err := e.index.Authorize(recipient, model.TxRequest, contentRef)
	owner, _ := e.index.Owner(contentRef)
	e.m.RUnlock()
	if err != nil {
		return nil, err
	}

	data, err := e.store.Get(contentRef)
	if err != nil {
		return nil, err
	}

	err = e.SubmitTransaction(model.Transaction{
		Kind:       model.TxRequest,
		Owner:      owner,
		Recipient:  recipient,
		ContentRef: contentRef,
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Mine seals every pending transaction into a new block on top of the
// tail. Mining is CPU bound and can take long, so the pool and chain are
// only locked around the snapshot and the final append; a command arriving
// on ctl aborts the nonce search and leaves the pool undrained.
func (e *LedgerEngine) Mine(ctl chan commands.Command) (*model.Block, commands.Command, error) {
	e.m.RLock()
	if e.txPool.Size() == 0 {
		e.m.RUnlock()
		return nil, commands.NewDefaultCommand(), model.ErrPoolEmpty
	}
	var txs []model.Transaction
	copier.Copy(&txs, &e.txPool.Txs)
	prevHash := e.blockchain.Tail().Hash
	index := e.blockchain.Length()
	e.m.RUnlock()

	block, c, err := utils.CreateNewBlock(txs, prevHash, index, e.config.DIFFICULTY, ctl)
	if err != nil {
		return nil, c, err
	}

	e.m.Lock()
	defer e.m.Unlock()
	e.blockchain.Blocks = append(e.blockchain.Blocks, block)
	// Drain exactly the mined prefix; submissions that raced with the
	// nonce search stay pending for the next block.
	e.txPool.Txs = e.txPool.Txs[len(txs):]
	e.index.ApplyBlock(block)
	return block, c, nil
}

// Validate re-checks the whole chain. Returns *model.ChainIntegrityError
// pointing at the first offending block, or nil.
func (e *LedgerEngine) Validate() error {
	e.m.RLock()
	defer e.m.RUnlock()
	return utils.ValidateChain(e.blockchain, e.config.DIFFICULTY)
}

// GetStatus reports chain length, validity and pool size.
func (e *LedgerEngine) GetStatus() Status {
	e.m.RLock()
	defer e.m.RUnlock()
	return Status{
		ChainLength: e.blockchain.Length(),
		PoolSize:    e.txPool.Size(),
		Valid:       utils.ValidateChain(e.blockchain, e.config.DIFFICULTY) == nil,
		TailHash:    e.blockchain.Tail().Hash,
	}
}

// ChainSnapshot returns a deep copy of the chain, safe to hand to display
// or persistence code without aliasing engine-owned blocks.
func (e *LedgerEngine) ChainSnapshot() *model.Blockchain {
	e.m.RLock()
	defer e.m.RUnlock()
	bc := &model.Blockchain{}
	copier.Copy(bc, e.blockchain)
	return bc
}

// PersistChain writes the chain to disk so a later process can revalidate
// and reauthorize from the same history.
func (e *LedgerEngine) PersistChain(fPath string) error {
	return utils.SaveChainToFile(e.ChainSnapshot(), fPath)
}
