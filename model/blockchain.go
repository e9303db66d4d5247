package model

// GenesisPrevHash is the previous-hash sentinel carried by the genesis
// block: an all-zero 256 bit hash in hex.
const GenesisPrevHash = "0000000000000000000000000000000000000000000000000000000000000000"

// GenesisNonce is the fixed nonce of the genesis block.
const GenesisNonce int64 = 100

type Block struct {
	// Position in the chain, 0 for genesis.
	Index int64
	// Hash of this entire block in the hex string format. Set once when the
	// block is sealed by the miner and always re-derivable from the header.
	Hash string
	// Hash of the previous block in the hex format.
	PrevHash string
	// Transactions for this block, in pool order at mining time.
	Txs []Transaction
	// Nonce is the miner's challenge for computing the block.
	Nonce int64
	// Block creation time in unix seconds.
	Timestamp int64
}

// Blockchain is the authoritative history: a contiguous sequence of blocks
// starting at the genesis block. There is exactly one producer, so no fork
// bookkeeping is needed.
type Blockchain struct {
	Blocks []*Block
}

// Length returns the number of blocks, genesis included.
func (bc *Blockchain) Length() int64 {
	return int64(len(bc.Blocks))
}

// Tail returns the most recent block, or nil for an empty chain.
func (bc *Blockchain) Tail() *Block {
	if len(bc.Blocks) == 0 {
		return nil
	}
	return bc.Blocks[len(bc.Blocks)-1]
}
