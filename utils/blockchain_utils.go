package utils

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/Luismorlan/fileshare_in_go/commands"
	"github.com/Luismorlan/fileshare_in_go/model"
)

// GenesisBlock returns the fixed genesis block. Every honest instance
// starts from a byte-identical genesis: fixed nonce, zero timestamp, no
// transactions and an all-zero previous hash sentinel.
func GenesisBlock() *model.Block {
	b := model.Block{
		Index:     0,
		PrevHash:  model.GenesisPrevHash,
		Nonce:     model.GenesisNonce,
		Timestamp: 0,
	}
	blockBytes, err := GetBlockBytes(&b)
	if err != nil {
		// The sentinel is a compile-time constant, decoding it can't fail.
		log.Fatal("genesis block is not encodable: ", err)
	}
	b.Hash = BytesToHex(SHA256(blockBytes))
	return &b
}

// NewBlockchain creates a chain holding only the genesis block.
func NewBlockchain() *model.Blockchain {
	return &model.Blockchain{Blocks: []*model.Block{GenesisBlock()}}
}

// GetTransactionsDigest hashes the concatenation of every transaction's
// canonical bytes, in block order. Any change to any transaction changes
// this digest and therefore the block hash.
func GetTransactionsDigest(txs []model.Transaction) []byte {
	var data []byte
	for i := 0; i < len(txs); i++ {
		data = append(data, GetTransactionBytes(&txs[i])...)
	}
	return SHA256(data)
}

// GetBlockBytes converts the block header to its canonical byte encoding:
// index, previous hash, transactions digest, nonce and timestamp.
func GetBlockBytes(block *model.Block) ([]byte, error) {
	var rawBlock []byte

	rawBlock = append(rawBlock, Int64ToBytes(block.Index)...)

	prevHashBytes, err := HexToBytes(block.PrevHash)
	if err != nil {
		return nil, err
	}
	rawBlock = append(rawBlock, prevHashBytes...)

	rawBlock = append(rawBlock, GetTransactionsDigest(block.Txs)...)
	rawBlock = append(rawBlock, Int64ToBytes(block.Nonce)...)
	rawBlock = append(rawBlock, Int64ToBytes(block.Timestamp)...)

	return rawBlock, nil
}

// MatchDifficulty recomputes the block hash and reports whether it carries
// the required number of leading zero hex digits.
func MatchDifficulty(block *model.Block, difficulty int) (bool, string) {
	blockBytes, err := GetBlockBytes(block)
	if err != nil {
		log.Println(err)
		return false, ""
	}
	digest := SHA256(blockBytes)
	return ByteHasLeadingZeroHexDigits(digest, difficulty), BytesToHex(digest)
}

// ByteHasLeadingZeroHexDigits reports whether the first difficulty hex
// digits (nibbles) of the digest are zero.
func ByteHasLeadingZeroHexDigits(bytes []byte, difficulty int) bool {
	numOfZeroBytes := difficulty / 2
	hasHalfByte := difficulty%2 == 1

	totalBytes := numOfZeroBytes
	if hasHalfByte {
		totalBytes++
	}
	if totalBytes > len(bytes) {
		return false
	}
	for i := 0; i < numOfZeroBytes; i++ {
		if bytes[i] != 0 {
			return false
		}
	}
	if hasHalfByte && bytes[numOfZeroBytes]>>4 != 0 {
		return false
	}
	return true
}

// Mine searches the nonce space from 0 until the block hash matches the
// difficulty, then fills the nonce and hash. The search is CPU bound and
// can take a long time, so any command arriving on ctl aborts it and is
// handed back to the caller. If the positive int64 nonce range is ever
// exhausted the timestamp is perturbed and the search restarts.
func Mine(block *model.Block, difficulty int, ctl chan commands.Command) (commands.Command, error) {
	for {
		for i := int64(0); i < math.MaxInt64; i++ {
			select {
			case c := <-ctl:
				return c, errors.New("mining interrupted by command")
			default:
			}
			block.Nonce = i
			isMatched, digest := MatchDifficulty(block, difficulty)
			if isMatched {
				block.Hash = digest
				return commands.NewDefaultCommand(), nil
			}
		}
		block.Timestamp++
	}
}

// CreateNewBlock builds a candidate block on top of the given parent and
// mines it. The transactions must already be validated; this only seals
// them.
// 1. Fill in index, previous hash and creation time.
// 2. Fill in transactions provided, in pool order.
// 3. Mine the block.
func CreateNewBlock(txs []model.Transaction, prevHash string, index int64, difficulty int, ctl chan commands.Command) (*model.Block, commands.Command, error) {
	if len(txs) == 0 {
		return nil, commands.NewDefaultCommand(), model.ErrPoolEmpty
	}
	block := model.Block{
		Index:     index,
		PrevHash:  prevHash,
		Txs:       txs,
		Timestamp: time.Now().Unix(),
	}

	c, err := Mine(&block, difficulty, ctl)
	if err != nil {
		return nil, c, err
	}

	return &block, c, nil
}

// ValidateChain walks the whole chain and verifies it is internally
// consistent: the genesis block is the fixed genesis, every stored hash
// matches the recomputed header hash, every non-genesis block satisfies
// the difficulty predicate, links to its parent, is contiguous and carries
// structurally valid transactions with non-decreasing timestamps. The
// chain is never mutated and repeated calls give the same answer.
func ValidateChain(bc *model.Blockchain, difficulty int) error {
	if bc == nil || len(bc.Blocks) == 0 {
		return &model.ChainIntegrityError{Index: 0, Reason: "chain has no genesis block"}
	}

	genesis := GenesisBlock()
	first := bc.Blocks[0]
	if first.Index != 0 || first.PrevHash != genesis.PrevHash ||
		first.Nonce != genesis.Nonce || first.Timestamp != genesis.Timestamp ||
		len(first.Txs) != 0 || first.Hash != genesis.Hash {
		return &model.ChainIntegrityError{Index: 0, Reason: "genesis block does not match the fixed genesis"}
	}

	for i := 1; i < len(bc.Blocks); i++ {
		b := bc.Blocks[i]
		idx := int64(i)
		if b.Index != idx {
			return &model.ChainIntegrityError{Index: idx, Reason: "block index is not contiguous"}
		}
		if b.PrevHash != bc.Blocks[i-1].Hash {
			return &model.ChainIntegrityError{Index: idx, Reason: "previous hash does not link to the parent block"}
		}
		if len(b.Txs) == 0 {
			return &model.ChainIntegrityError{Index: idx, Reason: "non-genesis block carries no transactions"}
		}
		isMatched, digest := MatchDifficulty(b, difficulty)
		if digest != b.Hash {
			return &model.ChainIntegrityError{Index: idx, Reason: "stored hash does not match the recomputed hash"}
		}
		if !isMatched {
			return &model.ChainIntegrityError{Index: idx, Reason: "block hash does not satisfy the difficulty predicate"}
		}
		for j := 0; j < len(b.Txs); j++ {
			if err := ValidateTransactionFields(&b.Txs[j]); err != nil {
				return &model.ChainIntegrityError{Index: idx, Reason: err.Error()}
			}
			if j > 0 && b.Txs[j].Timestamp < b.Txs[j-1].Timestamp {
				return &model.ChainIntegrityError{Index: idx, Reason: "transaction timestamps are decreasing within the block"}
			}
		}
	}
	return nil
}
