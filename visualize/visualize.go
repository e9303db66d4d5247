package visualize

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os/exec"

	"github.com/Luismorlan/fileshare_in_go/model"
	memviz "github.com/bradleyjkemp/memviz"
)

// We re-define a render-only model here because the ledger model carries
// full hashes and identities that are too long to draw legibly.
type transaction struct {
	kind       string
	owner      string
	recipient  string
	contentRef string
}

type block struct {
	index    int64
	hash     string
	prevHash string
	nonce    int64
	txs      []transaction
	next     *block
}

// The string of content refs and hashes is just too long to render, instead we take only first 3 and last 3
// characters and replace the middle part with '...'. E.g. "abcdefghi" will be rendered as "abc...ghi"
func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}

func txToTx(tx *model.Transaction) transaction {
	return transaction{
		kind:       tx.Kind.String(),
		owner:      tx.Owner,
		recipient:  tx.Recipient,
		contentRef: shortenString(tx.ContentRef),
	}
}

func blockToblock(b *model.Block) block {
	n := block{
		index:    b.Index,
		hash:     shortenString(b.Hash),
		prevHash: shortenString(b.PrevHash),
		nonce:    b.Nonce,
	}

	for i := 0; i < len(b.Txs); i++ {
		tx := &b.Txs[i]
		n.txs = append(n.txs, txToTx(tx))
	}
	return n
}

// Given the chain, return the linked render model of the last d blocks.
func constructData(bc *model.Blockchain, d int) *block {
	start := len(bc.Blocks) - d
	if start < 0 {
		start = 0
	}

	var head *block
	var tail *block
	for i := start; i < len(bc.Blocks); i++ {
		node := blockToblock(bc.Blocks[i])
		if head == nil {
			head = &node
		} else {
			tail.next = &node
		}
		tail = &node
	}
	return head
}

// Entry to this package, where:
// bc: a snapshot of the chain as tracked by the ledger engine.
// d: how many trailing blocks to render.
// id: unique id of the engine instance.
func Render(bc *model.Blockchain, d int, id string) {
	buf := &bytes.Buffer{}

	chain := constructData(bc, d)

	memviz.Map(buf, &chain)

	// Write the parsed data to disk
	fileName := "/tmp/chaindata-" + id
	outputName := "/tmp/rendered-chain-" + id + ".png"
	err := ioutil.WriteFile(fileName, buf.Bytes(), 0644)
	if err != nil {
		panic(err)
	}

	cmd := exec.Command("dot", "-Tpng", fileName, "-o", outputName)
	cmd.Run()

	opCmd := exec.Command("open", outputName)
	opCmd.Run()
}
