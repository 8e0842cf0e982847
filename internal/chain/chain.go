package chain

import (
	"encoding/json"
	"os"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tinychain-go/tinychain/vm"
)

// DefaultGasLimit bounds a single call's execution when the operator/RPC
// caller doesn't specify one.
const DefaultGasLimit = 3_000_000

// recentCacheSize is how many recently-sealed blocks Chain keeps warm,
// grounded on every geth-family repo in the pack carrying a
// hashicorp/golang-lru cache of exactly this shape for recent blocks.
const recentCacheSize = 256

// Chain is a single-branch, in-memory block store — no fork-choice, and no
// persistence beyond the explicit JSON snapshot Save/Load below; it exists
// to give the interpreter a place to record deployed bytecode and call
// results.
type Chain struct {
	blocks []*Block
	recent *lru.Cache
}

// Genesis builds a chain with a single empty genesis block.
func Genesis() *Chain {
	cache, _ := lru.New(recentCacheSize)
	genesis := NewBlock(0, [32]byte{}, nil)
	genesis.Seal()
	c := &Chain{blocks: []*Block{genesis}, recent: cache}
	c.recent.Add(genesis.Hash, genesis)
	log.WithField("hash", hashHex(genesis.Hash)).Info("chain: genesis sealed")
	return c
}

func (c *Chain) Head() *Block { return c.blocks[len(c.blocks)-1] }

// Blocks returns every sealed block, genesis first.
func (c *Chain) Blocks() []*Block { return c.blocks }

func (c *Chain) Height() uint64 { return c.Head().Number }

// BlockByHash looks up a block by hash, checking the recent cache first.
func (c *Chain) BlockByHash(hash [32]byte) (*Block, bool) {
	if v, ok := c.recent.Get(hash); ok {
		return v.(*Block), true
	}
	for _, b := range c.blocks {
		if b.Hash == hash {
			return b, true
		}
	}
	return nil, false
}

// Deploy runs code with no call-data (a constructor convention: code that
// RETURNs its own runtime bytecode) and seals a new block recording it.
func (c *Chain) Deploy(code []byte, gasLimit uint64) (*Block, []byte, error) {
	return c.run(code, nil, gasLimit)
}

// Call runs code against callData and seals a new block recording the
// result — this toy chain has no persistent account/state tree, so "call"
// and "deploy" both just execute-and-record (spec.md's core Non-goals:
// persistent state, sub-calls).
func (c *Chain) Call(code, callData []byte, gasLimit uint64) (*Block, []byte, error) {
	return c.run(code, callData, gasLimit)
}

func (c *Chain) run(code, callData []byte, gasLimit uint64) (*Block, []byte, error) {
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	ret, gasUsed, err := vm.Execute(code, callData, gasLimit)
	reverted := vm.IsRevert(err)
	if err != nil && !reverted {
		return nil, nil, errors.Wrap(err, "chain: execution failed")
	}

	call := Call{Code: code, CallData: callData, ReturnData: ret, GasUsed: gasUsed, Reverted: reverted}
	block := NewBlock(c.Height()+1, c.Head().Hash, []Call{call})
	block.Seal()
	c.blocks = append(c.blocks, block)
	c.recent.Add(block.Hash, block)

	log.WithFields(log.Fields{
		"number":   block.Number,
		"gas_used": gasUsed,
		"reverted": reverted,
	}).Info("chain: block sealed")

	return block, ret, err
}

// chainFile is the on-disk shape Save/Load (de)serialize — the full block
// list, genesis first, so a reloaded Chain's hashes/nonces verify exactly
// as sealed.
type chainFile struct {
	Blocks []*Block `json:"blocks"`
}

// Save writes every sealed block to fn as JSON, grounded on the teacher's
// own Context.Save (aj3423-edb/context.go: JSON-marshal then ioutil.WriteFile).
func (c *Chain) Save(fn string) error {
	bs, err := json.MarshalIndent(chainFile{Blocks: c.blocks}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "chain: marshal")
	}
	return os.WriteFile(fn, bs, 0666)
}

// Load rebuilds a Chain from a file written by Save, grounded on the
// teacher's Context.Load — reads, unmarshals, and rebuilds whatever
// derived state (there: disassembly; here: the recent-block cache) isn't
// itself persisted.
func Load(fn string) (*Chain, error) {
	bs, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	var cf chainFile
	if err := json.Unmarshal(bs, &cf); err != nil {
		return nil, errors.Wrap(err, "chain: unmarshal")
	}
	if len(cf.Blocks) == 0 {
		return nil, errors.New("chain: no blocks in file")
	}
	cache, _ := lru.New(recentCacheSize)
	c := &Chain{blocks: cf.Blocks, recent: cache}
	for _, b := range c.blocks {
		c.recent.Add(b.Hash, b)
	}
	return c, nil
}

func hashHex(h [32]byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 64)
	for i, b := range h {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0xf]
	}
	return string(out)
}
