package main

import (
	"fmt"
	"os"

	"github.com/c-bata/go-prompt"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tinychain-go/tinychain/internal/chain"
	"github.com/tinychain-go/tinychain/internal/metrics"
	"github.com/tinychain-go/tinychain/internal/p2p"
	"github.com/tinychain-go/tinychain/internal/rpc"
)

// G holds the running node's state the REPL commands operate on, grounded
// on the teacher's own package-level `G` global in main/main.go.
var G = struct {
	Chain *chain.Chain
	Node  *p2p.Node
	RPC   *rpc.Server

	// GasLimit is the default passed to deploy/call when a REPL invocation
	// doesn't supply its own.
	GasLimit uint64
	// DataFile is the default path the `save`/`load` commands read and
	// write, set from --datafile (teacher's own JsonFile session file).
	DataFile string

	// last is the most recently deployed/called result; the `call` command
	// re-runs its code.
	last *chain.Block
}{}

func run(c *cli.Context) error {
	G.GasLimit = c.Uint64("gas-limit")
	G.DataFile = c.String("datafile")

	if loaded, err := chain.Load(G.DataFile); err == nil {
		G.Chain = loaded
		color.Yellow("tinychaind: loaded chain from %s (height %d)", G.DataFile, G.Chain.Height())
	} else {
		G.Chain = chain.Genesis()
	}
	G.Node = p2p.NewNode(G.Chain)
	G.Node.OnBlock = func(b *chain.Block) {
		color.Cyan("\n[peer] new block #%d (gas_used=%d)\n", b.Number, b.Calls[len(b.Calls)-1].GasUsed)
	}
	metrics.SetPeerCount(func() float64 { return float64(G.Node.PeerCount()) })

	G.RPC = rpc.NewServer(G.Chain, G.Node)
	listen := c.String("listen")
	go func() {
		if err := G.RPC.ListenAndServe(listen); err != nil {
			color.Red("rpc: %s", err.Error())
		}
	}()

	if connect := c.String("connect"); connect != "" {
		if err := G.Node.Dial(connect); err != nil {
			color.Red("p2p: failed to connect to %s: %s", connect, err.Error())
		} else {
			color.Green("p2p: connected to %s", connect)
		}
	}

	color.Green("tinychaind listening on %s (chain height %d)", listen, G.Chain.Height())

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix(">>> "),
	)
	p.Run()
	return nil
}

func main() {
	app := &cli.App{
		Name:      "tinychaind",
		Usage:     "a toy bytecode-interpreter node",
		UsageText: "tinychaind [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Value: "127.0.0.1:8645", Usage: "rpc listen address"},
			&cli.StringFlag{Name: "connect", Usage: "gossip peer to dial at startup, eg ws://host:port/gossip"},
			&cli.Uint64Flag{Name: "gas-limit", Value: chain.DefaultGasLimit, Usage: "default gas limit for deploy/call"},
			&cli.StringFlag{Name: "datafile", Value: "tinychain.json", Usage: "REPL save/load file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
