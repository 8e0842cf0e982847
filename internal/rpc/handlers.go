package rpc

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/tinychain-go/tinychain/internal/chain"
	"github.com/tinychain-go/tinychain/internal/metrics"
	"github.com/tinychain-go/tinychain/util"
	"github.com/tinychain-go/tinychain/vm"
)

// deployRequest/callRequest carry bytecode and call-data hex-encoded via
// util.ByteSlice, matching the teacher's own JSON convention.
type deployRequest struct {
	Code     util.ByteSlice `json:"code"`
	GasLimit uint64         `json:"gas_limit"`
}

type callRequest struct {
	Code     util.ByteSlice `json:"code"`
	CallData util.ByteSlice `json:"call_data"`
	GasLimit uint64         `json:"gas_limit"`
}

type execResponse struct {
	BlockNumber uint64         `json:"block_number"`
	ReturnData  util.ByteSlice `json:"return_data"`
	GasUsed     uint64         `json:"gas_used"`
	Reverted    bool           `json:"reverted"`
	Error       string         `json:"error,omitempty"`
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	var req deployRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	block, ret, err := s.Chain.Deploy(req.Code, req.GasLimit)
	s.respondExec(w, block, ret, err)
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	block, ret, err := s.Chain.Call(req.Code, req.CallData, req.GasLimit)
	s.respondExec(w, block, ret, err)
}

// respondExec writes an execResponse for the result of a Deploy/Call,
// gossiping the new block (if any) and updating metrics.
func (s *Server) respondExec(w http.ResponseWriter, block *chain.Block, ret []byte, err error) {
	resp := execResponse{ReturnData: ret, Reverted: vm.IsRevert(err)}
	if block != nil {
		resp.BlockNumber = block.Number
		resp.GasUsed = block.Calls[len(block.Calls)-1].GasUsed
		metrics.RecordBlock()
		metrics.RecordCall(resp.GasUsed, resp.Reverted)
		if s.Node != nil {
			s.Node.Broadcast(block)
		}
	}
	if err != nil && !resp.Reverted {
		resp.Error = err.Error()
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	if resp.Reverted {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseUint(r.URL.Query().Get("number"), 10, 64)
	if err != nil {
		http.Error(w, "invalid number", http.StatusBadRequest)
		return
	}
	for _, b := range s.Chain.Blocks() {
		if b.Number == n {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("rpc: failed writing response")
	}
}
