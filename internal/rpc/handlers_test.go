package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinychain-go/tinychain/internal/chain"
	"github.com/tinychain-go/tinychain/vm"
)

func TestHandleDeployReturnsSealedBlock(t *testing.T) {
	s := NewServer(chain.Genesis(), nil)
	body, _ := json.Marshal(deployRequest{
		Code: []byte{byte(vm.PUSH1), 1, byte(vm.STOP)},
	})
	req := httptest.NewRequest(http.MethodPost, "/deploy", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleDeploy(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp execResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.BlockNumber)
	assert.False(t, resp.Reverted)
}

func TestHandleCallRequiresPost(t *testing.T) {
	s := NewServer(chain.Genesis(), nil)
	req := httptest.NewRequest(http.MethodGet, "/call", nil)
	rec := httptest.NewRecorder()

	s.handleCall(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
