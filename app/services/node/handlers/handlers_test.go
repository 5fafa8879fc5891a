package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/chainsync/app/services/node/handlers"
	"github.com/ardanlabs/chainsync/business/web/errs"
	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
	"github.com/ardanlabs/chainsync/foundation/blockchain/peer"
	"github.com/ardanlabs/chainsync/foundation/blockchain/state"
	"github.com/ardanlabs/chainsync/foundation/blockchain/worker"
	"github.com/ardanlabs/chainsync/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// node is a running node with its public api and p2p listener.
type node struct {
	state  *state.State
	worker *worker.Worker
	public *httptest.Server
	p2p    *httptest.Server
}

func newNode(t *testing.T) *node {
	log := zap.NewNop().Sugar()

	st := state.New(state.Config{})
	wrk := worker.Run(st, peer.NewPeerSet(), nil)

	cfg := handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      log,
		State:    st,
		Worker:   wrk,
		Evts:     events.New(),
	}

	n := node{
		state:  st,
		worker: wrk,
		public: httptest.NewServer(handlers.PublicMux(cfg)),
		p2p:    httptest.NewServer(handlers.P2PMux(cfg)),
	}

	t.Cleanup(func() {
		wrk.Shutdown()
		n.p2p.Close()
		n.public.Close()
	})

	return &n
}

// wsURL returns the address other nodes dial to reach this node.
func (n *node) wsURL() string {
	return "ws" + strings.TrimPrefix(n.p2p.URL, "http")
}

func (n *node) post(t *testing.T, path string, body string) *http.Response {
	resp, err := http.Post(n.public.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("\t%s\tShould be able to post to %s : %s", failed, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func (n *node) blocks(t *testing.T) []database.Block {
	resp, err := http.Get(n.public.URL + "/v1/blocks/list")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to get the blocks : %s", failed, err)
	}
	defer resp.Body.Close()

	var blocks []database.Block
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		t.Fatalf("\t%s\tShould be able to decode the blocks : %s", failed, err)
	}

	return blocks
}

// waitLength polls until the node holds a chain of the given length.
func waitLength(n *node, length int) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if n.state.RetrieveLength() == length {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	return false
}

// waitPeers polls until the node has the given number of open connections.
func waitPeers(n *node, count int) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(n.worker.RetrievePeers()) == count {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	return false
}

// =============================================================================

func Test_Sync(t *testing.T) {
	t.Log("Given the need for two nodes to converge on the longest chain.")
	{
		nodeA := newNode(t)
		nodeB := newNode(t)

		for _, data := range []string{"a1", "a2"} {
			if resp := nodeA.post(t, "/v1/blocks/mine", `{"data":"`+data+`"}`); resp.StatusCode != http.StatusOK {
				t.Fatalf("\t%s\tShould be able to mine a block : status %d", failed, resp.StatusCode)
			}
		}
		t.Logf("\t%s\tShould be able to mine blocks on node A.", success)

		resp := nodeB.post(t, "/v1/peers/add", `{"peer":"`+nodeA.wsURL()+`"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("\t%s\tShould be able to add node A as a peer : status %d", failed, resp.StatusCode)
		}
		t.Logf("\t%s\tShould be able to add node A as a peer.", success)

		if !waitLength(nodeB, 3) {
			t.Fatalf("\t%s\tShould replace node B's chain with node A's : length %d", failed, nodeB.state.RetrieveLength())
		}
		t.Logf("\t%s\tShould replace node B's chain with node A's.", success)

		if !waitPeers(nodeA, 1) {
			t.Fatalf("\t%s\tShould see node B as a peer of node A.", failed)
		}
		t.Logf("\t%s\tShould see node B as a peer of node A.", success)

		if resp := nodeB.post(t, "/v1/blocks/mine", `{"data":"b1"}`); resp.StatusCode != http.StatusOK {
			t.Fatalf("\t%s\tShould be able to mine a block on node B : status %d", failed, resp.StatusCode)
		}

		if !waitLength(nodeA, 4) {
			t.Fatalf("\t%s\tShould append node B's block on node A : length %d", failed, nodeA.state.RetrieveLength())
		}
		t.Logf("\t%s\tShould append node B's block on node A.", success)

		blocksA := nodeA.blocks(t)
		blocksB := nodeB.blocks(t)
		if len(blocksA) != len(blocksB) {
			t.Fatalf("\t%s\tShould hold chains of the same length : A %d B %d", failed, len(blocksA), len(blocksB))
		}
		for i := range blocksA {
			if blocksA[i] != blocksB[i] {
				t.Logf("\t\tgot: %v", blocksB[i])
				t.Logf("\t\texp: %v", blocksA[i])
				t.Fatalf("\t%s\tShould hold identical chains.", failed)
			}
		}
		t.Logf("\t%s\tShould hold identical chains.", success)
	}
}

func Test_API(t *testing.T) {
	t.Log("Given the need to validate requests against the public api.")
	{
		n := newNode(t)

		resp := n.post(t, "/v1/peers/add", `{"peer":""}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould reject a missing peer : status %d", failed, resp.StatusCode)
		}

		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			t.Fatalf("\t%s\tShould be able to decode the error : %s", failed, err)
		}
		if _, exists := er.Fields["peer"]; !exists {
			t.Logf("\t\tgot: %v", er)
			t.Fatalf("\t%s\tShould report the peer field.", failed)
		}
		t.Logf("\t%s\tShould reject a missing peer.", success)

		resp = n.post(t, "/v1/peers/add", `{"peer":"ws://127.0.0.1:1"}`)
		if resp.StatusCode != http.StatusBadGateway {
			t.Fatalf("\t%s\tShould fail on an unreachable peer : status %d", failed, resp.StatusCode)
		}
		t.Logf("\t%s\tShould fail on an unreachable peer.", success)

		resp = n.post(t, "/v1/blocks/mine", `{"data":"x","extra":1}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould reject unknown fields : status %d", failed, resp.StatusCode)
		}
		t.Logf("\t%s\tShould reject unknown fields.", success)

		resp = n.post(t, "/v1/blocks/mine", `{"data":"x"}`)
		var block database.Block
		if err := json.NewDecoder(resp.Body).Decode(&block); err != nil {
			t.Fatalf("\t%s\tShould be able to decode the mined block : %s", failed, err)
		}
		if block.Index != 1 || block.Data != "x" || block.PreviousHash != database.Genesis().Hash {
			t.Logf("\t\tgot: %v", block)
			t.Fatalf("\t%s\tShould mine on top of genesis.", failed)
		}
		t.Logf("\t%s\tShould mine on top of genesis.", success)

		blocks := n.blocks(t)
		if len(blocks) != 2 || blocks[0] != database.Genesis() {
			t.Logf("\t\tgot: %v", blocks)
			t.Fatalf("\t%s\tShould list genesis and the mined block.", failed)
		}
		t.Logf("\t%s\tShould list genesis and the mined block.", success)

		req, err := http.NewRequest(http.MethodOptions, n.public.URL+"/v1/blocks/mine", nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to build a preflight request: %s", failed, err)
		}
		pre, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to send a preflight request: %s", failed, err)
		}
		pre.Body.Close()

		if pre.Header.Get("Access-Control-Allow-Origin") != "*" || !strings.Contains(pre.Header.Get("Access-Control-Allow-Methods"), http.MethodPost) {
			t.Logf("\t\tgot: %v", pre.Header)
			t.Fatalf("\t%s\tShould allow browsers to post to the api.", failed)
		}
		t.Logf("\t%s\tShould allow browsers to post to the api.", success)
	}
}
