package peer_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/chainsync/foundation/blockchain/peer"
)

// channel is a no-op channel bound to a remote address.
type channel struct {
	addr string
}

func (c channel) ReadMessage() ([]byte, error)   { return nil, errors.New("closed") }
func (c channel) WriteMessage(data []byte) error { return nil }
func (c channel) RemoteAddr() string             { return c.addr }
func (c channel) Close() error                   { return nil }

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		hosts []string
	}

	tt := []table{
		{
			name:  "basic",
			hosts: []string{"host1", "host2", "host3"},
		},
		{
			name:  "duplicate-hosts",
			hosts: []string{"host1", "host1", "host2"},
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			var conns []*peer.Conn
			for _, host := range tst.hosts {
				conn := peer.NewConn(channel{addr: host})
				ps.Add(conn)
				conns = append(conns, conn)
			}

			if ps.Len() != len(tst.hosts) {
				t.Logf("Test %s:\tgot: %d", tst.name, ps.Len())
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.hosts))
				t.Fatalf("Test %s:\tShould keep every connection.", tst.name)
			}

			hosts := ps.Hosts()
			for i, host := range tst.hosts {
				if hosts[i] != host {
					t.Logf("Test %s:\tgot: %v", tst.name, hosts)
					t.Logf("Test %s:\texp: %v", tst.name, tst.hosts)
					t.Fatalf("Test %s:\tShould get back the right hosts.", tst.name)
				}
			}

			if !ps.Remove(conns[1]) {
				t.Fatalf("Test %s:\tShould be able to remove a connection.", tst.name)
			}

			if ps.Remove(conns[1]) {
				t.Fatalf("Test %s:\tShould not remove a connection twice.", tst.name)
			}

			peers := ps.Copy()
			if len(peers) != len(tst.hosts)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.hosts)-1)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			for _, p := range peers {
				if p.ID == conns[1].ID {
					t.Fatalf("Test %s:\tShould not get back the removed connection.", tst.name)
				}
			}
		}

		t.Run(tst.name, f)
	}
}
