// Package peer maintains the set of open connections to other nodes in the
// network.
package peer

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Channel represents the behavior required to exchange messages with a
// remote node over a bidirectional connection.
type Channel interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	RemoteAddr() string
	Close() error
}

// =============================================================================

// Conn represents an open connection to a remote node.
type Conn struct {
	ID   string
	Host string

	ch Channel
	mu sync.Mutex
}

// NewConn constructs a connection for the specified channel. Every
// connection gets a unique id so two connections to the same host are
// tracked independently.
func NewConn(ch Channel) *Conn {
	return &Conn{
		ID:   uuid.NewString(),
		Host: ch.RemoteAddr(),
		ch:   ch,
	}
}

// Send writes a message to the remote node. Writes are serialized since a
// channel supports only one concurrent writer.
func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ch.WriteMessage(data)
}

// Receive blocks until the next message arrives from the remote node.
func (c *Conn) Receive() ([]byte, error) {
	return c.ch.ReadMessage()
}

// Close closes the underlying channel.
func (c *Conn) Close() error {
	return c.ch.Close()
}

// String implements the fmt.Stringer interface for logging.
func (c *Conn) String() string {
	return c.Host + "/" + c.ID[:8]
}

// =============================================================================

// PeerSet represents the set of open connections.
type PeerSet struct {
	mu  sync.RWMutex
	set map[string]*Conn
}

// NewPeerSet constructs a new set to manage open connections.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[string]*Conn),
	}
}

// Add adds a new connection to the set.
func (ps *PeerSet) Add(conn *Conn) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.set[conn.ID] = conn
}

// Remove removes a connection from the set. It reports whether the
// connection was in the set.
func (ps *PeerSet) Remove(conn *Conn) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.set[conn.ID]; !exists {
		return false
	}

	delete(ps.set, conn.ID)
	return true
}

// Copy returns a list of the open connections ordered by host.
func (ps *PeerSet) Copy() []*Conn {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	conns := make([]*Conn, 0, len(ps.set))
	for _, conn := range ps.set {
		conns = append(conns, conn)
	}

	sort.Slice(conns, func(i, j int) bool {
		if conns[i].Host == conns[j].Host {
			return conns[i].ID < conns[j].ID
		}
		return conns[i].Host < conns[j].Host
	})

	return conns
}

// Hosts returns the remote address of every open connection.
func (ps *PeerSet) Hosts() []string {
	conns := ps.Copy()

	hosts := make([]string, len(conns))
	for i, conn := range conns {
		hosts[i] = conn.Host
	}

	return hosts
}

// Len returns the number of open connections.
func (ps *PeerSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.set)
}
