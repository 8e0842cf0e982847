package p2p

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/tinychain-go/tinychain/internal/chain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Peer is one gossip connection, identified by the uuid it announced in
// its hello message.
type Peer struct {
	ID   uuid.UUID
	conn *websocket.Conn
	send chan Message
}

// Node is this process's gossip identity: it accepts inbound peer
// connections, dials outbound ones, and relays newly sealed blocks to
// every peer it knows about, deduping by message ID (see gossip.go).
type Node struct {
	ID    uuid.UUID
	Chain *chain.Chain

	mu    sync.Mutex
	peers map[uuid.UUID]*Peer

	seen *seenSet

	// OnBlock is invoked for each distinct block this node learns about
	// from a peer (not ones it sealed itself) — internal/rpc or the REPL
	// can use this to surface incoming blocks to an operator.
	OnBlock func(*chain.Block)
}

// NewNode creates a gossip node bound to c. Blocks learned from peers are
// handed to OnBlock and relayed; they are not appended to c.
func NewNode(c *chain.Chain) *Node {
	return &Node{
		ID:    uuid.New(),
		Chain: c,
		peers: map[uuid.UUID]*Peer{},
		seen:  newSeenSet(),
	}
}

// ServeHTTP upgrades an inbound HTTP request to a websocket gossip
// connection, grounded on the pack's full-node repos using
// gorilla/websocket for exactly this subscription/gossip transport.
func (n *Node) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("p2p: upgrade failed")
		return
	}
	n.adopt(conn)
}

// Dial connects outbound to a peer's gossip listener.
func (n *Node) Dial(url string) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}
	n.adopt(conn)
	return nil
}

func (n *Node) adopt(conn *websocket.Conn) {
	p := &Peer{conn: conn, send: make(chan Message, 32)}
	go n.writeLoop(p)
	go n.readLoop(p)

	hello := newMessage(n.ID, KindHello)
	p.send <- hello
}

func (n *Node) writeLoop(p *Peer) {
	for msg := range p.send {
		b, err := msg.encode()
		if err != nil {
			continue
		}
		if err := p.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			log.WithError(err).Debug("p2p: write failed, dropping peer")
			return
		}
	}
}

func (n *Node) readLoop(p *Peer) {
	defer n.drop(p)
	for {
		_, raw, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := decodeMessage(raw)
		if err != nil {
			log.WithError(err).Debug("p2p: malformed message")
			continue
		}
		n.handle(p, msg)
	}
}

func (n *Node) handle(p *Peer, msg Message) {
	if msg.Kind == KindHello && p.ID == uuid.Nil {
		p.ID = msg.From
		n.mu.Lock()
		n.peers[p.ID] = p
		n.mu.Unlock()
	}

	if n.seen.seenBefore(msg.ID) {
		return
	}

	switch msg.Kind {
	case KindBlock:
		if msg.Block != nil && n.OnBlock != nil {
			n.OnBlock(msg.Block)
		}
		n.relay(msg, p.ID)
	}
}

func (n *Node) drop(p *Peer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.peers, p.ID)
	close(p.send)
}

// Broadcast gossips block to every known peer.
func (n *Node) Broadcast(block *chain.Block) {
	msg := newMessage(n.ID, KindBlock)
	msg.Block = block
	n.seen.seenBefore(msg.ID)
	n.relay(msg, uuid.Nil)
}

func (n *Node) relay(msg Message, exclude uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, p := range n.peers {
		if id == exclude {
			continue
		}
		select {
		case p.send <- msg:
		default:
			log.Warn("p2p: peer send buffer full, dropping message")
		}
	}
}

// PeerCount reports how many peers this node currently gossips with —
// consumed by internal/metrics and the REPL's `peers` command.
func (n *Node) PeerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.peers)
}
