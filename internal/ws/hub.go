package ws

import (
	"context"
	"sync"

	"jobboard/internal/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type outbound struct {
	// userID of uuid.Nil addresses every client.
	userID uuid.UUID
	data   []byte
}

// Hub fans events out to connected clients. Clients that cannot keep up
// are dropped.
type Hub struct {
	clients    map[*Client]struct{}
	byUser     map[uuid.UUID]map[*Client]struct{}
	outbound   chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewHub(logger *zap.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[uuid.UUID]map[*Client]struct{}),
		outbound:   make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    m,
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
// Register and Unregister stop blocking once Run has returned.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for c := range h.clients {
				h.removeLocked(c)
			}
			h.mutex.Unlock()
			for {
				select {
				case c := <-h.register:
					if c != nil {
						close(c.send)
					}
				default:
					return
				}
			}

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			if client.userID != uuid.Nil {
				set := h.byUser[client.userID]
				if set == nil {
					set = make(map[*Client]struct{})
					h.byUser[client.userID] = set
				}
				set[client] = struct{}{}
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.metrics.WSConnected()
			h.logger.Debug("ws connected", zap.Int("total_clients", total), zap.Bool("authenticated", client.userID != uuid.Nil))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.removeLocked(client)
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("ws disconnected", zap.Int("total_clients", total))

		case msg := <-h.outbound:
			h.mutex.Lock()
			var targets []*Client
			if msg.userID == uuid.Nil {
				targets = make([]*Client, 0, len(h.clients))
				for c := range h.clients {
					targets = append(targets, c)
				}
			} else {
				for c := range h.byUser[msg.userID] {
					targets = append(targets, c)
				}
			}
			for _, c := range targets {
				select {
				case c.send <- msg.data:
				default:
					h.removeLocked(c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// removeLocked must be called with the write lock held.
func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if set := h.byUser[c.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	close(c.send)
	h.metrics.WSDisconnected()
}

// Register adds client. After shutdown the client's send channel is closed
// so its writer exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues data for every client. It never blocks; when the queue
// is full the message is dropped.
func (h *Hub) Broadcast(data []byte) {
	h.enqueue(outbound{data: data})
}

// SendToUser queues data for the connections of one user.
func (h *Hub) SendToUser(userID uuid.UUID, data []byte) {
	if userID == uuid.Nil {
		return
	}
	h.enqueue(outbound{userID: userID, data: data})
}

func (h *Hub) enqueue(msg outbound) {
	if h == nil {
		return
	}
	select {
	case h.outbound <- msg:
	default:
		h.logger.Warn("ws message dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
