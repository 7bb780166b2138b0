package main

import (
	"sync"

	"go.uber.org/zap"
)

const eventBoardUpdated = "board_updated"

// Event is the change notification fanned out to a board room. It carries no
// positional payload; clients re-derive the new order by refetching the board.
type Event struct {
	Type              string `json:"type"`
	BoardID           string `json:"boardId"`
	CardID            string `json:"cardId"`
	SourceListID      string `json:"sourceListId"`
	DestinationListID string `json:"destinationListId"`
	Message           string `json:"message"`
}

// Broadcaster is the capability the coordinators publish through. Injected so
// the move path is testable without a live connection layer.
type Broadcaster interface {
	Publish(boardID string, ev Event)
}

// Hub partitions live connections into board-scoped rooms. Membership is
// process-local state mutated only by join/leave/disconnect and read at
// publish time. Delivery is at most once per connected subscriber: a client
// whose send buffer is full gets disconnected and re-syncs by reconnecting
// and refetching the board, rather than silently missing events.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	clients map[*client]map[string]struct{}
}

func newHub() *Hub {
	return &Hub{
		rooms:   map[string]map[*client]struct{}{},
		clients: map[*client]map[string]struct{}{},
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = map[string]struct{}{}
}

func (h *Hub) join(c *client, boardID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	room, ok := h.rooms[boardID]
	if !ok {
		room = map[*client]struct{}{}
		h.rooms[boardID] = room
	}
	room[c] = struct{}{}
	h.clients[c][boardID] = struct{}{}
}

func (h *Hub) leave(c *client, boardID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, boardID)
}

func (h *Hub) leaveLocked(c *client, boardID string) {
	if room, ok := h.rooms[boardID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, boardID)
		}
	}
	if joined, ok := h.clients[c]; ok {
		delete(joined, boardID)
	}
}

// unregister drops a disconnected client from every room it joined and closes
// its send channel. Closing under the write lock keeps Publish, which sends
// under the read lock, from racing the close.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	for boardID := range h.clients[c] {
		h.leaveLocked(c, boardID)
	}
	delete(h.clients, c)
	close(c.send)
}

// Publish delivers ev to every connection currently in the board's room,
// including the one that triggered the underlying mutation. Sends are
// non-blocking; a subscriber with a full buffer is dropped after the read
// lock is released, since unregister needs the write lock.
func (h *Hub) Publish(boardID string, ev Event) {
	var slow []*client
	h.mu.RLock()
	for c := range h.rooms[boardID] {
		select {
		case c.send <- ev:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()
	for _, c := range slow {
		zap.S().Warnf("Disconnecting slow subscriber on board %s", boardID)
		h.unregister(c)
	}
}
