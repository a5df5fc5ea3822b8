package server

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/MonaAghili/public-notes/internal/logfields"
)

const (
	hubClientBuffer  = 8
	hubHeartbeatRate = 30 * time.Second
)

// Hub fans index revision changes out to SSE clients at /events. A client
// connecting mid-stream immediately receives the current revision so it can
// decide whether its view is stale.
type Hub struct {
	mu           sync.RWMutex
	nextID       int
	clients      map[int]*hubClient
	closed       bool
	lastRevision uint64
}

type hubClient struct {
	id   int
	ch   chan uint64
	done chan struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: map[int]*hubClient{}}
}

// Broadcast sends a new revision to every connected client. Clients whose
// buffers are full are dropped rather than blocking the synchronizer.
func (h *Hub) Broadcast(revision uint64) {
	h.mu.Lock()
	if h.closed || revision == h.lastRevision {
		h.mu.Unlock()
		return
	}
	h.lastRevision = revision
	snapshot := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	for _, c := range snapshot {
		select {
		case c.ch <- revision:
		default:
			h.removeClient(c.id)
		}
	}
}

// Close disconnects all clients and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.done)
	}
}

// ServeHTTP implements the SSE endpoint.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := &hubClient{ch: make(chan uint64, hubClientBuffer), done: make(chan struct{})}
	h.mu.Lock()
	client.id = h.nextID
	h.nextID++
	h.clients[client.id] = client
	current := h.lastRevision
	h.mu.Unlock()
	defer h.removeClient(client.id)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(": connected\n\n"); err != nil {
		return
	}
	if current > 0 {
		if err := writeRevision(bw, current); err != nil {
			return
		}
	}
	if err := bw.Flush(); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(hubHeartbeatRate)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			if _, err := bw.WriteString(": ping\n\n"); err != nil {
				return
			}
			if err := bw.Flush(); err != nil {
				return
			}
			flusher.Flush()
		case revision := <-client.ch:
			if err := writeRevision(bw, revision); err != nil {
				slog.Debug("SSE write failed", logfields.Error(err))
				return
			}
			if err := bw.Flush(); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeRevision(bw *bufio.Writer, revision uint64) error {
	_, err := fmt.Fprintf(bw, "data: {\"revision\":%d}\n\n", revision)
	return err
}

func (h *Hub) removeClient(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.done)
	}
}
