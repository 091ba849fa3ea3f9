package websocket

import (
	"encoding/json"
	"sync"
)

type BalanceUpdate struct {
	UID     int64  `json:"uid"`
	Balance string `json:"balance"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(uid int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[uid] == nil {
		h.clients[uid] = make(map[*Client]struct{})
	}
	h.clients[uid][client] = struct{}{}
}

func (h *Hub) Unregister(uid int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[uid] == nil {
		return
	}
	delete(h.clients[uid], client)
	if len(h.clients[uid]) == 0 {
		delete(h.clients, uid)
	}
}

func (h *Hub) BroadcastBalance(uid int64, update BalanceUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[uid] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
