package controller

import (
	"log"
	"sync"

	"promocrm/models"

	"github.com/gofiber/websocket/v2"
)

// boardHub tracks dashboards subscribed to kanban board updates
type boardHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

var hub = &boardHub{conns: make(map[*websocket.Conn]struct{})}

type boardMessage struct {
	Type  string        `json:"type"`
	Tasks []models.Task `json:"tasks"`
}

// HandleTaskBoardWS keeps a dashboard connection open and pushes board
// refreshes to it after every reorder
func HandleTaskBoardWS(c *websocket.Conn) {
	hub.mu.Lock()
	hub.conns[c] = struct{}{}
	hub.mu.Unlock()

	defer func() {
		hub.mu.Lock()
		delete(hub.conns, c)
		hub.mu.Unlock()
		c.Close()
	}()

	// Drain client messages until the connection closes
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastBoardUpdate pushes the freshly sorted board to every subscribed
// dashboard. Dead connections are dropped on write failure.
func BroadcastBoardUpdate(tasks []models.Task) {
	msg := boardMessage{Type: "board_updated", Tasks: tasks}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	for conn := range hub.conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Error writing board update: %v", err)
			delete(hub.conns, conn)
			conn.Close()
		}
	}
}
