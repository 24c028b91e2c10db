package websocket

import (
	"log"
	"sync"

	"techmastery/models"

	"github.com/gorilla/websocket"
)

// ProgressClient represents a client connected for live progress updates
type ProgressClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes to the client's connection
func (pc *ProgressClient) SafeWriteJSON(v interface{}) error {
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.Conn.WriteJSON(v)
}

var (
	progressClients = make(map[*ProgressClient]bool)
	progressMutex   sync.RWMutex
)

// RegisterProgressClient registers a client for progress updates
func RegisterProgressClient(client *ProgressClient) {
	progressMutex.Lock()
	defer progressMutex.Unlock()
	progressClients[client] = true
	log.Printf("Progress client registered. Total clients: %d", len(progressClients))
}

// UnregisterProgressClient removes a client and closes its connection
func UnregisterProgressClient(client *ProgressClient) {
	progressMutex.Lock()
	defer progressMutex.Unlock()
	if _, ok := progressClients[client]; !ok {
		return
	}
	delete(progressClients, client)
	client.Conn.Close()
	log.Printf("Progress client unregistered. Total clients: %d", len(progressClients))
}

// BroadcastProgressEvent fans a progress event out to all connected clients
func BroadcastProgressEvent(event models.ProgressEvent) {
	progressMutex.RLock()
	clients := make([]*ProgressClient, 0, len(progressClients))
	for client := range progressClients {
		clients = append(clients, client)
	}
	progressMutex.RUnlock()

	for _, client := range clients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting progress event: %v", err)
			go UnregisterProgressClient(client)
		}
	}
}

// ProgressClientCount returns the number of connected clients
func ProgressClientCount() int {
	progressMutex.RLock()
	defer progressMutex.RUnlock()
	return len(progressClients)
}
