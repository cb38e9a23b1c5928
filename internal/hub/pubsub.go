package hub

import (
	"encoding/json"
	"log"

	"unicare/backend/internal/models"
	"unicare/backend/internal/storage"
)

// StartPubSubListener starts a goroutine that relays room events from Redis
// Pub/Sub into the hub's dispatch loop. Every instance subscribes to all room
// channels, so events published by any instance reach every connected client.
func (m *ManagerService) StartPubSubListener() {
	svc, ok := m.Rooms.Storage.(*storage.Service)
	if !ok || svc.Redis == nil {
		// Test doubles have no Redis; events then only reach local clients.
		return
	}

	go func() {
		pubsub := svc.SubscribeToRoomEvents()
		defer pubsub.Close()

		ch := pubsub.Channel()

		for msg := range ch {
			var event models.RoomEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshalling Redis event: %v", err)
				continue
			}
			m.pubSubCh <- event
		}
	}()
}
