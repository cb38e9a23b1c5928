package hub

import (
	"log"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"
	"unicare/backend/internal/rooms"
)

// ManagerService owns the set of live connections and fans room events out to
// them. Incoming websocket messages are appended through the room service so
// they pass the same participant and status checks as the REST path.
type ManagerService struct {
	Clients map[string]Client

	// Channels
	IncomingCh   chan models.RoomEvent
	RegisterCh   chan Client
	UnregisterCh chan Client

	Rooms *rooms.Service

	pubSubCh chan models.RoomEvent
}

// NewManagerService creates a hub bound to the room service.
func NewManagerService(roomSvc *rooms.Service) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		IncomingCh:   make(chan models.RoomEvent),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Rooms:        roomSvc,
		pubSubCh:     make(chan models.RoomEvent),
	}
}

// Run is the hub's main dispatch loop. Intended to run as a goroutine from
// main; it owns the Clients map, so all mutation happens here.
func (m *ManagerService) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetUserID()] = client
			log.Printf("Client %s attached to room %s", client.GetUserID(), client.GetRoomID())

		case client := <-m.UnregisterCh:
			if current, ok := m.Clients[client.GetUserID()]; ok && current == client {
				delete(m.Clients, client.GetUserID())
				client.Close()
			}

		case event := <-m.IncomingCh:
			m.handleIncoming(event)

		case event := <-m.pubSubCh:
			// Event arrived via Redis, possibly from another instance.
			m.fanOut(event)
		}
	}
}

// handleIncoming appends a websocket-originated message through the room
// service. The service publishes the stored message back through Redis, which
// is what reaches the participants; failures go only to the sender.
func (m *ManagerService) handleIncoming(event models.RoomEvent) {
	sender, ok := m.Clients[event.SenderID]
	if !ok {
		return
	}
	actor := authz.Actor{ID: sender.GetUserID(), Role: sender.GetRole()}
	if _, err := m.Rooms.AppendMessage(actor, event.RoomID, event.Content); err != nil {
		log.Printf("Rejected message from %s in room %s: %v", event.SenderID, event.RoomID, err)
		select {
		case sender.GetSendChannel() <- models.RoomEvent{
			RoomID:  event.RoomID,
			Type:    models.EventError,
			Content: err.Error(),
		}:
		default:
		}
	}
}

// fanOut delivers an event to every connected client attached to its room.
// Slow clients are dropped rather than allowed to stall the hub.
func (m *ManagerService) fanOut(event models.RoomEvent) {
	for _, client := range m.Clients {
		if client.GetRoomID() != event.RoomID {
			continue
		}
		select {
		case client.GetSendChannel() <- event:
		default:
			delete(m.Clients, client.GetUserID())
			client.Close()
		}
	}
}
