package hub

import (
	"sync"
	"testing"
	"time"

	"unicare/backend/internal/crisis"
	"unicare/backend/internal/models"
	"unicare/backend/internal/rooms"
	"unicare/backend/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	userID      string
	role        string
	roomID      string
	RecvChannel chan models.RoomEvent

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID, role, roomID string) *mockClient {
	return &mockClient{
		userID:      userID,
		role:        role,
		roomID:      roomID,
		RecvChannel: make(chan models.RoomEvent, 10),
	}
}

func (c *mockClient) GetUserID() string                       { return c.userID }
func (c *mockClient) GetRole() string                         { return c.role }
func (c *mockClient) GetRoomID() string                       { return c.roomID }
func (c *mockClient) GetSendChannel() chan<- models.RoomEvent { return c.RecvChannel }
func (c *mockClient) Run()                                    {}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *mockClient) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newTestHub(storageMock *storagetest.MockStorage) *ManagerService {
	roomSvc := rooms.NewService(storageMock, crisis.NewService(storageMock, nil))
	return NewManagerService(roomSvc)
}

// TestFanOutToRoomClients verifies an event reaches every client attached to
// its room and nobody else.
func TestFanOutToRoomClients(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	m := newTestHub(storageMock)

	student := newMockClient("student-1", models.RoleStudent, "room-1")
	supporter := newMockClient("supporter-A", models.RoleCounselor, "room-1")
	bystander := newMockClient("student-2", models.RoleStudent, "room-2")
	m.Clients["student-1"] = student
	m.Clients["supporter-A"] = supporter
	m.Clients["student-2"] = bystander

	event := models.RoomEvent{RoomID: "room-1", SenderID: "student-1", Content: "Hello", Type: models.EventMessage}

	// Act
	m.fanOut(event)

	// Assert
	assert.Len(t, student.RecvChannel, 1)
	assert.Len(t, supporter.RecvChannel, 1)
	assert.Empty(t, bystander.RecvChannel)
}

// TestFanOutDropsSlowClient: a client with a full send buffer is evicted
// instead of stalling the hub.
func TestFanOutDropsSlowClient(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	m := newTestHub(storageMock)

	slow := newMockClient("student-1", models.RoleStudent, "room-1")
	slow.RecvChannel = make(chan models.RoomEvent) // unbuffered, nobody reading
	m.Clients["student-1"] = slow

	// Act
	m.fanOut(models.RoomEvent{RoomID: "room-1", Type: models.EventMessage})

	// Assert
	assert.NotContains(t, m.Clients, "student-1")
	assert.True(t, slow.IsClosed())
}

// TestHandleIncomingAppendsThroughService verifies websocket messages take
// the same persistence path as the REST API.
func TestHandleIncomingAppendsThroughService(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	m := newTestHub(storageMock)

	supporterID := "supporter-A"
	room := &models.SupportRoom{ID: "room-1", StudentID: "student-1", SupporterID: &supporterID, Status: models.RoomStatusActive}
	storageMock.On("GetRoomByID", "room-1").Return(room, nil).Once()
	storageMock.On("SaveMessage", mock.AnythingOfType("*models.SupportMessage")).Return(nil).Once()
	storageMock.On("PublishEvent", "room-1", mock.AnythingOfType("models.RoomEvent")).Return(nil).Once()

	sender := newMockClient("student-1", models.RoleStudent, "room-1")
	m.Clients["student-1"] = sender

	// Act
	m.handleIncoming(models.RoomEvent{RoomID: "room-1", SenderID: "student-1", Content: "Hello", Type: models.EventMessage})

	// Assert
	storageMock.AssertExpectations(t)
	assert.Empty(t, sender.RecvChannel, "no error event for a valid message")
}

// TestHandleIncomingRejectionGoesToSender: an append rejected by the room
// service turns into an error event for the sender only.
func TestHandleIncomingRejectionGoesToSender(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	m := newTestHub(storageMock)

	ended := time.Now()
	supporterID := "supporter-A"
	closed := &models.SupportRoom{
		ID: "room-1", StudentID: "student-1", SupporterID: &supporterID,
		Status: models.RoomStatusClosed, EndedAt: &ended,
	}
	storageMock.On("GetRoomByID", "room-1").Return(closed, nil).Once()

	sender := newMockClient("student-1", models.RoleStudent, "room-1")
	m.Clients["student-1"] = sender

	// Act
	m.handleIncoming(models.RoomEvent{RoomID: "room-1", SenderID: "student-1", Content: "hello?", Type: models.EventMessage})

	// Assert
	storageMock.AssertNotCalled(t, "SaveMessage", mock.Anything)
	assert.Len(t, sender.RecvChannel, 1)
	errEvent := <-sender.RecvChannel
	assert.Equal(t, "error", errEvent.Type)
}

// TestRegisterUnregisterFlow exercises the dispatch loop end to end: a
// registered client receives room events, an unregistered one is closed.
func TestRegisterUnregisterFlow(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	m := newTestHub(storageMock)
	go m.Run()

	client := newMockClient("student-1", models.RoleStudent, "room-1")

	// Act
	m.RegisterCh <- client
	m.pubSubCh <- models.RoomEvent{RoomID: "room-1", Content: "Hello", Type: models.EventMessage}

	// Assert
	select {
	case event := <-client.RecvChannel:
		assert.Equal(t, "Hello", event.Content)
	case <-time.After(time.Second):
		t.Fatal("registered client never received the event")
	}

	m.UnregisterCh <- client
	assert.Eventually(t, client.IsClosed, time.Second, 10*time.Millisecond)
}
