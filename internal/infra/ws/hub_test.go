package ws

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"nydra/internal/domain/service"
	"nydra/internal/infra/metrics"
	mockRepo "nydra/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestHub(t *testing.T) (*Hub, *mockRepo.MockDeviceRepository) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)

	hub := NewHub(Params{
		Logger:     slog.Default(),
		DeviceRepo: deviceRepo,
		Metrics:    metrics.NewDispatchMetrics(prometheus.NewRegistry()),
	})

	return hub, deviceRepo
}

// connect registers a connection without a network socket; the pumps are not
// needed for routing behavior.
func connect(hub *Hub, userID uuid.UUID, deviceID string) *Client {
	client := &Client{
		hub:      hub,
		userID:   userID,
		deviceID: deviceID,
		send:     make(chan []byte, sendBufferSize),
	}
	hub.register(client)

	return client
}

func receiveEvent(t *testing.T, client *Client) envelope {
	t.Helper()

	select {
	case data := <-client.send:
		var env envelope
		require.NoError(t, json.Unmarshal(data, &env))

		return env
	case <-time.After(time.Second):
		t.Fatal("no frame delivered to connection")

		return envelope{}
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()

	select {
	case data := <-client.send:
		t.Fatalf("unexpected frame delivered: %s", data)
	default:
	}
}

func TestHub_FirstConnectionFlipsDeviceOnline(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	var notified string
	hub.SetDeviceOnlineListener(func(deviceID string) { notified = deviceID })

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", true, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	assert.False(t, hub.IsDeviceOnline("desktop-home"))
	connect(hub, userID, "desktop-home")

	assert.True(t, hub.IsDeviceOnline("desktop-home"))
	assert.Equal(t, "desktop-home", notified)
}

func TestHub_SecondConnectionSameDeviceDoesNotReflip(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	// One presence write, regardless of how many sockets the device holds.
	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", true, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	connect(hub, userID, "desktop-home")
	connect(hub, userID, "desktop-home")

	assert.True(t, hub.IsDeviceOnline("desktop-home"))
}

func TestHub_LastDisconnectFlipsDeviceOffline(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", true, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	first := connect(hub, userID, "desktop-home")
	second := connect(hub, userID, "desktop-home")

	hub.unregister(first)
	assert.True(t, hub.IsDeviceOnline("desktop-home"), "device stays online while a socket remains")

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", false, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	hub.unregister(second)
	assert.False(t, hub.IsDeviceOnline("desktop-home"))

	// A stale unregister for an already-removed connection is a no-op.
	hub.unregister(second)
}

func TestHub_PushToDevice(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", true, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	client := connect(hub, userID, "desktop-home")

	delivered := hub.PushToDevice("desktop-home", service.EventExecuteCommand, map[string]any{"command_id": "c1"})
	require.True(t, delivered)

	env := receiveEvent(t, client)
	assert.Equal(t, service.EventExecuteCommand, env.Event)

	assert.False(t, hub.PushToDevice("desktop-away", service.EventExecuteCommand, nil),
		"push to a device without connections reports undelivered")
	assert.False(t, hub.PushToDevice("", service.EventExecuteCommand, nil))
}

func TestHub_PushRacesDisconnectSafely(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", mock.AnythingOfType("bool"), mock.AnythingOfType("time.Time")).
		Return(nil).Maybe()

	// Connections churn while pushes run concurrently; a send racing the
	// channel close on disconnect would panic the process.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			client := connect(hub, userID, "desktop-home")
			hub.unregister(client)
		}
	}()

	for pushing := true; pushing; {
		select {
		case <-done:
			pushing = false
		default:
			hub.PushToDevice("desktop-home", service.EventExecuteCommand, map[string]any{"command_id": "c1"})
			hub.PushToUser(userID, service.EventCommandUpdate, map[string]any{"command_id": "c1"})
		}
	}

	assert.False(t, hub.IsDeviceOnline("desktop-home"))
}

func TestHub_DeviceStatusSkipsOriginatingConnection(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, mock.AnythingOfType("string"), true, mock.AnythingOfType("time.Time")).
		Return(nil).Twice()

	observer := connect(hub, userID, "phone-pocket")
	origin := connect(hub, userID, "desktop-home")

	env := receiveEvent(t, observer)
	assert.Equal(t, service.EventDeviceStatus, env.Event)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "desktop-home", data["device_id"])
	assert.Equal(t, true, data["is_online"])

	// The connection that caused the change never hears about itself.
	assertNoEvent(t, origin)
}

func TestHub_PushToUserReachesAllConnections(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()
	otherUser := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, mock.AnythingOfType("string"), true, mock.AnythingOfType("time.Time")).
		Return(nil).Times(3)

	first := connect(hub, userID, "phone-pocket")
	second := connect(hub, userID, "desktop-home")
	stranger := connect(hub, otherUser, "tablet-couch")

	// Drain the presence broadcast the second connection triggered.
	receiveEvent(t, first)

	hub.PushToUser(userID, service.EventCommandUpdate, map[string]any{"command_id": "c1"})

	assert.Equal(t, service.EventCommandUpdate, receiveEvent(t, first).Event)
	assert.Equal(t, service.EventCommandUpdate, receiveEvent(t, second).Event)
	assertNoEvent(t, stranger)
}

func TestHub_InboundPingRefreshesLastActive(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", true, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	client := connect(hub, userID, "desktop-home")

	deviceRepo.EXPECT().
		UpdateLastActive(mock.Anything, "desktop-home", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	hub.handleInbound(client, []byte(`{"event":"ping"}`))

	env := receiveEvent(t, client)
	assert.Equal(t, service.EventPong, env.Event)
}

func TestHub_InboundProgressForwardedToUser(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, mock.AnythingOfType("string"), true, mock.AnythingOfType("time.Time")).
		Return(nil).Twice()

	observer := connect(hub, userID, "phone-pocket")
	executor := connect(hub, userID, "desktop-home")
	receiveEvent(t, observer) // presence broadcast for the executor

	hub.handleInbound(executor, []byte(`{"event":"command-progress","data":{"command_id":"c1","progress":40}}`))

	env := receiveEvent(t, observer)
	assert.Equal(t, service.EventCommandUpdate, env.Event)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "c1", data["command_id"])
}

func TestHub_InboundGarbageIgnored(t *testing.T) {
	hub, deviceRepo := createTestHub(t)
	userID := uuid.New()

	deviceRepo.EXPECT().
		UpdatePresence(mock.Anything, "desktop-home", true, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	client := connect(hub, userID, "desktop-home")

	hub.handleInbound(client, []byte(`not json`))
	hub.handleInbound(client, []byte(`{"event":"unknown-event"}`))

	assertNoEvent(t, client)
}
