// Package ws implements the presence router: a websocket hub that tracks
// which devices hold live connections and delivers push events to them. The
// connection maps are the source of truth for presence; the stored online
// flag only mirrors them for offline readers.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"nydra/internal/domain/repository"
	"nydra/internal/domain/service"
	"nydra/internal/infra/metrics"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// envelope is the wire frame for push events in both directions.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// inbound is the parsed form of a frame received from a client.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub maintains the live connections and implements service.Pusher.
type Hub struct {
	logger     *slog.Logger
	deviceRepo repository.DeviceRepository
	metrics    *metrics.DispatchMetrics

	mu       sync.RWMutex
	clients  map[*Client]struct{}
	byUser   map[uuid.UUID]map[*Client]struct{}
	byDevice map[string]map[*Client]struct{}

	// onDeviceOnline wakes the dispatcher when a device gains its first
	// connection. Set once during wiring, before any connection arrives.
	onDeviceOnline func(deviceID string)
}

// Params holds the hub's dependencies, injected by Fx.
type Params struct {
	fx.In

	Logger     *slog.Logger
	DeviceRepo repository.DeviceRepository
	Metrics    *metrics.DispatchMetrics
}

// NewHub constructs the presence router.
func NewHub(params Params) *Hub {
	return &Hub{
		logger:     params.Logger,
		deviceRepo: params.DeviceRepo,
		metrics:    params.Metrics,
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[uuid.UUID]map[*Client]struct{}),
		byDevice:   make(map[string]map[*Client]struct{}),
	}
}

// SetDeviceOnlineListener registers the callback fired when a device gains
// its first live connection.
func (h *Hub) SetDeviceOnlineListener(fn func(deviceID string)) {
	h.onDeviceOnline = fn
}

// PushToDevice delivers an event to every live connection of a device and
// reports whether at least one connection accepted it.
func (h *Hub) PushToDevice(deviceID string, event string, payload any) bool {
	if deviceID == "" {
		return false
	}

	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to marshal push event",
			slog.String("event", event),
			slog.Any("error", err),
		)

		return false
	}

	// Sends happen under the read lock: unregister closes a send channel
	// only under the write lock, after removing the client from the maps,
	// so every client visible here still has an open channel. The sends
	// are non-blocking, so holding the lock cannot stall.
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for client := range h.byDevice[deviceID] {
		select {
		case client.send <- data:
			delivered = true
		default:
			// Send buffer full; the client is stalled and will be torn
			// down by its write deadline.
		}
	}

	return delivered
}

// PushToUser fans an event out to all connections of a user.
func (h *Hub) PushToUser(userID uuid.UUID, event string, payload any) {
	h.pushToUserExcept(userID, nil, event, payload)
}

// pushToUserExcept fans an event out to a user's connections, skipping the
// originating one so a device is not told about its own presence change.
func (h *Hub) pushToUserExcept(userID uuid.UUID, except *Client, event string, payload any) {
	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to marshal push event",
			slog.String("event", event),
			slog.Any("error", err),
		)

		return
	}

	// Same locking discipline as PushToDevice: sending under the read lock
	// keeps the channels open for the duration of the send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.byUser[userID] {
		if client == except {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}

// IsDeviceOnline reports whether the device has at least one live connection.
func (h *Hub) IsDeviceOnline(deviceID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.byDevice[deviceID]) > 0
}

// register adds a connection to the maps. The first connection of a device
// flips it online, mirrors the flag to the store, notifies the dispatcher
// and broadcasts the presence change to the user's other connections.
func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	if h.byUser[client.userID] == nil {
		h.byUser[client.userID] = make(map[*Client]struct{})
	}
	h.byUser[client.userID][client] = struct{}{}

	firstDeviceConn := false
	if client.deviceID != "" {
		if h.byDevice[client.deviceID] == nil {
			h.byDevice[client.deviceID] = make(map[*Client]struct{})
		}
		h.byDevice[client.deviceID][client] = struct{}{}
		firstDeviceConn = len(h.byDevice[client.deviceID]) == 1
	}
	h.mu.Unlock()

	h.metrics.ConnectionOpened()
	h.logger.Info("connection registered",
		slog.String("user_id", client.userID.String()),
		slog.String("device_id", client.deviceID),
	)

	if !firstDeviceConn {
		return
	}

	now := time.Now()
	if err := h.deviceRepo.UpdatePresence(client.ctx(), client.deviceID, true, now); err != nil {
		h.logger.Error("failed to mark device online",
			slog.String("device_id", client.deviceID),
			slog.Any("error", err),
		)
	}

	h.broadcastDeviceStatus(client, true, now)

	if h.onDeviceOnline != nil {
		h.onDeviceOnline(client.deviceID)
	}
}

// unregister removes a connection. The last connection of a device flips it
// offline. Abrupt drops arrive here too, via the read pump's deadline.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()

		return
	}
	delete(h.clients, client)
	delete(h.byUser[client.userID], client)
	if len(h.byUser[client.userID]) == 0 {
		delete(h.byUser, client.userID)
	}

	lastDeviceConn := false
	if client.deviceID != "" {
		delete(h.byDevice[client.deviceID], client)
		if len(h.byDevice[client.deviceID]) == 0 {
			delete(h.byDevice, client.deviceID)
			lastDeviceConn = true
		}
	}
	close(client.send)
	h.mu.Unlock()

	h.metrics.ConnectionClosed()
	h.logger.Info("connection unregistered",
		slog.String("user_id", client.userID.String()),
		slog.String("device_id", client.deviceID),
	)

	if !lastDeviceConn {
		return
	}

	now := time.Now()
	if err := h.deviceRepo.UpdatePresence(client.ctx(), client.deviceID, false, now); err != nil {
		h.logger.Error("failed to mark device offline",
			slog.String("device_id", client.deviceID),
			slog.Any("error", err),
		)
	}

	h.broadcastDeviceStatus(client, false, now)
}

// broadcastDeviceStatus tells the user's other connections that a device's
// presence changed.
func (h *Hub) broadcastDeviceStatus(origin *Client, online bool, at time.Time) {
	h.pushToUserExcept(origin.userID, origin, service.EventDeviceStatus, map[string]any{
		"device_id":   origin.deviceID,
		"is_online":   online,
		"last_active": at.UTC().Format(time.RFC3339),
	})
}

// handleInbound processes a frame received from a client.
func (h *Hub) handleInbound(client *Client, data []byte) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		h.logger.Warn("unparseable client frame",
			slog.String("device_id", client.deviceID),
			slog.Any("error", err),
		)

		return
	}

	switch msg.Event {
	case "ping":
		if client.deviceID != "" {
			if err := h.deviceRepo.UpdateLastActive(client.ctx(), client.deviceID, time.Now()); err != nil {
				h.logger.Warn("failed to refresh last active",
					slog.String("device_id", client.deviceID),
					slog.Any("error", err),
				)
			}
		}
		client.sendEvent(service.EventPong, nil)

	case "command-progress":
		// Interim progress from an executing target, forwarded to the
		// user's other connections without touching the lifecycle.
		var progress map[string]any
		if err := json.Unmarshal(msg.Data, &progress); err != nil {
			return
		}
		h.PushToUser(client.userID, service.EventCommandUpdate, progress)

	default:
		h.logger.Debug("ignored client frame",
			slog.String("event", msg.Event),
			slog.String("device_id", client.deviceID),
		)
	}
}
