// Package live pushes booking events to connected front-desk screens.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// subscriber is one board connection. A nil hotelID receives every hotel.
type subscriber struct {
	userID  int64
	hotelID *int64
	conn    *websocket.Conn
	send    chan []byte
}

func (s *subscriber) wants(hotelID *int64) bool {
	if s.hotelID == nil {
		return true
	}
	return hotelID != nil && *hotelID == *s.hotelID
}

// Hub fans events out to board subscribers, filtered by hotel.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
	log  *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		subs: make(map[*subscriber]struct{}),
		log:  log,
	}
}

func (h *Hub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[s] = struct{}{}
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast sends v as JSON to every subscriber allowed to see hotelID.
// Slow subscribers miss the event instead of blocking the caller.
func (h *Hub) Broadcast(hotelID *int64, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.WithError(err).Warn("live: marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if !s.wants(hotelID) {
			continue
		}
		select {
		case s.send <- data:
		default:
			h.log.WithField("user_id", s.userID).Debug("live: subscriber too slow, event dropped")
		}
	}
}

// serve registers conn and blocks until the client goes away.
func (h *Hub) serve(conn *websocket.Conn, userID int64, hotelID *int64) {
	s := &subscriber{
		userID:  userID,
		hotelID: hotelID,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
	h.register(s)

	go h.writePump(s)
	h.readPump(s)
}

// readPump only services control frames; the board is receive-only.
func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).WithField("user_id", s.userID).Warn("live: read failed")
			}
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
