package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/voice"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from a different origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// connectionManager tracks live voice connections by client ID. A new
// connection with an existing ID replaces the old one.
type connectionManager struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

func newConnectionManager() *connectionManager {
	return &connectionManager{conns: make(map[string]*websocket.Conn)}
}

// register stores the connection, closing any previous one under the same ID.
func (m *connectionManager) register(clientID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.conns[clientID]; ok {
		slog.Warn("connectionManager.register: replacing existing connection", "clientID", clientID)
		old.Close()
	}
	m.conns[clientID] = conn
}

// unregister removes the connection if it is still the one on record.
func (m *connectionManager) unregister(clientID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conns[clientID] == conn {
		delete(m.conns, clientID)
	}
}

// voiceHandler handles GET /voice/{client_id}: the WebSocket voice channel.
// Each connection gets its own session; form state and history never leak
// between connections.
func (s *Server) voiceHandler(w http.ResponseWriter, r *http.Request) {
	if s.voiceCap == nil {
		slog.Error("voiceHandler voice pipeline not configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Voice pipeline not configured"))
		return
	}

	clientID := r.PathValue("client_id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	client, ok := s.registry.ForProvider(models.DefaultProvider)
	if !ok {
		slog.Error("voiceHandler no model backend configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("No model backend configured"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("voiceHandler upgrade failed", "error", err, "clientID", clientID)
		return
	}

	s.conns.register(clientID, conn)
	s.voiceCap.Acquire()
	defer func() {
		s.voiceCap.Release()
		s.conns.unregister(clientID, conn)
		conn.Close()
		slog.Info("voiceHandler connection closed", "clientID", clientID)
	}()

	slog.Info("voiceHandler connection established", "clientID", clientID)
	session := voice.NewSession(client, s.voiceCap, models.DefaultPersona)
	s.readLoop(r.Context(), conn, session, clientID)
}

// readLoop dispatches client messages sequentially until the connection
// drops. Malformed messages produce an error event rather than closing the
// channel.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, session *voice.Session, clientID string) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("voiceHandler read error", "error", err, "clientID", clientID)
			}
			return
		}

		var msg models.VoiceClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Warn("voiceHandler malformed message", "error", err, "clientID", clientID)
			writeEvents(conn, clientID, []voice.Event{{Type: models.VoiceEventError, Message: "malformed message"}})
			continue
		}

		var events []voice.Event
		switch msg.Type {
		case models.VoiceMessageText:
			if strings.HasPrefix(msg.Text, models.VoiceAudioMarker) {
				encoded := strings.TrimPrefix(msg.Text, models.VoiceAudioMarker)
				audio, err := base64.StdEncoding.DecodeString(encoded)
				if err != nil {
					slog.Warn("voiceHandler invalid audio payload", "error", err, "clientID", clientID)
					events = []voice.Event{{Type: models.VoiceEventError, Message: "invalid audio payload"}}
					break
				}
				events = session.ProcessAudio(ctx, audio)
			} else {
				events = session.ProcessText(ctx, msg.Text)
			}
		case models.VoiceMessageFormUpdate:
			session.SetForm(msg.FormData)
		case models.VoiceMessageRoleChange:
			session.SetPersona(models.ParsePersona(msg.AIRole))
		default:
			slog.Warn("voiceHandler unknown message type", "type", msg.Type, "clientID", clientID)
		}

		if !writeEvents(conn, clientID, events) {
			return
		}
	}
}

// writeEvents sends each event as its own JSON frame, in order. Returns
// false when the connection is no longer writable.
func writeEvents(conn *websocket.Conn, clientID string, events []voice.Event) bool {
	for _, ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			slog.Warn("voiceHandler write failed", "error", err, "clientID", clientID, "eventType", ev.Type)
			return false
		}
	}
	return true
}
