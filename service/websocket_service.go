package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/proposalops/docchat-be/types"
)

// WebSocketService serves the streaming variant of the chat endpoint:
// the client gets a processing frame while the pipeline runs, then the
// full answer frame.
type WebSocketService struct {
	assistant ChatAssistant
	upgrader  websocket.Upgrader
	logger    zerolog.Logger
}

func NewWebSocketService(assistant ChatAssistant, logger zerolog.Logger) *WebSocketService {
	return &WebSocketService{
		assistant: assistant,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
		logger: logger.With().Str("component", "websocket").Logger(),
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong})

		case types.TypeWebsocketChat:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var chat types.WebsocketChatPayload
			if err := json.Unmarshal(payloadBytes, &chat); err != nil {
				s.writeError(conn, "invalid chat payload")
				continue
			}

			conn.WriteJSON(types.WebsocketResponse{
				Type: types.TypeWebsocketProcessing,
				Payload: types.WebsocketProcessingPayload{
					Stage:   "searching",
					Message: "Searching your documents",
				},
			})

			answer, err := s.assistant.AnswerQuery(ctx, userID, chat.Query, chat.ConversationID)
			if err != nil {
				s.writeError(conn, err.Error())
				continue
			}
			conn.WriteJSON(types.WebsocketResponse{
				Type:    types.TypeWebsocketAnswer,
				Payload: answer,
			})

		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: map[string]string{"error": message},
	})
}
