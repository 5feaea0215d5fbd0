package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"quest-client/internal/app"
	"quest-client/internal/domain"
)

type WSHandler struct {
	service  *app.QuestService
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuestService, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestID int    `json:"questId"`
	Sub     int    `json:"sub"` // 1-based; 0 means the first sub-question
	Text    string `json:"text"`
}

type progressPayload struct {
	Percent float64 `json:"percent"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quest use cases.
// Commands are handled one at a time per connection, in arrival order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("ws write error", "error", err)
				// Keep draining so producers never block on a dead socket.
				for range send {
				}
				return
			}
		}
	}()

	sendError := func(err error) {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: userMessage(err)}}
	}
	sendStatus := func() {
		snap, err := h.service.Snapshot(ctx)
		if err != nil {
			sendError(err)
			return
		}
		send <- outboundMessage[any]{Type: "status", Payload: snap}
	}

	sendStatus()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "status":
			sendStatus()
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			sub := 0
			if payload.Sub > 0 {
				sub = payload.Sub - 1
			}
			if err := h.service.SaveAnswer(ctx, payload.QuestID, sub, payload.Text); err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "saved", Payload: payload}
		case "submit":
			result, err := h.service.Submit(ctx, app.SubmitOptions{
				OnProgress: func(percent float64) {
					msg := outboundMessage[any]{Type: "progress", Payload: progressPayload{Percent: percent}}
					// Progress is cosmetic: drop a tick rather than stall the submission.
					select {
					case send <- msg:
					default:
					}
				},
			})
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "submitted", Payload: result}
			sendStatus()
		case "prove":
			result, err := h.service.Prove(ctx)
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "proved", Payload: result}
		case "reset":
			if err := h.service.Reset(ctx); err != nil {
				sendError(err)
				continue
			}
			sendStatus()
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

// userMessage maps service errors to what the UI should show.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return "An error occurred while submitting answers. Please try again later."
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return "Verification is already running."
	default:
		return err.Error()
	}
}
