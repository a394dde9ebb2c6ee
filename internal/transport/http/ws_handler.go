package http

import (
	"encoding/json"
	"log"
	"net/http"

	"cyberquiz-service/internal/app"
	"cyberquiz-service/internal/quiz"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
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

type selectPayload struct {
	OptionIndex int `json:"optionIndex"`
}

type questionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Selected int      `json:"selected"` // -1 when nothing chosen yet
}

type selectedView struct {
	OptionIndex int    `json:"optionIndex"`
	Explanation string `json:"explanation,omitempty"`
}

type completedView struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz attempt
// over the connection. The correct option index never crosses the wire;
// grading stays server-side.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	topicID := r.URL.Query().Get("topicId")
	userID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if topicID == "" || userID == "" || displayName == "" {
		http.Error(w, "missing topicId, userId, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.StartQuiz(r.Context(), userID, displayName, topicID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	// A dropped connection mid-quiz abandons the attempt; nothing is reported.
	defer h.service.Abandon(userID, topicID)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "question", Payload: viewOf(session)}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}
				continue
			}
			session, err := h.service.SelectAnswer(userID, topicID, payload.OptionIndex)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "selected", Payload: selectedView{
				OptionIndex: payload.OptionIndex,
				Explanation: session.CurrentQuestion().Explanation,
			}}
		case "next":
			session, report, err := h.service.ConfirmAndAdvance(r.Context(), userID, topicID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			if report != nil {
				send <- outboundMessage[any]{Type: "completed", Payload: completedView{Score: report.Score, Total: report.Total}}
				h.sendLeaderboard(send, r, topicID)
				continue
			}
			send <- outboundMessage[any]{Type: "question", Payload: viewOf(session)}
		case "previous":
			session, err := h.service.GoToPrevious(userID, topicID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "question", Payload: viewOf(session)}
		case "leaderboard":
			h.sendLeaderboard(send, r, topicID)
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) sendLeaderboard(send chan<- outboundMessage[any], r *http.Request, topicID string) {
	board, err := h.service.Leaderboard(r.Context(), topicID)
	if err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "leaderboard unavailable"}}
		return
	}
	send <- outboundMessage[any]{Type: "leaderboard", Payload: board}
}

func viewOf(session *quiz.Session) questionView {
	q := session.CurrentQuestion()
	return questionView{
		Index:    session.CurrentIndex(),
		Total:    session.Total(),
		ID:       q.ID,
		Text:     q.Text,
		Options:  q.Options,
		Selected: session.Selected(),
	}
}
