package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type    string `json:"type"` // "message" or "routine"
	Content string `json:"content"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string `json:"type"` // "response", "fallback", "notice" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	HTML      string `json:"html,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, cookie, err := d.resolveSession(r)
	if err != nil {
		d.logger.Error("resolving session failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		d.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			d.sendError(conn, sess, "invalid message format")
			continue
		}

		switch req.Type {
		case "message":
			d.handleChatMessage(conn, r, sess, req)
		case "routine":
			d.handleRoutineMessage(conn, r, sess)
		default:
			d.sendError(conn, sess, "unknown message type: "+req.Type)
		}
	}
}

func (d *Dashboard) handleChatMessage(conn *websocket.Conn, r *http.Request, sess *advisor.Session, req chatRequest) {
	reply, err := d.service.Chat(r.Context(), sess, req.Content)
	if errors.Is(err, advisor.ErrInvalidInput) {
		// Blank input is ignored.
		return
	}
	if err != nil {
		d.sendError(conn, sess, "chat failed: "+err.Error())
		return
	}
	d.sendReply(conn, sess, reply)
}

func (d *Dashboard) handleRoutineMessage(conn *websocket.Conn, r *http.Request, sess *advisor.Session) {
	reply, err := d.service.GenerateRoutine(r.Context(), sess)
	if err != nil {
		d.sendError(conn, sess, "routine failed: "+err.Error())
		return
	}
	d.sendReply(conn, sess, reply)
}

func (d *Dashboard) sendReply(conn *websocket.Conn, sess *advisor.Session, reply advisor.Reply) {
	d.sendResponse(conn, chatResponse{
		Type:      string(reply.Type),
		SessionID: sess.ID,
		Content:   reply.Content,
		HTML:      reply.HTML,
		ErrorKind: string(reply.ErrorKind),
	})
}

func (d *Dashboard) sendResponse(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		d.logger.Warn("websocket write failed", zap.Error(err))
	}
}

func (d *Dashboard) sendError(conn *websocket.Conn, sess *advisor.Session, message string) {
	d.sendResponse(conn, chatResponse{
		Type:      "error",
		SessionID: sess.ID,
		Content:   message,
	})
}
