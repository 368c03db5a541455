package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming websocket message format.
type wsRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	CareerID  string `json:"career_id"`
	Content   string `json:"content"`
}

// wsResponse is the outgoing websocket message format.
type wsResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWS(conn, wsResponse{Type: "error", Content: "invalid message format"})
			continue
		}
		if req.Content == "" {
			s.sendWS(conn, wsResponse{Type: "error", SessionID: req.SessionID, Content: "content is required"})
			continue
		}

		sessionID, response, err := s.answer(r, chatRequest{
			SessionID: req.SessionID,
			CareerID:  req.CareerID,
			Message:   req.Content,
		})
		if err != nil {
			log.Printf("server: websocket chat: %v", err)
			s.sendWS(conn, wsResponse{Type: "error", SessionID: req.SessionID, Content: "chat failed"})
			continue
		}

		s.sendWS(conn, wsResponse{Type: "response", SessionID: sessionID, Content: response})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
