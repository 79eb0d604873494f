package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Live update message types.
const (
	MessageSet   = "set"
	MessageState = "state"
	MessageField = "field"
	MessageError = "error"
)

const maxMessageSize = 64 << 10

// FieldUpdate is sent by the browser when a control changes. Value is a
// string, a list of strings for checkbox groups, or a boolean.
type FieldUpdate struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
}

// UpdateReply answers a FieldUpdate with the re-rendered field markup, the
// state snapshot or an error.
type UpdateReply struct {
	Type  string        `json:"type"`
	Field string        `json:"field,omitempty"`
	HTML  string        `json:"html,omitempty"`
	Error string        `json:"error,omitempty"`
	State *wizard.State `json:"state,omitempty"`
}

func (s *Server) handleWebsocket(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket closed", zap.Error(err))
			}
			return
		}

		reply := s.applyUpdate(session, message)
		data, err := json.Marshal(reply)
		if err != nil {
			s.logger.Error("encode websocket reply", zap.Error(err))
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (s *Server) applyUpdate(session *Session, message []byte) UpdateReply {
	var update FieldUpdate
	if err := json.Unmarshal(message, &update); err != nil {
		return UpdateReply{Type: MessageError, Error: "malformed message"}
	}

	switch update.Type {
	case MessageState:
		state := session.Controller.Snapshot()
		return UpdateReply{Type: MessageState, State: &state}
	case MessageSet:
		html, err := s.setField(session, update)
		if err != nil {
			return UpdateReply{Type: MessageError, Field: update.Field, Error: err.Error()}
		}
		return UpdateReply{Type: MessageField, Field: update.Field, HTML: html}
	default:
		return UpdateReply{Type: MessageError, Error: fmt.Sprintf("unknown message type %q", update.Type)}
	}
}

// setField records the value and returns the field's markup as it now renders
// on the current section.
func (s *Server) setField(session *Session, update FieldUpdate) (string, error) {
	state := session.Controller.Snapshot()
	field, ok := state.Form.Field(update.Field)
	if !ok {
		return "", fmt.Errorf("%w: %q", wizard.ErrUnknownField, update.Field)
	}

	value, err := schema.ValueFrom(update.Value)
	if err != nil {
		return "", err
	}

	if err := session.Controller.SetValue(field.ID, value); err != nil {
		return "", err
	}

	html, err := vanilla.RenderField(render.ViewFromState(session.Controller.Snapshot()), field.ID)
	if err != nil {
		// The field exists but sits on another section; the value is kept.
		return "", nil
	}
	return html, nil
}
