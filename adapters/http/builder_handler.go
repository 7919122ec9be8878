package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/session"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 20
	outboxSize     = 64
)

// Client frames.
const (
	msgEdit     = "edit"
	msgTemplate = "template"
	msgGenerate = "generate"
)

// Server frames.
const (
	frameSnapshot  = "snapshot"
	frameGenerated = "generated"
	frameError     = "error"
)

type builderMessage struct {
	Type string `json:"type"`

	// edit
	Field string          `json:"field,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`

	// template
	TemplateID string `json:"templateId,omitempty"`

	// generate
	Kind    string         `json:"kind,omitempty"`
	Context map[string]any `json:"context,omitempty"`
	Target  string         `json:"target,omitempty"`
}

type builderFrame struct {
	Type       string              `json:"type"`
	Snapshot   *session.Snapshot   `json:"snapshot,omitempty"`
	Completion *session.Completion `json:"completion,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type BuilderHandler struct {
	deps      session.Deps
	saveDelay time.Duration
	upgrader  websocket.Upgrader
	logger    logger.Logger
}

func NewBuilderHandler(deps session.Deps, saveDelay time.Duration, allowedOrigins []string, log logger.Logger) *BuilderHandler {
	return &BuilderHandler{
		deps:      deps,
		saveDelay: saveDelay,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		logger: log,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Connect upgrades to a websocket and runs one builder session for its lifetime.
func (h *BuilderHandler) Connect(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.Error(apperror.NewInvalidInput("userId is required", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade to WebSocket", zap.String("user_id", userID), zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(zap.String("user_id", userID))
	log.Info("Builder session connected")

	outbox := make(chan builderFrame, outboxSize)
	send := func(f builderFrame) {
		select {
		case outbox <- f:
		default:
			log.Warn("Builder outbox full, dropping frame", zap.String("frame", f.Type))
		}
	}

	deps := h.deps
	deps.Logger = log
	sess := session.Start(c.Request.Context(), userID, deps, session.Options{
		SaveDelay:    h.saveDelay,
		OnSnapshot:   func(s session.Snapshot) { send(builderFrame{Type: frameSnapshot, Snapshot: &s}) },
		OnCompletion: func(r session.Completion) { send(builderFrame{Type: frameGenerated, Completion: &r}) },
	})

	ctx, cancel := context.WithCancel(context.Background())
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writePump(ctx, conn, outbox, log)
	}()

	h.readPump(conn, sess, send, log)

	sess.Close()
	cancel()
	<-writerDone
	log.Info("Builder session closed")
}

func (h *BuilderHandler) readPump(conn *websocket.Conn, sess *session.Session, send func(builderFrame), log logger.Logger) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("Builder connection dropped", zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			send(builderFrame{Type: frameError, Error: "only text frames are supported"})
			continue
		}

		var msg builderMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			send(builderFrame{Type: frameError, Error: "malformed message"})
			continue
		}
		if err := dispatch(sess, msg); err != nil {
			send(builderFrame{Type: frameError, Error: err.Error()})
		}
	}
}

func (h *BuilderHandler) writePump(ctx context.Context, conn *websocket.Conn, outbox <-chan builderFrame, log logger.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case f := <-outbox:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				log.Warn("Failed to write builder frame", zap.String("frame", f.Type), zap.Error(err))
				// Unblock the reader so the session is torn down.
				conn.Close()
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}

func dispatch(sess *session.Session, msg builderMessage) error {
	switch msg.Type {
	case msgEdit:
		edit, err := decodeEdit(msg.Field, msg.Value)
		if err != nil {
			return err
		}
		sess.Apply(edit)
	case msgTemplate:
		if msg.TemplateID == "" {
			return fmt.Errorf("templateId is required")
		}
		sess.Apply(session.SetTemplate(msg.TemplateID))
	case msgGenerate:
		if msg.Kind == "" || msg.Target == "" {
			return fmt.Errorf("kind and target are required")
		}
		input := msg.Context
		if input == nil {
			input = map[string]any{}
		}
		sess.RequestCompletion(msg.Kind, input, session.Target(msg.Target))
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

type sectionMark struct {
	Section string `json:"section"`
	Done    bool   `json:"done"`
}

// decodeEdit maps an edit message onto a session reducer.
func decodeEdit(field string, value json.RawMessage) (session.Edit, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("value is required for field %q", field)
	}

	switch field {
	case profile.SectionSummary:
		return decodeInto(value, session.SetSummary)
	case profile.SectionSkills:
		return decodeInto(value, session.SetSkillsText)
	case profile.SectionEducation:
		return decodeInto(value, session.SetEducation)
	case profile.SectionExperience:
		return decodeInto(value, session.SetExperience)
	case profile.SectionProjects:
		return decodeInto(value, session.SetProjects)
	case profile.SectionLanguages:
		return decodeInto(value, session.SetLanguages)
	case profile.SectionCertificates:
		return decodeInto(value, session.SetCertificates)
	case profile.SectionCompleted:
		return decodeInto(value, func(m sectionMark) session.Edit { return session.MarkSection(m.Section, m.Done) })
	case "templateId":
		return decodeInto(value, session.SetTemplate)
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("field %q expects a string", field)
	}
	return session.SetBasic(field, s)
}

func decodeInto[T any](value json.RawMessage, build func(T) session.Edit) (session.Edit, error) {
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return build(v), nil
}
