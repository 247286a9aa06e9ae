package wire

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/coder/websocket"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reoring/skemaform"
	"github.com/reoring/skemaform/jsonschema"
)

// Handler serves live form sessions over WebSocket.
type Handler struct {
	doc  *jsonschema.Schema
	opts skemaform.Options
	log  *zap.Logger

	// OriginPatterns are host patterns, as understood by
	// websocket.AcceptOptions, allowed besides the request's own host.
	OriginPatterns []string
	// OnSubmit, when set, receives every submitted value with its session id.
	OnSubmit func(sessionID string, value any)
}

// NewHandler creates a handler rendering doc for every connection.
func NewHandler(doc *jsonschema.Schema, opts skemaform.Options, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{doc: doc, opts: opts, log: log.Named("wire")}
}

// ServeHTTP upgrades to WebSocket and runs the session until the client
// goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.OriginPatterns})
	if err != nil {
		h.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	s := &session{id: uuid.NewString(), conn: conn, h: h}
	s.log = h.log.With(zap.String("session", s.id))
	s.form = skemaform.Render(h.doc, nil, s.submitted, h.opts)
	defer s.form.Close()

	s.run(r.Context())
}

type session struct {
	id   string
	conn *websocket.Conn
	h    *Handler
	log  *zap.Logger
	form *skemaform.Form
}

func (s *session) submitted(v any) {
	if s.h.OnSubmit != nil {
		s.h.OnSubmit(s.id, v)
	}
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan ClientMessage)
	errc := make(chan error, 1)
	go func() {
		for {
			msg, err := s.read(ctx)
			if err != nil {
				errc <- err
				return
			}
			select {
			case in <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.send(ctx, ServerMessage{Type: TypeSession, Data: SessionData{SessionID: s.id}})
	s.sendView(ctx, "")

	// the form is only touched here
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errc:
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				s.log.Debug("session read ended", zap.Error(err))
			}
			return
		case <-s.form.Notify():
			if s.form.Poll() > 0 {
				s.sendView(ctx, "")
			}
		case msg := <-in:
			s.handle(ctx, msg)
		}
	}
}

func (s *session) handle(ctx context.Context, msg ClientMessage) {
	switch msg.Type {
	case TypePing:
		s.send(ctx, ServerMessage{Type: TypePong, RequestID: msg.ID})
		return
	case TypeSubmit:
		v := s.form.Submit()
		s.send(ctx, ServerMessage{Type: TypeSubmitted, RequestID: msg.ID, Data: SubmittedData{Value: Sanitize(v)}})
		return
	}

	var data ActionData
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			s.sendError(ctx, msg.ID, CodeInvalidData, "invalid action data")
			return
		}
	}
	if err := Apply(s.form, msg.Type, data); err != nil {
		code := CodeActionFailed
		var ae *ActionError
		if errors.As(err, &ae) {
			code = ae.Code
		}
		s.sendError(ctx, msg.ID, code, err.Error())
		return
	}
	s.sendView(ctx, msg.ID)
}

func (s *session) read(ctx context.Context) (ClientMessage, error) {
	var msg ClientMessage
	_, b, err := s.conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(b, &msg); err != nil {
		// keep the session; an empty type is answered as unknown
		return ClientMessage{}, nil
	}
	return msg, nil
}

func (s *session) sendView(ctx context.Context, requestID string) {
	s.send(ctx, ServerMessage{
		Type:      TypeView,
		RequestID: requestID,
		Data: ViewData{
			Root:    skemaform.Describe(s.form.Root()),
			Value:   Sanitize(s.form.Value()),
			Pending: s.form.Pending(),
		},
	})
}

func (s *session) send(ctx context.Context, msg ServerMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("encode message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	if err := s.conn.Write(ctx, websocket.MessageText, b); err != nil {
		s.log.Debug("write error", zap.Error(err))
	}
}

func (s *session) sendError(ctx context.Context, requestID, code, message string) {
	s.send(ctx, ServerMessage{
		Type:      TypeError,
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}

// Sanitize copies v replacing NaN and infinities, which JSON cannot carry,
// with nil.
func Sanitize(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Sanitize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Sanitize(e)
		}
		return out
	}
	return v
}
