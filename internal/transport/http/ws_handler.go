package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"docquiz-service/internal/domain"
	"docquiz-service/internal/export"
	"docquiz-service/internal/session"
	"github.com/gorilla/websocket"
)

// SessionStore resolves the controller for a session ID, creating it on
// first contact so a client can resume after reconnecting.
type SessionStore interface {
	GetOrCreate(id string) *session.Controller
}

// ExportArchiver persists exported snapshots out-of-band. Optional.
type ExportArchiver interface {
	Save(ctx context.Context, sessionID string, payload []byte) error
}

type WSHandler struct {
	sessions SessionStore
	archive  ExportArchiver
	upgrader websocket.Upgrader
}

func NewWSHandler(sessions SessionStore, archive ExportArchiver) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		archive:  archive,
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

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type filesPayload struct {
	Files []struct {
		Name    string `json:"name"`
		Content string `json:"content"` // base64
	} `json:"files"`
}

type generatePayload struct {
	QuestionCount       int      `json:"questionCount"`
	Difficulty          string   `json:"difficulty"`
	QuestionTypes       []string `json:"questionTypes"`
	IncludeExplanations bool     `json:"includeExplanations"`
}

type answerPayload struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type navigatePayload struct {
	Delta   int    `json:"delta"`
	Pending string `json:"pending"`
}

type exportPayload struct {
	Format string `json:"format"`
}

type phaseView struct {
	Phase   domain.Phase `json:"phase"`
	Message string       `json:"message,omitempty"`
}

type questionView struct {
	Number        int         `json:"number"`
	Total         int         `json:"total"`
	Kind          domain.Kind `json:"type"`
	Prompt        string      `json:"question"`
	Options       []string    `json:"options,omitempty"`
	Explanation   string      `json:"explanation,omitempty"`
	Answer        string      `json:"answer,omitempty"`
	CanGoPrevious bool        `json:"canGoPrevious"`
	CanGoNext     bool        `json:"canGoNext"`
}

type exportedView struct {
	Filename string `json:"filename"`
	Payload  string `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into a quiz
// session. One connection drives one session; generation runs on its own
// goroutine so navigation queries stay responsive.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctrl := h.sessions.GetOrCreate(sessionID)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
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

	trySend := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-closeSignals:
		}
	}

	trySend(outboundMessage[any]{Type: "phase", Payload: phaseView{Phase: ctrl.Phase()}})

	var pending sync.WaitGroup
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r.Context(), ctrl, sessionID, inbound, trySend, &pending)
	}

	close(closeSignals)
	// wait out any in-flight generation goroutine before closing send
	pending.Wait()
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, ctrl *session.Controller, sessionID string, inbound inboundMessage, trySend func(outboundMessage[any]), pending *sync.WaitGroup) {
	sendErr := func(message string) {
		trySend(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}})
	}

	switch inbound.Type {
	case "submitFiles":
		var payload filesPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			sendErr("invalid submitFiles payload")
			return
		}
		files := make([]domain.SourceFile, 0, len(payload.Files))
		for _, f := range payload.Files {
			content, err := base64.StdEncoding.DecodeString(f.Content)
			if err != nil {
				sendErr("invalid base64 content for file " + f.Name)
				return
			}
			files = append(files, domain.SourceFile{Name: f.Name, Content: content})
		}
		if err := ctrl.SubmitFiles(files); err != nil {
			sendErr(err.Error())
			return
		}
		trySend(outboundMessage[any]{Type: "phase", Payload: phaseView{Phase: ctrl.Phase()}})

	case "generate":
		var payload generatePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			sendErr("invalid generate payload")
			return
		}
		opts := domain.DefaultGenerationOptions()
		if payload.QuestionCount > 0 {
			opts.QuestionCount = payload.QuestionCount
		}
		if payload.Difficulty != "" {
			opts.Difficulty = payload.Difficulty
		}
		if len(payload.QuestionTypes) > 0 {
			kinds := make([]domain.Kind, 0, len(payload.QuestionTypes))
			for _, raw := range payload.QuestionTypes {
				kind, ok := domain.ParseKind(raw)
				if !ok {
					sendErr("invalid question type: " + raw)
					return
				}
				kinds = append(kinds, kind)
			}
			opts.Kinds = kinds
		}
		opts.IncludeExplanations = payload.IncludeExplanations

		// announce before the goroutine starts so phase messages stay ordered
		trySend(outboundMessage[any]{Type: "phase", Payload: phaseView{Phase: domain.PhaseGenerating}})
		pending.Add(1)
		go func() {
			defer pending.Done()
			if err := ctrl.RequestGeneration(ctx, opts); err != nil {
				sendErr(err.Error())
				trySend(outboundMessage[any]{Type: "phase", Payload: phaseView{Phase: ctrl.Phase(), Message: ctrl.LastError()}})
				return
			}
			trySend(outboundMessage[any]{Type: "phase", Payload: phaseView{Phase: ctrl.Phase()}})
			trySend(outboundMessage[any]{Type: "question", Payload: currentView(ctrl)})
		}()

	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			sendErr("invalid answer payload")
			return
		}
		if err := ctrl.RecordAnswer(payload.Index, payload.Value); err != nil {
			sendErr(err.Error())
			return
		}
		trySend(outboundMessage[any]{Type: "question", Payload: currentView(ctrl)})

	case "navigate":
		var payload navigatePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			sendErr("invalid navigate payload")
			return
		}
		if err := ctrl.Advance(payload.Delta, payload.Pending); err != nil {
			sendErr(err.Error())
			return
		}
		trySend(outboundMessage[any]{Type: "question", Payload: currentView(ctrl)})

	case "retake":
		if err := ctrl.Retake(); err != nil {
			sendErr(err.Error())
			return
		}
		trySend(outboundMessage[any]{Type: "phase", Payload: phaseView{Phase: ctrl.Phase()}})
		trySend(outboundMessage[any]{Type: "question", Payload: currentView(ctrl)})

	case "export":
		var payload exportPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr("invalid export payload")
				return
			}
		}
		format, err := export.ParseFormat(payload.Format)
		if err != nil {
			sendErr(err.Error())
			return
		}
		snap, err := ctrl.Export()
		if err != nil {
			sendErr(err.Error())
			return
		}
		data, err := export.Marshal(snap, format)
		if err != nil {
			sendErr(err.Error())
			return
		}
		if h.archive != nil && format == export.FormatJSON {
			if err := h.archive.Save(ctx, sessionID, data); err != nil {
				log.Printf("archive export for session %s: %v", sessionID, err)
			}
		}
		trySend(outboundMessage[any]{Type: "exported", Payload: exportedView{
			Filename: export.Filename("quiz", format, snap.GeneratedAt),
			Payload:  string(data),
		}})

	default:
		sendErr("unsupported message type")
	}
}

func currentView(ctrl *session.Controller) questionView {
	q, err := ctrl.CurrentQuestion()
	if err != nil {
		return questionView{}
	}
	view := questionView{
		Number:        ctrl.QuestionNumber(),
		Total:         ctrl.TotalQuestions(),
		Kind:          q.Kind,
		Prompt:        q.Prompt,
		Options:       q.Options,
		Explanation:   q.Explanation,
		CanGoPrevious: ctrl.CanGoPrevious(),
		CanGoNext:     ctrl.CanGoNext(),
	}
	if answer, ok := ctrl.RecordedAnswer(ctrl.QuestionNumber() - 1); ok {
		view.Answer = answer
	}
	return view
}
