package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"tester-quiz-service/internal/app"
	"tester-quiz-service/internal/domain"
)

// SessionHandler walks one websocket client through one test: question out,
// answer ids in, finished result persisted at the end. The handler plays the
// host-layer role: it owns the TestProgress value between engine calls and
// keeps it in the progress store so a dropped connection can resume.
type SessionHandler struct {
	engine   *app.SessionEngine
	progress app.ProgressStore
	results  *app.ResultService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewSessionHandler(engine *app.SessionEngine, progress app.ProgressStore, results *app.ResultService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		engine:   engine,
		progress: progress,
		results:  results,
		log:      log,
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
	AnswerIDs []uuid.UUID `json:"answerIds"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// answerView deliberately omits the correct flag.
type answerView struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type questionView struct {
	ID             uuid.UUID    `json:"id"`
	QuestionNumber int          `json:"questionNumber"`
	Text           string       `json:"text"`
	Answers        []answerView `json:"answers"`
	Deadline       time.Time    `json:"deadline"`
}

type finishedView struct {
	ResultID      uuid.UUID `json:"resultId"`
	Score         int       `json:"score"`
	QuestionCount int       `json:"questionCount"`
}

// ServeWS upgrades the request and runs the session loop. Required query
// params: testId, userId. An optional token resumes a stored session.
func (h *SessionHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	testID, err := uuid.Parse(r.URL.Query().Get("testId"))
	if err != nil {
		http.Error(w, "missing or invalid testId", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		http.Error(w, "missing or invalid userId", http.StatusBadRequest)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		token = userID.String() + ":" + testID.String()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	var (
		progress domain.TestProgress
		deadline time.Time
		started  bool
	)

	// Resume a stored session if one is still alive.
	if stored, storedDeadline, ok, err := h.progress.Load(ctx, token); err != nil {
		h.log.Error().Err(err).Msg("progress load failed")
	} else if ok && !h.engine.IsExpired(storedDeadline) {
		progress, deadline, started = stored, storedDeadline, true
		h.send(conn, "question", h.questionView(progress.CurrentQuestion, deadline))
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			if started {
				h.sendError(conn, "session already started")
				continue
			}
			progress, deadline, err = h.engine.Start(testID, userID)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			if err := h.progress.Save(ctx, token, progress, deadline); err != nil {
				h.log.Error().Err(err).Msg("progress save failed")
				h.sendError(conn, "could not persist session")
				continue
			}
			started = true
			h.send(conn, "question", h.questionView(progress.CurrentQuestion, deadline))

		case "answer":
			if !started {
				h.sendError(conn, "session not started")
				continue
			}
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid answer payload")
				continue
			}
			if h.engine.IsExpired(deadline) {
				_ = h.progress.Delete(ctx, token)
				h.send(conn, "expired", errorPayload{Message: domain.ErrSessionExpired.Error()})
				return
			}

			next, err := h.engine.Advance(progress, payload.AnswerIDs)
			if err != nil {
				h.sendError(conn, err.Error())
				if errors.Is(err, domain.ErrTestNotFound) {
					return
				}
				continue
			}
			progress = next

			if progress.Finished {
				if err := h.results.Save(progress.Result); err != nil {
					h.log.Error().Err(err).Msg("result save failed")
					h.sendError(conn, "could not persist result")
					return
				}
				_ = h.progress.Delete(ctx, token)
				h.send(conn, "finished", finishedView{
					ResultID:      progress.Result.ID,
					Score:         *progress.Result.Score,
					QuestionCount: len(progress.Result.AnsweredQuestions),
				})
				return
			}

			if err := h.progress.Save(ctx, token, progress, deadline); err != nil {
				h.log.Error().Err(err).Msg("progress save failed")
			}
			h.send(conn, "question", h.questionView(progress.CurrentQuestion, deadline))

		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *SessionHandler) questionView(q domain.Question, deadline time.Time) questionView {
	answers := make([]answerView, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, answerView{ID: a.ID, Text: a.Text})
	}
	return questionView{
		ID:             q.ID,
		QuestionNumber: q.QuestionNumber,
		Text:           q.Text,
		Answers:        answers,
		Deadline:       deadline,
	}
}

func (h *SessionHandler) send(conn *websocket.Conn, typ string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
		h.log.Error().Err(err).Msg("ws write error")
	}
}

func (h *SessionHandler) sendError(conn *websocket.Conn, msg string) {
	h.send(conn, "error", errorPayload{Message: msg})
}
