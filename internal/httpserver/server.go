// internal/httpserver/server.go
//
// HTTP server wiring for the Letter Boxed validator.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/board".
//   - One-shot validation: POST /validate.
//   - Interactive sessions: POST /session/new, /session/word, /session/finish.
//
// Notes:
//   - The board and dictionary are loaded once and only read afterwards;
//     every request or session owns its own game.Session.
//   - Verdict fields mirror game.Verdict; "message" is the same line the CLI prints.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterboxed/internal/board"
	"github.com/robalobadob/letterboxed/internal/game"
	"github.com/robalobadob/letterboxed/internal/store"
	"github.com/robalobadob/letterboxed/internal/words"
)

// maxBody bounds request bodies; word lists are small.
const maxBody = 1 << 20

// Server bundles router, session store and the puzzle inputs.
type Server struct {
	r     *chi.Mux
	store store.Store
	board *board.Board
	dict  *words.Dictionary
}

// New constructs a Server, installs middleware, and registers routes.
// origin is the single CORS origin allowed to call the API with credentials.
func New(b *board.Board, d *words.Dictionary, st store.Store, origin string) *Server {
	s := &Server{r: chi.NewRouter(), store: st, board: b, dict: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(origin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"letterboxed","endpoints":["/health","/board","POST /validate","POST /session/new","POST /session/word","POST /session/finish"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/board", s.handleBoard)

	s.r.Post("/validate", s.handleValidate)
	s.r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNewSession)
		r.Post("/word", s.handleWord)
		r.Post("/finish", s.handleFinish)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// ServeHTTP makes Server an http.Handler (useful for tests).
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ payloads -----------------------------------

type boardRes struct {
	Sides   []string `json:"sides"`
	Letters string   `json:"letters"`
}

type validateReq struct {
	Words []string `json:"words"`
}

type sessionRes struct {
	SessionID string `json:"sessionId"`
}

type wordReq struct {
	SessionID string `json:"sessionId"`
	Word      string `json:"word"`
}

type finishReq struct {
	SessionID string `json:"sessionId"`
}

// verdictRes reports a decided verdict, or progress while a session is open.
// Verdict is "correct" or "incorrect" once decided and absent before that.
type verdictRes struct {
	Verdict string      `json:"verdict,omitempty"`
	State   game.State  `json:"state"`
	Reason  game.Reason `json:"reason,omitempty"`
	Message string      `json:"message,omitempty"`
	Word    string      `json:"word,omitempty"`
	Index   int         `json:"index"`
	Used    string      `json:"used"`
	Missing string      `json:"missing"`
}

func fromVerdict(v game.Verdict) verdictRes {
	verdict := "incorrect"
	if v.Succeeded() {
		verdict = "correct"
	}
	return verdictRes{
		Verdict: verdict,
		State:   v.State,
		Reason:  v.Reason,
		Message: v.Message(),
		Word:    v.Word,
		Index:   v.Index,
		Used:    v.Used.String(),
		Missing: v.Missing.String(),
	}
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, boardRes{Sides: s.board.Sides(), Letters: s.board.Letters().String()})
}

// handleValidate runs a whole chain in one request.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if !decode(w, r, &req) {
		return
	}
	v := game.Check(s.board, s.dict, req.Words)
	log.Info().Int("words", len(req.Words)).Str("state", string(v.State)).Str("reason", string(v.Reason)).Msg("validate")
	writeJSON(w, http.StatusOK, fromVerdict(v))
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := game.New(s.board, s.dict)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, sessionRes{SessionID: sess.ID})
}

// handleWord feeds one word to an open session. A session that reaches a
// verdict is dropped from the store.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if !decode(w, r, &req) {
		return
	}
	sess, ok := s.lookup(w, r, req.SessionID)
	if !ok {
		return
	}
	state, err := sess.Feed(req.Word)
	if errors.Is(err, game.ErrFinished) {
		writeError(w, http.StatusConflict, "session_finished")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("feed word")
		writeError(w, http.StatusInternalServerError, "feed_failed")
		return
	}
	if state.Terminal() {
		v, _ := sess.Verdict()
		if err := s.store.Delete(r.Context(), sess.ID); err != nil {
			log.Warn().Err(err).Str("session", sess.ID).Msg("delete session")
		}
		writeJSON(w, http.StatusOK, fromVerdict(v))
		return
	}
	used := sess.Used()
	writeJSON(w, http.StatusOK, verdictRes{
		State:   state,
		Index:   -1,
		Used:    used.String(),
		Missing: s.board.Letters().Minus(used).String(),
	})
}

// handleFinish ends the word stream and drops the session from the store.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var req finishReq
	if !decode(w, r, &req) {
		return
	}
	sess, ok := s.lookup(w, r, req.SessionID)
	if !ok {
		return
	}
	v := sess.Finish()
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("delete session")
	}
	writeJSON(w, http.StatusOK, fromVerdict(v))
}

// ------------------------------- helpers -----------------------------------

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	sess, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("get session")
		writeError(w, http.StatusInternalServerError, "lookup_failed")
		return nil, false
	}
	return sess, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
