// Package server exposes the daily word game over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/game"
	"github.com/bodul/wordle/internal/storage"
	"github.com/bodul/wordle/internal/word"
)

const maxBodySize = 4 << 10 // 4 Kio

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*bucket
	rate      int           // tokens per interval
	interval  time.Duration // refill interval
	lastSweep time.Time
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors:  make(map[string]*bucket),
		rate:      rate,
		interval:  interval,
		lastSweep: time.Now(),
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	// Drop stale entries at most once a minute.
	if now.Sub(rl.lastSweep) > time.Minute {
		for k, b := range rl.visitors {
			if now.Sub(b.lastSeen) > 5*time.Minute {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: now}
		return true
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(b.lastSeen) / rl.interval)
	if refill > 0 {
		b.tokens += refill * rl.rate
		if b.tokens > rl.rate {
			b.tokens = rl.rate
		}
		b.lastSeen = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Server is the main HTTP server.
type Server struct {
	mux      *http.ServeMux
	game     *game.Service
	sse      *Broadcaster
	guessRL  *rateLimiter
	location *time.Location
	logger   *zap.Logger
}

// Options tunes a Server. Zero values pick defaults.
type Options struct {
	// GuessRate is the number of guesses allowed per second and per IP.
	GuessRate int
	// Location is the zone dates in requests are read in.
	Location *time.Location
	Logger   *zap.Logger
}

// New creates a configured HTTP server. The broadcaster should be the
// publisher the game service was built with.
func New(svc *game.Service, sse *Broadcaster, opts Options) *Server {
	if opts.GuessRate <= 0 {
		opts.GuessRate = 10
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if sse == nil {
		sse = NewBroadcaster(opts.Logger)
	}
	s := &Server{
		mux:      http.NewServeMux(),
		game:     svc,
		sse:      sse,
		guessRL:  newRateLimiter(opts.GuessRate, time.Second),
		location: opts.Location,
		logger:   opts.Logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Game API
	s.mux.HandleFunc("POST /api/guesses", s.handleGuess)
	s.mux.HandleFunc("GET /api/days", s.handleDay)
	s.mux.HandleFunc("GET /api/hint", s.handleHint)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)

	// Word list API
	s.mux.HandleFunc("GET /api/words", s.handleListWords)
	s.mux.HandleFunc("GET /api/words/{word}", s.handleCheckWord)
	s.mux.HandleFunc("POST /api/words", s.handleAddWord)
	s.mux.HandleFunc("DELETE /api/words/{word}", s.handleRemoveWord)

	// Answers API
	s.mux.HandleFunc("PUT /api/answers", s.handleSetAnswer)

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	s.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)),
	)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// --- Game handlers ---

// POST /api/guesses: classify a guess against the day's word.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	if !s.guessRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Guess string `json:"guess"`
		Date  string `json:"date"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	date, ok := s.parseDate(w, req.Date)
	if !ok {
		return
	}

	out, err := s.game.Guess(r.Context(), req.Guess, date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/days?date=: answer slot of a day.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.game.Day(date))
}

// GET /api/hint?date=: AI clue for the day's word.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	clue, err := s.game.Clue(r.Context(), date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clue": clue})
}

// GET /api/events?topic=: SSE stream of word list and answer changes.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	switch topic {
	case "", game.TopicAnswers, game.TopicWords:
	default:
		jsonError(w, "Sujet inconnu", http.StatusBadRequest)
		return
	}

	s.sse.ServeSSE(w, r, topic, func(c *client) {
		evt, _ := json.Marshal(map[string]any{
			"type": "connected",
			"day":  s.game.Day(nil),
		})
		c.ch <- string(evt)
	})
}

// --- Word list handlers ---

// GET /api/words?limit=: list words.
func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "Paramètre 'limit' invalide", http.StatusBadRequest)
			return
		}
		limit = n
	}
	words, err := s.game.ListWords(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if words == nil {
		words = []storage.Word{}
	}
	total, err := s.game.CountWords(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, words)
}

// GET /api/words/{word}: is the word an admissible guess?
func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	err := s.game.CheckWord(r.Context(), r.PathValue("word"))
	if errors.Is(err, game.ErrWordNotAllowed) {
		jsonError(w, "Mot absent de la liste", http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// POST /api/words: add a word to the list.
func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	added, err := s.game.AddWord(r.Context(), req.Word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"word": added})
}

// DELETE /api/words/{word}: remove a word from the list.
func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	removed, err := s.game.RemoveWord(r.Context(), r.PathValue("word"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"word": removed})
}

// --- Answer handlers ---

// PUT /api/answers: bind a word to a day.
func (s *Server) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
		Date string `json:"date"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	date, ok := s.parseDate(w, req.Date)
	if !ok {
		return
	}
	day, err := s.game.SetAnswer(r.Context(), req.Word, date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// --- Helpers ---

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return false
	}
	return true
}

// parseDate reads an optional date; an empty value means today (nil).
func (s *Server) parseDate(w http.ResponseWriter, value string) (*time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, true
	}
	d, err := daily.ParseDate(value, s.location)
	if err != nil {
		jsonError(w, "Date invalide : AAAA-MM-JJ ou MMJJAAAA", http.StatusBadRequest)
		return nil, false
	}
	return &d, true
}

// writeError maps domain and storage errors to HTTP responses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, word.ErrEmptyInput):
		jsonErrorKind(w, "Mot vide", "empty_input", http.StatusBadRequest)
	case errors.Is(err, word.ErrLengthMismatch):
		jsonErrorKind(w, "Longueur de mot invalide", "length_mismatch", http.StatusBadRequest)
	case errors.Is(err, game.ErrNoAnswerForDay):
		jsonErrorKind(w, "Aucun mot pour ce jour", "no_answer_for_day", http.StatusNotFound)
	case errors.Is(err, game.ErrWordNotAllowed):
		jsonErrorKind(w, "Mot absent de la liste", "word_not_allowed", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrNotFound):
		jsonErrorKind(w, "Mot introuvable", "not_found", http.StatusNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		jsonErrorKind(w, "Mot déjà présent", "conflict", http.StatusConflict)
	case errors.Is(err, game.ErrCluesDisabled):
		jsonErrorKind(w, "Indices non configurés", "clues_disabled", http.StatusServiceUnavailable)
	default:
		s.logger.Error("request failed", zap.Error(err))
		jsonError(w, "Erreur interne", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func jsonErrorKind(w http.ResponseWriter, msg, kind string, code int) {
	writeJSON(w, code, map[string]string{"error": msg, "kind": kind})
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i > 0 {
		host = host[:i]
	}
	return host
}
