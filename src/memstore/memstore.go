// Package memstore keeps per-thread conversation history and a capped SQL
// query cache in process memory. Each thread is fully isolated; state is
// created lazily on first access and removed only by an explicit Clear.
package memstore

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

// Role tags who produced a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// HistoryEntry is one executed SQL query retained for follow-ups,
// "show me the SQL" requests, and CSV export.
type HistoryEntry struct {
	ID        string               `json:"id"`
	SQL       string               `json:"sql"`
	Question  string               `json:"question"`
	Results   *sqlgate.QueryResult `json:"results,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// maxQueriesPerThread caps the SQL history per thread, oldest evicted first.
const maxQueriesPerThread = 10

// Config holds the memory budget knobs.
type Config struct {
	// MaxMessages is the hard cap on stored messages per thread.
	MaxMessages int
	// MaxTokens is the approximate conversation budget (4 chars per token).
	MaxTokens int
	// CompressionTriggerRatio of MaxTokens at which compression kicks in.
	CompressionTriggerRatio float64
	// KeepRecent messages survive compression verbatim.
	KeepRecent int
}

// DefaultConfig returns the stock memory budget.
func DefaultConfig() Config {
	return Config{
		MaxMessages:             10,
		MaxTokens:               4000,
		CompressionTriggerRatio: 0.8,
		KeepRecent:              5,
	}
}

type threadState struct {
	messages []Message
	queries  []HistoryEntry
}

// Store is the thread-keyed memory. A single mutex guards the thread map
// and the trim/compress rebuilds so concurrent events for the same thread
// cannot corrupt a log.
type Store struct {
	mu      sync.Mutex
	cfg     Config
	threads map[string]*threadState
	logger  *slog.Logger
}

// New creates a memory store with the given budget.
func New(cfg Config, logger *slog.Logger) *Store {
	if cfg.MaxMessages <= 0 {
		cfg = DefaultConfig()
	}
	return &Store{
		cfg:     cfg,
		threads: make(map[string]*threadState),
		logger:  logger,
	}
}

func (s *Store) thread(threadTS string) *threadState {
	ts, ok := s.threads[threadTS]
	if !ok {
		ts = &threadState{}
		s.threads[threadTS] = ts
		s.logger.Debug("created memory for thread", "thread", threadTS)
	}
	return ts
}

// AddMessage appends a message to the thread log and applies the trim
// policy.
func (s *Store) AddMessage(threadTS string, role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.thread(threadTS)
	ts.messages = append(ts.messages, Message{Role: role, Content: content})
	s.trim(threadTS, ts)
}

// Messages returns a copy of the thread's message log in order.
func (s *Store) Messages(threadTS string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.threads[threadTS]
	if !ok {
		return nil
	}
	out := make([]Message, len(ts.messages))
	copy(out, ts.messages)
	return out
}

// Clear drops all state for the thread.
func (s *Store) Clear(threadTS string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.threads[threadTS]; ok {
		delete(s.threads, threadTS)
		s.logger.Debug("cleared memory for thread", "thread", threadTS)
	}
}

// trim enforces the message cap, then the token budget. Called with the
// store lock held.
func (s *Store) trim(threadTS string, ts *threadState) {
	if len(ts.messages) > s.cfg.MaxMessages {
		kept := ts.messages[len(ts.messages)-s.cfg.MaxMessages:]
		ts.messages = append([]Message(nil), kept...)
		s.logger.Debug("trimmed thread messages", "thread", threadTS, "kept", len(ts.messages))
		return
	}

	tokens := estimateTokens(ts.messages)
	trigger := int(float64(s.cfg.MaxTokens) * s.cfg.CompressionTriggerRatio)
	if tokens > trigger {
		before := len(ts.messages)
		ts.messages = compress(ts.messages, s.cfg.KeepRecent)
		s.logger.Info("compressed conversation history",
			"thread", threadTS, "tokens", tokens, "messages_before", before, "messages_after", len(ts.messages))
	}
}

// estimateTokens approximates the conversation cost at 4 characters per
// token.
func estimateTokens(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += len(m.Content) / 4
	}
	return total
}

// compress keeps the most recent messages verbatim and folds older
// consecutive user/assistant pairs into single summary messages. Older
// messages that do not form a clean pair are dropped.
func compress(messages []Message, keepRecent int) []Message {
	if len(messages) <= keepRecent {
		return messages
	}

	recent := messages[len(messages)-keepRecent:]
	old := messages[:len(messages)-keepRecent]

	var summaries []Message
	for i := 0; i+1 < len(old); i += 2 {
		user, assistant := old[i], old[i+1]
		if user.Role != RoleUser || assistant.Role != RoleAssistant {
			continue
		}
		summaries = append(summaries, Message{
			Role:    RoleUser,
			Content: "User asked: " + preview(user.Content) + ". Response: " + preview(assistant.Content),
		})
	}

	rebuilt := make([]Message, 0, len(summaries)+len(recent))
	rebuilt = append(rebuilt, summaries...)
	rebuilt = append(rebuilt, recent...)
	return rebuilt
}

const previewLen = 100

func preview(content string) string {
	if len(content) > previewLen {
		return content[:previewLen] + "..."
	}
	return content
}

// RecordQuery appends an executed query to the thread's SQL history,
// evicting the oldest entry past the cap.
func (s *Store) RecordQuery(threadTS, sql, question string, results *sqlgate.QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.thread(threadTS)
	ts.queries = append(ts.queries, HistoryEntry{
		ID:        uuid.New().String(),
		SQL:       sql,
		Question:  question,
		Results:   results,
		CreatedAt: time.Now(),
	})
	if len(ts.queries) > maxQueriesPerThread {
		kept := ts.queries[len(ts.queries)-maxQueriesPerThread:]
		ts.queries = append([]HistoryEntry(nil), kept...)
	}
	s.logger.Debug("stored SQL query for thread", "thread", threadTS)
}

// Queries returns a copy of the thread's SQL history, oldest first.
func (s *Store) Queries(threadTS string) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.threads[threadTS]
	if !ok {
		return nil
	}
	out := make([]HistoryEntry, len(ts.queries))
	copy(out, ts.queries)
	return out
}

// LastQuery returns the most recent SQL history entry, or nil.
func (s *Store) LastQuery(threadTS string) *HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.threads[threadTS]
	if !ok || len(ts.queries) == 0 {
		return nil
	}
	entry := ts.queries[len(ts.queries)-1]
	return &entry
}

// LastResults returns the result set of the most recent query, or nil.
func (s *Store) LastResults(threadTS string) *sqlgate.QueryResult {
	if entry := s.LastQuery(threadTS); entry != nil {
		return entry.Results
	}
	return nil
}

// FindQuery scans the thread's history newest-first for an entry whose
// stored question contains the description, or shares any description
// word longer than three characters with it. With no description or no
// match it falls back to the most recent entry.
func (s *Store) FindQuery(threadTS, description string) *HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.threads[threadTS]
	if !ok || len(ts.queries) == 0 {
		return nil
	}

	if description != "" {
		wanted := strings.ToLower(description)
		for i := len(ts.queries) - 1; i >= 0; i-- {
			question := strings.ToLower(ts.queries[i].Question)
			if strings.Contains(question, wanted) || sharesLongWord(question, wanted) {
				entry := ts.queries[i]
				return &entry
			}
		}
	}

	entry := ts.queries[len(ts.queries)-1]
	return &entry
}
