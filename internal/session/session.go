package session

import (
	"context"
	"sync"
	"time"

	"diary/internal/pkg/diary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "diary_session"
	DefaultTTL = 2 * time.Hour
)

// State is what one browser session carries between page actions.
type State struct {
	DiaryText       string
	LastAnalysis    *diary.FreeTextAnalysis
	LastImagePrompt string
	LastImageURL    string
	SizeLabel       string

	GiftText     string
	Gift         *diary.Analysis
	GiftImageURL string

	Warning string
	Error   string
}

type entry struct {
	state    State
	lastSeen time.Time
}

// Store keeps session state in memory, keyed by the session cookie. Sessions
// idle for longer than the TTL are dropped.
type Store struct {
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{sessions: make(map[string]*entry), ttl: ttl}
}

// Load returns the state of the request's session. A request without a live
// session gets an empty id and a zero State; nothing is kept until Save.
func (s *Store) Load(c *gin.Context) (string, State) {
	id, err := c.Cookie(CookieName)
	if err != nil || uuid.Validate(id) != nil {
		return "", State{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return "", State{}
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return "", State{}
	}
	e.lastSeen = now
	return id, e.state
}

// Save replaces the state of session id. An empty id starts a new session and
// sets its cookie. The id in use is returned.
func (s *Store) Save(c *gin.Context, id string, st State) string {
	if id == "" {
		id = uuid.New().String()
		c.SetCookie(CookieName, id, 0, "/", "", false, true)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry{state: st, lastSeen: s.now()}
	return id
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len reports how many sessions are held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
