package console

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns the console state for one staff device: the active table, the
// cached catalog, the current order, the pending discount inputs and the
// single-slot line editor. Nothing here is ambient; every operation receives
// the session it acts on.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	MesaID  string
	Menu    Menu
	Comanda Comanda

	// Raw discount inputs as entered; re-applied silently on every render and
	// only sent upstream at close-out time.
	DescontoValor string
	DescontoTipo  string

	// Quantidade is the picker quantity input; resets to 1 after a
	// successful add.
	Quantidade int

	// Editing holds at most one line under edit. Opening another line
	// replaces the slot.
	Editing *Line

	// loadGen tags outstanding loads so a late response for a table that is
	// no longer active gets discarded.
	loadGen uint64

	// addInFlight rejects duplicate add submissions while one is pending.
	addInFlight bool

	mu sync.Mutex
}

func NewSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		DescontoTipo: DiscountFixed,
		Quantidade:   1,
	}
}

// beginLoad marks a new wholesale load for mesaID and returns its generation.
// Callers must hold the session lock.
func (s *Session) beginLoad() uint64 {
	s.loadGen++
	return s.loadGen
}

// loadCurrent reports whether a completed load still applies: the generation
// must be the latest and the table must still be the active one.
func (s *Session) loadCurrent(gen uint64, mesaID string) bool {
	return s.loadGen == gen && s.MesaID == mesaID
}

// reset clears all order state after a successful close-out.
func (s *Session) reset() {
	s.MesaID = ""
	s.Comanda = Comanda{}
	s.DescontoValor = ""
	s.DescontoTipo = DiscountFixed
	s.Quantidade = 1
	s.Editing = nil
}

// SessionStore keeps live console sessions with a TTL sweep.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	go store.cleanup()

	return store
}

func (s *SessionStore) Create() *Session {
	session := NewSession(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return session
}

func (s *SessionStore) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, errors.New("session expired")
	}

	return session, nil
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

func (s *SessionStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for id, session := range s.sessions {
			if now.After(session.ExpiresAt) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
