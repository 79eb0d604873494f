package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/controller"
)

// ControllerFactory builds the controller owned by a new session.
type ControllerFactory func() *controller.Controller

// Session binds one browser to its form controller.
type Session struct {
	ID         string
	CSRF       string
	Controller *controller.Controller

	mu    sync.Mutex
	name  string
	flash string
}

// SetName records the display name given at login.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// Name returns the display name given at login.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetFlash stores a notice for the next page render.
func (s *Session) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// TakeFlash returns and clears the pending notice.
func (s *Session) TakeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

// SessionStore keeps sessions in memory, keyed by the cookie value.
type SessionStore struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	newController ControllerFactory
}

// NewSessionStore returns an empty store that builds controllers with factory.
func NewSessionStore(factory ControllerFactory) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*Session),
		newController: factory,
	}
}

// Create registers a fresh session with random id and CSRF token.
func (s *SessionStore) Create() (*Session, error) {
	if s.newController == nil {
		return nil, ErrNoControllerFactory
	}
	id, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("server: session id: %w", err)
	}
	csrf, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("server: csrf token: %w", err)
	}

	session := &Session{ID: id, CSRF: csrf, Controller: s.newController()}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	return session, nil
}

// Get looks up a session by id.
func (s *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete resets the session's controller and forgets it.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		session.Controller.Reset()
	}
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func randomToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
