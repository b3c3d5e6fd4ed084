package client

import "sync"

// Session holds the auth token shared by outgoing requests. Safe for
// concurrent use.
type Session struct {
	mu    sync.Mutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
