package store

import (
	"context"
	"time"
)

const sessionPrefix = "session/"

type sessionRecord struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

// Sessions adapts a Store to the scs session store contract so that the
// profile bound to a browser survives process restarts.
type Sessions struct {
	store Store
	now   func() time.Time
}

// NewSessions returns a session store persisting into s.
func NewSessions(s Store) *Sessions {
	if s == nil {
		s = Unavailable{}
	}
	return &Sessions{store: s, now: time.Now}
}

// Find returns the session data for token. Expired sessions are reported as missing.
func (s *Sessions) Find(token string) ([]byte, bool, error) {
	var record sessionRecord
	ok, err := s.store.Load(context.Background(), sessionPrefix+token, &record)
	if err != nil || !ok {
		return nil, false, err
	}
	if !s.now().Before(record.Expiry) {
		return nil, false, nil
	}
	return record.Data, true, nil
}

// Commit stores data for token until expiry.
func (s *Sessions) Commit(token string, data []byte, expiry time.Time) error {
	return s.store.Save(context.Background(), sessionPrefix+token, sessionRecord{Data: data, Expiry: expiry})
}

// Delete removes the session for token.
func (s *Sessions) Delete(token string) error {
	return s.store.Remove(context.Background(), sessionPrefix+token)
}
