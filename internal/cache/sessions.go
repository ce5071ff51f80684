package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// VerificationSession holds the OTP challenge issued for one counter
// interaction. Sessions have no expiry; the operator works through them
// immediately and a stale one is simply never verified.
type VerificationSession struct {
	Phone    string `json:"phone"`
	Serial   string `json:"serial"`
	Workflow string `json:"workflow"`
	OTP      string `json:"otp"`
	Verified bool   `json:"verified"`
}

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("verification session not found")

const sessionKeyPrefix = "otp:session:"

// SessionStore keeps verification sessions in Redis when available and
// falls back to process memory when it is not.
type SessionStore struct {
	mu       sync.Mutex
	fallback map[string]*VerificationSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{fallback: make(map[string]*VerificationSession)}
}

func (s *SessionStore) Put(ctx context.Context, id string, sess *VerificationSession) error {
	if client != nil {
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		return client.Set(ctx, sessionKeyPrefix+id, data, 0).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.fallback[id] = &copied
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*VerificationSession, error) {
	if client != nil {
		data, err := client.Get(ctx, sessionKeyPrefix+id).Bytes()
		if err != nil {
			return nil, ErrSessionNotFound
		}
		var sess VerificationSession
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, err
		}
		return &sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.fallback[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}
