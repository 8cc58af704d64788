package session

import (
	"sync"

	"bookfind/pkg/domain"
)

const (
	keyToken    = "token"
	keyIdentity = "username"
)

// Store owns the current session. It reads the backing store once and
// memoizes for the process lifetime; Save and Clear write through.
type Store struct {
	kv        KVStore
	validator *Validator

	mu     sync.Mutex
	loaded bool
	cur    domain.Session
}

// NewStore builds a session store over the given backing store.
func NewStore(kv KVStore, validator *Validator) *Store {
	if validator == nil {
		validator = NewValidator()
	}
	return &Store{kv: kv, validator: validator}
}

// Load returns the current session, reading the backing store on first call.
func (s *Store) Load() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (domain.Session, error) {
	if s.loaded {
		return s.cur, nil
	}
	token, _, err := s.kv.Get(keyToken)
	if err != nil {
		return domain.Session{}, err
	}
	identity, _, err := s.kv.Get(keyIdentity)
	if err != nil {
		return domain.Session{}, err
	}
	s.cur = domain.Session{Token: token, IdentityLabel: identity}
	s.loaded = true
	return s.cur, nil
}

// Save records a new token and identity label in memory and in the
// backing store.
func (s *Store) Save(token, identityLabel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(keyToken, token); err != nil {
		return err
	}
	if err := s.kv.Set(keyIdentity, identityLabel); err != nil {
		return err
	}
	s.cur = domain.Session{Token: token, IdentityLabel: identityLabel}
	s.loaded = true
	return nil
}

// Clear removes the session from memory and the backing store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	if err := s.kv.Delete(keyToken); err != nil {
		return err
	}
	if err := s.kv.Delete(keyIdentity); err != nil {
		return err
	}
	s.cur = domain.Session{}
	s.loaded = true
	return nil
}

// IsUsable reports whether the current token passes local validation.
// A present-but-invalid token is cleared before returning false, so stale
// state never survives the check.
func (s *Store) IsUsable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadLocked()
	if err != nil {
		return false
	}
	if !sess.Present() {
		return false
	}
	if v := s.validator.Validate(sess.Token); !v.Usable {
		_ = s.clearLocked()
		return false
	}
	return true
}
