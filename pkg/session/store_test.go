package session

import (
	"errors"
	"testing"
	"time"
)

// countingKV wraps MemoryKV and counts reads, to assert load memoization.
type countingKV struct {
	*MemoryKV
	gets int
}

func (c *countingKV) Get(key string) (string, bool, error) {
	c.gets++
	return c.MemoryKV.Get(key)
}

func TestStoreLoadReadsBackingStoreOnce(t *testing.T) {
	kv := &countingKV{MemoryKV: NewMemoryKV()}
	if err := kv.Set("token", "a.b.c"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	if err := kv.Set("username", "alice"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	s := NewStore(kv, NewValidator())

	sess, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Token != "a.b.c" || sess.IdentityLabel != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	firstReads := kv.gets
	if _, err := s.Load(); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if kv.gets != firstReads {
		t.Fatalf("second load hit the backing store: %d -> %d reads", firstReads, kv.gets)
	}
}

func TestStoreSaveWritesThrough(t *testing.T) {
	kv := NewMemoryKV()
	s := NewStore(kv, NewValidator())

	if err := s.Save("h.p.s", "bob"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if v, ok, _ := kv.Get("token"); !ok || v != "h.p.s" {
		t.Fatalf("token not persisted: %q ok=%v", v, ok)
	}
	if v, ok, _ := kv.Get("username"); !ok || v != "bob" {
		t.Fatalf("username not persisted: %q ok=%v", v, ok)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := kv.Get("token"); ok {
		t.Fatalf("token survived clear")
	}
	if sess, _ := s.Load(); sess.Present() {
		t.Fatalf("in-memory session survived clear: %+v", sess)
	}
}

func TestIsUsableWithFutureExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	token := tokenWithClaims(t, map[string]any{"exp": now.Add(time.Hour).Unix()})
	kv := NewMemoryKV()
	s := NewStore(kv, NewValidatorWithClock(fixedClock(now)))
	if err := s.Save(token, "alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !s.IsUsable() {
		t.Fatalf("expected usable session")
	}
}

func TestIsUsableSelfHealsInvalidToken(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set("token", "not-a-token"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	if err := kv.Set("username", "alice"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	s := NewStore(kv, NewValidator())

	if s.IsUsable() {
		t.Fatalf("malformed token reported usable")
	}
	// Self-healing: the invalid token is gone from memory and backing store.
	if _, ok, _ := kv.Get("token"); ok {
		t.Fatalf("invalid token not cleared from backing store")
	}
	if sess, _ := s.Load(); sess.Present() {
		t.Fatalf("invalid token still in memory: %+v", sess)
	}
}

func TestIsUsableExpiredTokenClears(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	token := tokenWithClaims(t, map[string]any{"exp": now.Add(-time.Minute).Unix()})
	kv := NewMemoryKV()
	s := NewStore(kv, NewValidatorWithClock(fixedClock(now)))
	if err := s.Save(token, "alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.IsUsable() {
		t.Fatalf("expired token reported usable")
	}
	if _, ok, _ := kv.Get("token"); ok {
		t.Fatalf("expired token not cleared")
	}
}

func TestIsUsableWithoutToken(t *testing.T) {
	s := NewStore(NewMemoryKV(), NewValidator())
	if s.IsUsable() {
		t.Fatalf("empty session reported usable")
	}
}

// failingKV always errors, to assert IsUsable degrades without panicking.
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("kv down") }
func (failingKV) Set(string, string) error         { return errors.New("kv down") }
func (failingKV) Delete(string) error              { return errors.New("kv down") }

func TestIsUsableWithUnreadableBackingStore(t *testing.T) {
	s := NewStore(failingKV{}, NewValidator())
	if s.IsUsable() {
		t.Fatalf("unreadable backing store reported usable")
	}
}
