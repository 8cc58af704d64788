package session

// KVStore is the persistent key-value substrate backing the session.
// Implementations must treat a missing key as (value "", ok false, nil error).
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
