package domain

import "time"

// Session is the client's in-memory record of authentication state.
// Token and IdentityLabel are both empty when no user is signed in.
type Session struct {
	Token         string `json:"token"`
	IdentityLabel string `json:"identityLabel"`
}

// Present reports whether the session carries a token at all.
// It says nothing about whether the token is still usable.
func (s Session) Present() bool {
	return s.Token != ""
}

// Book mirrors the book record returned by the service.
type Book struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Author       string     `json:"author,omitempty"`
	FilePath     string     `json:"file_path,omitempty"`
	FileFormat   string     `json:"file_format,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
	IndexedAt    *time.Time `json:"indexed_at,omitempty"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

// SearchResultItem is the display-ready form of one search hit.
// Ordering within a result set is the service's relevance order.
type SearchResultItem struct {
	BookID     int     `json:"bookId"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Snippet    string  `json:"snippet"`
	FileFormat string  `json:"fileFormat,omitempty"`
	Relevance  float64 `json:"relevance,omitempty"`
}

// HistoryEntry is the eager summary row of a past search.
type HistoryEntry struct {
	ID          int       `json:"id"`
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"result_count"`
}

// HistoryDetail is the lazily fetched result set of one history entry.
type HistoryDetail struct {
	EntryID int                `json:"entryId"`
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
}
