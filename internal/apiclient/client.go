package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookfind/internal/util"
	"bookfind/pkg/domain"
	"bookfind/pkg/session"
)

const defaultTimeout = 10 * time.Second

// Client calls the e-book search service over HTTP. Authenticated calls
// fail fast without a network round trip when no usable session exists,
// and every failure is classified into an APIError kind. A 401 response
// is the single condition that clears the session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	clientID   string
}

// Config configures a Client.
type Config struct {
	BaseURL  string
	Sessions *session.Store
	// ClientID tags requests with X-Client-ID for server-side correlation.
	ClientID string
	Timeout  time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// New constructs a search service client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		sessions:   cfg.Sessions,
		clientID:   cfg.ClientID,
	}
}

// RawResult is one search hit as the service returns it, before display
// transformation.
type RawResult struct {
	Book      domain.Book `json:"book"`
	Relevance float64     `json:"relevance"`
	Context   string      `json:"context"`
}

type searchResponse struct {
	Query   string      `json:"query"`
	Results []RawResult `json:"results"`
	Count   int         `json:"count"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// Login exchanges credentials for a bearer token and stores the resulting
// session.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &resp, false); err != nil {
		return domain.Session{}, err
	}
	return c.saveSession(resp)
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, username, email, password string) (domain.Session, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", payload, &resp, false); err != nil {
		return domain.Session{}, err
	}
	return c.saveSession(resp)
}

func (c *Client) saveSession(resp authResponse) (domain.Session, error) {
	if strings.TrimSpace(resp.AccessToken) == "" {
		return domain.Session{}, &APIError{Kind: KindServer, Message: "auth response carried no access token"}
	}
	label := resp.User.Username
	if err := c.sessions.Save(resp.AccessToken, label); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: resp.AccessToken, IdentityLabel: label}, nil
}

// Logout tells the service goodbye best-effort and always clears the local
// session.
func (c *Client) Logout(ctx context.Context) error {
	_ = c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
	return c.sessions.Clear()
}

// Search submits a query and returns the raw result records in the
// service's relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]RawResult, error) {
	payload := map[string]string{"query": query}
	var resp searchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/search", payload, &resp, true); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

type historyListResponse struct {
	Searches []historyEntryWire `json:"searches"`
	Count    int                `json:"count"`
}

type historyEntryWire struct {
	ID          int    `json:"id"`
	Query       string `json:"query"`
	Timestamp   string `json:"timestamp"`
	ResultCount int    `json:"result_count"`
}

type historyDetailResponse struct {
	SearchID int         `json:"search_id"`
	Query    string      `json:"query"`
	Results  []RawResult `json:"results"`
	Count    int         `json:"count"`
}

// SearchHistory lists all recorded searches, newest first.
func (c *Client) SearchHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	var resp historyListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/search/history", nil, &resp, true); err != nil {
		return nil, err
	}
	entries := make([]domain.HistoryEntry, 0, len(resp.Searches))
	for _, item := range resp.Searches {
		entries = append(entries, domain.HistoryEntry{
			ID:          item.ID,
			Query:       item.Query,
			Timestamp:   parseTimestamp(item.Timestamp),
			ResultCount: item.ResultCount,
		})
	}
	return entries, nil
}

// SearchHistoryDetail fetches the stored result set of one past search.
func (c *Client) SearchHistoryDetail(ctx context.Context, id int) (string, []RawResult, error) {
	path := fmt.Sprintf("/search/history/%d", id)
	var resp historyDetailResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return "", nil, err
	}
	return resp.Query, resp.Results, nil
}

// DeleteSearchHistory removes one history entry on the server.
func (c *Client) DeleteSearchHistory(ctx context.Context, id int) error {
	path := fmt.Sprintf("/search/history/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

type scanResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// ScanLibrary asks the service to re-index its library and returns the
// number of books indexed.
func (c *Client) ScanLibrary(ctx context.Context) (int, error) {
	var resp scanResponse
	if err := c.doJSON(ctx, http.MethodPost, "/books/scan", struct{}{}, &resp, true); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

type bookResponse struct {
	Book domain.Book `json:"book"`
}

// GetBook fetches one book record.
func (c *Client) GetBook(ctx context.Context, id int) (domain.Book, error) {
	path := fmt.Sprintf("/books/%d", id)
	var resp bookResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return domain.Book{}, err
	}
	return resp.Book, nil
}

// DownloadBook streams the book file into w and returns the bytes copied.
func (c *Client) DownloadBook(ctx context.Context, id int, w io.Writer) (int64, error) {
	token, err := c.tokenForRequest()
	if err != nil {
		return 0, err
	}
	path := fmt.Sprintf("%s/books/%d/file", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	c.decorate(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &APIError{Kind: KindNetwork, Message: "search service unreachable", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return 0, c.classify(resp)
	}
	return io.Copy(w, resp.Body)
}

// tokenForRequest snapshots the bearer token before dispatch. A request
// already in flight keeps its token even if the session is cleared
// meanwhile; only later requests observe the cleared state.
func (c *Client) tokenForRequest() (string, error) {
	if !c.sessions.IsUsable() {
		return "", &APIError{Kind: KindUnauthenticated, Message: "no usable session, sign in first"}
	}
	sess, err := c.sessions.Load()
	if err != nil {
		return "", &APIError{Kind: KindUnauthenticated, Message: "session unreadable", Err: err}
	}
	return sess.Token, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any, authed bool) error {
	var token string
	if authed {
		var err error
		token, err = c.tokenForRequest()
		if err != nil {
			return err
		}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: "search service unreachable", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.classify(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindServer, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func (c *Client) decorate(req *http.Request, token string) {
	req.Header.Set("X-Request-ID", util.NewID())
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// classify maps an error response onto the fixed taxonomy. 401 is the only
// status that invalidates the session; 422 in particular must not, since a
// validation glitch is not a credential failure.
func (c *Client) classify(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	msg := strings.TrimSpace(errResp.Error)
	if msg == "" {
		msg = resp.Status
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: msg}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
		_ = c.sessions.Clear()
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case http.StatusConflict:
		apiErr.Kind = KindConflict
	case http.StatusUnprocessableEntity:
		apiErr.Kind = KindUnprocessable
	default:
		apiErr.Kind = KindServer
	}
	return apiErr
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
