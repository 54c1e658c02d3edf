// Package habitclient is a client-side mirror of a Uruz habit collection.
//
// It keeps a local copy of the habit list and applies changes
// optimistically: a mutation updates the mirror first, then reconciles
// with the server response. On success the mirrored record is replaced
// with the server's canonical version; on failure the prior state is
// restored and the error returned.
package habitclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"
)

// State tracks where a mirrored record stands relative to the server.
type State string

const (
	StateUnsaved  State = "unsaved"
	StateSaving   State = "saving"
	StateSaved    State = "saved"
	StateUpdating State = "updating"
	StateDeleting State = "deleting"
)

// Client-side defaults applied before a record is sent to the server.
const (
	DefaultDifficulty = "medium"
	defaultPageLimit  = 100
)

// Habit is the wire representation of a habit record.
type Habit struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Notes          string   `json:"notes"`
	Positive       bool     `json:"positive"`
	Negative       bool     `json:"negative"`
	Difficulty     string   `json:"difficulty"`
	Counter        int      `json:"counter"`
	Streak         int      `json:"streak"`
	DatesCompleted []string `json:"datesCompleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Record is a habit plus its synchronization state in the mirror.
type Record struct {
	Habit
	State State
}

// FieldError is a single field-level validation failure returned by the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("habitclient: %d %s (%d field errors)", e.Status, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("habitclient: %d %s", e.Status, e.Message)
}

// Option configures the client.
type Option func(*Client)

// WithToken sets a bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client mirrors the habit collection served at baseURL.
type Client struct {
	baseURL string
	token   string
	http    *http.Client

	mu     sync.Mutex
	habits map[string]*Record
	seq    int
}

// New creates a client for the habit API rooted at baseURL,
// e.g. "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		habits:  make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Habits returns a snapshot of the mirror, newest first.
func (c *Client) Habits() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, 0, len(c.habits))
	for _, r := range c.habits {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns a single mirrored record.
func (c *Client) Get(id string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.habits[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Refresh replaces the mirror with the server's full collection.
func (c *Client) Refresh(ctx context.Context) error {
	all := make(map[string]*Record)
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(defaultPageLimit))

		var habits []Habit
		pg, err := c.do(ctx, http.MethodGet, "/habits?"+q.Encode(), nil, &habits)
		if err != nil {
			return err
		}
		for i := range habits {
			all[habits[i].ID] = &Record{Habit: habits[i], State: StateSaved}
		}
		if pg == nil || page >= pg.Pages {
			break
		}
	}

	c.mu.Lock()
	c.habits = all
	c.mu.Unlock()
	return nil
}

// Add creates a habit. The record appears in the mirror immediately with
// client-side defaults and a placeholder id, and is replaced by the
// server's canonical record once the create succeeds.
func (c *Client) Add(ctx context.Context, title, notes, difficulty string) (Record, error) {
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	c.mu.Lock()
	c.seq++
	tempID := "unsaved-" + strconv.Itoa(c.seq)
	placeholder := &Record{
		Habit: Habit{
			ID:             tempID,
			Title:          title,
			Notes:          notes,
			Positive:       true,
			Negative:       false,
			Difficulty:     difficulty,
			Counter:        0,
			DatesCompleted: []string{},
		},
		State: StateSaving,
	}
	c.habits[tempID] = placeholder
	c.mu.Unlock()

	body := map[string]any{
		"title":      title,
		"notes":      notes,
		"positive":   true,
		"negative":   false,
		"difficulty": difficulty,
		"counter":    0,
	}

	var created Habit
	_, err := c.do(ctx, http.MethodPost, "/habits", body, &created)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.habits, tempID)
	if err != nil {
		return Record{}, err
	}
	rec := &Record{Habit: created, State: StateSaved}
	c.habits[created.ID] = rec
	return *rec, nil
}

// Increment raises the habit's counter by one.
func (c *Client) Increment(ctx context.Context, id string) (Record, error) {
	return c.adjust(ctx, id, 1)
}

// Decrement lowers the habit's counter by one, clamping at zero.
func (c *Client) Decrement(ctx context.Context, id string) (Record, error) {
	return c.adjust(ctx, id, -1)
}

func (c *Client) adjust(ctx context.Context, id string, delta int) (Record, error) {
	c.mu.Lock()
	r, ok := c.habits[id]
	if !ok {
		c.mu.Unlock()
		return Record{}, fmt.Errorf("habitclient: habit %s not in mirror", id)
	}
	prior := *r
	target := max(r.Counter+delta, 0)
	r.Counter = target
	r.State = StateUpdating
	c.mu.Unlock()

	body := map[string]any{"counter": target}
	var updated Habit
	_, err := c.do(ctx, http.MethodPatch, "/habits/"+id, body, &updated)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.habits[id] = &prior
		return Record{}, err
	}
	rec := &Record{Habit: updated, State: StateSaved}
	c.habits[id] = rec
	return *rec, nil
}

// Complete marks the habit done for today.
func (c *Client) Complete(ctx context.Context, id string) (Record, error) {
	c.mu.Lock()
	prior, ok := c.habits[id]
	if ok {
		prior.State = StateUpdating
	}
	c.mu.Unlock()

	var updated Habit
	_, err := c.do(ctx, http.MethodPost, "/habits/"+id+"/complete", nil, &updated)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if ok {
			prior.State = StateSaved
		}
		return Record{}, err
	}
	rec := &Record{Habit: updated, State: StateSaved}
	c.habits[id] = rec
	return *rec, nil
}

// Update applies a sparse patch to the habit. Nil fields are left untouched.
func (c *Client) Update(ctx context.Context, id string, patch map[string]any) (Record, error) {
	c.mu.Lock()
	r, ok := c.habits[id]
	var prior Record
	if ok {
		prior = *r
		r.State = StateUpdating
	}
	c.mu.Unlock()

	var updated Habit
	_, err := c.do(ctx, http.MethodPatch, "/habits/"+id, patch, &updated)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if ok {
			c.habits[id] = &prior
		}
		return Record{}, err
	}
	rec := &Record{Habit: updated, State: StateSaved}
	c.habits[id] = rec
	return *rec, nil
}

// Delete removes the habit. The mirrored record stays visible in the
// deleting state until the server confirms, and is restored on failure.
func (c *Client) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	r, ok := c.habits[id]
	if ok {
		r.State = StateDeleting
	}
	c.mu.Unlock()

	_, err := c.do(ctx, http.MethodDelete, "/habits/"+id, nil, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if ok {
			r.State = StateSaved
		}
		return err
	}
	delete(c.habits, id)
	return nil
}

// pagination mirrors the server's list envelope metadata.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination"`
	Error      string          `json:"error"`
	Errors     []FieldError    `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (*pagination, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("habitclient: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("habitclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("habitclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("habitclient: decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Error, Fields: env.Errors}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("habitclient: decode payload: %w", err)
		}
	}
	return env.Pagination, nil
}
