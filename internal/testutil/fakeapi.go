package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Route keys used by Calls and Fail. They are "METHOD path-pattern".
const (
	RouteList   = "GET /api/messages"
	RouteActive = "GET /api/messages/active"
	RouteCreate = "POST /api/messages"
	RouteDelete = "DELETE /api/messages/:id"
	RouteToggle = "POST /api/messages/:id/toggle"
	RouteStats  = "GET /api/stats"
)

// FakeAPI is an in-memory implementation of the /api contract served over
// httptest. It orders and filters messages the way the real server does:
// expired messages are hidden and the rest are sorted by severity, newest first.
type FakeAPI struct {
	Server *httptest.Server
	URL    string

	mu         sync.Mutex
	messages   map[string]notice.Message
	calls      map[string]int
	failures   map[string]failure
	creates    []notice.CreateMessageRequest
	simple     bool
	clock      time.Time
	lastUpdate time.Time
}

type failure struct {
	status int
	once   bool
}

// FakeOption configures a FakeAPI.
type FakeOption func(*FakeAPI)

// WithSimpleVariant makes the fake behave like the simple server variant:
// no enabled flag in payloads and no toggle route.
func WithSimpleVariant() FakeOption {
	return func(f *FakeAPI) {
		f.simple = true
	}
}

// NewFakeAPI starts a fake server that is shut down when the test ends.
func NewFakeAPI(t testing.TB, opts ...FakeOption) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		messages: make(map[string]notice.Message),
		calls:    make(map[string]int),
		failures: make(map[string]failure),
		clock:    time.Date(2025, 10, 29, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(f)
	}

	router := gin.New()
	router.Use(f.intercept)

	api := router.Group("/api")
	api.GET("/messages", f.listMessages)
	api.GET("/messages/active", f.listActiveMessages)
	api.POST("/messages", f.createMessage)
	api.DELETE("/messages/:id", f.deleteMessage)
	if !f.simple {
		api.POST("/messages/:id/toggle", f.toggleMessage)
	}
	api.GET("/stats", f.getStats)

	f.Server = httptest.NewServer(router)
	f.URL = f.Server.URL
	t.Cleanup(f.Server.Close)

	return f
}

// Seed stores messages as if they had been created earlier.
// Missing IDs and timestamps are filled in.
func (f *FakeAPI) Seed(messages ...notice.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range messages {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = f.tick()
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = m.CreatedAt
		}
		if m.Enabled == nil && !f.simple {
			enabled := true
			m.Enabled = &enabled
		}
		f.messages[m.ID] = m
	}
}

// Fail makes every request to route answer with status until ClearFailures.
func (f *FakeAPI) Fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = failure{status: status}
}

// FailOnce makes the next request to route answer with status.
func (f *FakeAPI) FailOnce(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = failure{status: status, once: true}
}

// ClearFailures removes every injected failure.
func (f *FakeAPI) ClearFailures() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]failure)
}

// Calls returns how many requests reached route, including failed ones.
func (f *FakeAPI) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// TotalCalls returns the number of requests of any kind.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// Creates returns every accepted create request body in arrival order.
func (f *FakeAPI) Creates() []notice.CreateMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notice.CreateMessageRequest(nil), f.creates...)
}

// Snapshot returns what GET /api/messages would currently return.
func (f *FakeAPI) Snapshot() []notice.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible(false)
}

func (f *FakeAPI) intercept(c *gin.Context) {
	route := c.Request.Method + " " + c.FullPath()

	f.mu.Lock()
	f.calls[route]++
	fail, injected := f.failures[route]
	if injected && fail.once {
		delete(f.failures, route)
	}
	f.mu.Unlock()

	if injected {
		c.AbortWithStatusJSON(fail.status, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

func (f *FakeAPI) listMessages(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.visible(false))
}

func (f *FakeAPI) listActiveMessages(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.visible(true))
}

func (f *FakeAPI) createMessage(c *gin.Context) {
	var req notice.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.tick()
	msg := notice.Message{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Priority:  req.Priority,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: req.ExpiresAt,
	}
	if !f.simple {
		enabled := true
		msg.Enabled = &enabled
	}

	f.messages[msg.ID] = msg
	f.creates = append(f.creates, req)
	f.lastUpdate = now

	c.JSON(http.StatusCreated, msg)
}

func (f *FakeAPI) deleteMessage(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := c.Param("id")
	if _, ok := f.messages[id]; !ok {
		c.Status(http.StatusNotFound)
		return
	}

	delete(f.messages, id)
	f.lastUpdate = f.tick()
	c.Status(http.StatusNoContent)
}

func (f *FakeAPI) toggleMessage(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := c.Param("id")
	msg, ok := f.messages[id]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	enabled := !msg.IsEnabled()
	msg.Enabled = &enabled
	msg.UpdatedAt = f.tick()
	f.messages[id] = msg
	f.lastUpdate = msg.UpdatedAt

	c.JSON(http.StatusOK, msg)
}

func (f *FakeAPI) getStats(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	active := 0
	for _, m := range f.messages {
		if !m.IsExpired(now) {
			active++
		}
	}

	c.JSON(http.StatusOK, notice.Stats{
		TotalMessages:  len(f.messages),
		ActiveMessages: active,
		LastUpdated:    f.lastUpdate,
	})
}

// visible returns unexpired messages in server order. Caller holds f.mu.
func (f *FakeAPI) visible(enabledOnly bool) []notice.Message {
	now := time.Now()
	out := make([]notice.Message, 0, len(f.messages))
	for _, m := range f.messages {
		if m.IsExpired(now) {
			continue
		}
		if enabledOnly && !m.IsEnabled() {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Priority.Severity(), out[j].Priority.Severity()
		if si != sj {
			return si < sj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// tick advances the fake clock by one minute so creation order is strict.
// Caller holds f.mu.
func (f *FakeAPI) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}
