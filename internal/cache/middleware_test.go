package cache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// newCachedRouter serves a page listing posts from a mutable slice, so
// tests can change the data underneath the cache.
func newCachedRouter(t *testing.T, ttl time.Duration) (*gin.Engine, *Cache, *testClock, *[]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	c, err := New(16, ttl, clock.Now)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	posts := []string{"first", "second", "third"}
	r := gin.New()
	r.GET("/", Page(c), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "posts: %s", strings.Join(posts, ","))
	})
	return r, c, clock, &posts
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCachedPageIsReplayedVerbatimWithinTTL(t *testing.T) {
	r, _, _, posts := newCachedRouter(t, 20*time.Second)

	first := get(r, "/")
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d", first.Code)
	}

	// Delete a post; the cached page must not notice.
	*posts = (*posts)[:2]

	second := get(r, "/")
	if second.Body.String() != first.Body.String() {
		t.Errorf("cached response changed:\nfirst:  %q\nsecond: %q", first.Body.String(), second.Body.String())
	}
}

func TestExpiryOrPurgeYieldsFreshRender(t *testing.T) {
	r, c, clock, posts := newCachedRouter(t, 20*time.Second)

	first := get(r, "/")
	*posts = (*posts)[:2]

	clock.Advance(21 * time.Second)
	refreshed := get(r, "/")
	if refreshed.Body.String() == first.Body.String() {
		t.Error("response unchanged after TTL expiry")
	}

	*posts = (*posts)[:1]
	c.Purge()
	cleared := get(r, "/")
	if cleared.Body.String() == refreshed.Body.String() {
		t.Error("response unchanged after explicit purge")
	}
}

func TestDistinctQueriesCacheSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	c, err := New(16, time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	r := gin.New()
	r.GET("/", Page(c), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "page %s", ctx.DefaultQuery("page", "1"))
	})

	one := get(r, "/")
	two := get(r, "/?page=2")
	if one.Body.String() == two.Body.String() {
		t.Error("different query strings served the same cached body")
	}
	if got := get(r, "/?page=2").Body.String(); got != fmt.Sprintf("page %s", "2") {
		t.Errorf("cached page 2 = %q", got)
	}
}

func TestOnlySuccessfulResponsesAreCached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	c, err := New(16, time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	fail := true
	r := gin.New()
	r.GET("/", Page(c), func(ctx *gin.Context) {
		if fail {
			ctx.String(http.StatusInternalServerError, "boom")
			return
		}
		ctx.String(http.StatusOK, "fine")
	})

	if w := get(r, "/"); w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	fail = false
	if w := get(r, "/"); w.Body.String() != "fine" {
		t.Errorf("error response was cached: %q", w.Body.String())
	}
}
