package cache

import (
	"testing"
	"time"
)

// testClock is an adjustable clock so TTL expiry needs no sleeping.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	c, err := New(16, ttl, clock.Now)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c, clock
}

func TestGetReturnsStoredEntryWithinTTL(t *testing.T) {
	c, clock := newTestCache(t, 20*time.Second)

	c.Set("/", Entry{Body: []byte("rendered"), ContentType: "text/html"})
	clock.Advance(19 * time.Second)

	entry, ok := c.Get("/")
	if !ok {
		t.Fatal("entry missing within TTL")
	}
	if string(entry.Body) != "rendered" || entry.ContentType != "text/html" {
		t.Errorf("entry = %+v, want stored body and content type", entry)
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCache(t, 20*time.Second)

	c.Set("/", Entry{Body: []byte("rendered")})
	clock.Advance(21 * time.Second)

	if _, ok := c.Get("/"); ok {
		t.Error("entry still served after TTL")
	}
}

func TestDeleteAndPurge(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	c.Set("/", Entry{Body: []byte("a")})
	c.Set("/?page=2", Entry{Body: []byte("b")})

	c.Delete("/")
	if _, ok := c.Get("/"); ok {
		t.Error("deleted key still present")
	}
	if _, ok := c.Get("/?page=2"); !ok {
		t.Error("unrelated key dropped by Delete")
	}

	c.Purge()
	if _, ok := c.Get("/?page=2"); ok {
		t.Error("key survived Purge")
	}
}

func TestMissingKey(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	if _, ok := c.Get("/nope"); ok {
		t.Error("got entry for key never set")
	}
}
