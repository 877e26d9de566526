package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounter(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("test_total", "test counter")

	c.Inc()
	c.Add(4)
	if c.Value() != 5 {
		t.Errorf("counter = %d, want 5", c.Value())
	}

	// Re-registering the same name returns the same counter.
	if r.NewCounter("test_total", "test counter") != c {
		t.Error("duplicate registration must return the existing counter")
	}
}

func TestGauge(t *testing.T) {
	r := NewRegistry()
	g := r.NewGauge("depth", "queue depth")

	g.Set(12.5)
	if g.Value() != 12.5 {
		t.Errorf("gauge = %v, want 12.5", g.Value())
	}
	g.Set(0)
	if g.Value() != 0 {
		t.Errorf("gauge = %v, want 0", g.Value())
	}
}

func TestRender(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("blocks_total", "planned blocks")
	g := r.NewGauge("buffer_depth", "ring depth")
	c.Add(7)
	g.Set(3)

	out := r.Render()
	for _, want := range []string{
		"# HELP blocks_total planned blocks",
		"# TYPE blocks_total counter",
		"blocks_total 7",
		"# TYPE buffer_depth gauge",
		"buffer_depth 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.NewCounter("hits_total", "hits").Inc()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type %q, want text/plain", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "hits_total 1") {
		t.Errorf("body missing counter:\n%s", body)
	}
}
