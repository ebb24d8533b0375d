package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/lucasreis/polyview/internal/polymarket"
)

func newRelay(t *testing.T, upstreamHandler http.HandlerFunc) (*httptest.Server, *httptest.Server) {
	t.Helper()

	upstream := httptest.NewServer(upstreamHandler)
	t.Cleanup(upstream.Close)

	client := polymarket.NewClient(polymarket.Options{
		BaseURL: upstream.URL,
		Timeout: 5 * time.Second,
	})
	relay := httptest.NewServer(NewServer(client, ":0", "").Router())
	t.Cleanup(relay.Close)

	return relay, upstream
}

func TestGetMarkets_ForwardsPresentParamsOnly(t *testing.T) {
	var gotQuery url.Values
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id":"1"}]`))
	})

	resp, err := http.Get(relay.URL + "/api/markets?closed=false&limit=100&unrelated=zzz")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if gotQuery.Get("closed") != "false" || gotQuery.Get("limit") != "100" {
		t.Errorf("upstream query = %v, want closed and limit forwarded", gotQuery)
	}
	if gotQuery.Has("category") || gotQuery.Has("search") {
		t.Errorf("absent params must be omitted, got %v", gotQuery)
	}
	if gotQuery.Has("unrelated") {
		t.Errorf("unknown params must not be forwarded, got %v", gotQuery)
	}
}

func TestGetMarkets_ForwardsExplicitEmptyParam(t *testing.T) {
	var gotQuery url.Values
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	resp, err := http.Get(relay.URL + "/api/markets?closed=&limit=10")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	// Presence is what gets forwarded: ?closed= is present with an empty
	// value and must reach the upstream as-is.
	if !gotQuery.Has("closed") {
		t.Errorf("upstream query = %v, want explicit empty closed forwarded", gotQuery)
	}
	if gotQuery.Get("closed") != "" {
		t.Errorf("closed = %q, want empty value", gotQuery.Get("closed"))
	}
	if gotQuery.Get("limit") != "10" {
		t.Errorf("limit = %q, want 10", gotQuery.Get("limit"))
	}
}

func TestGetMarkets_VerbatimBody(t *testing.T) {
	payload := `{"results":[{"id":"1","question":"Q?","volume":"123"}]}`
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	resp, err := http.Get(relay.URL + "/api/markets")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != payload {
		t.Errorf("body = %s, want verbatim upstream payload", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGetMarkets_UpstreamFailure(t *testing.T) {
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	resp, err := http.Get(relay.URL + "/api/markets")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Failed to fetch data from Polymarket API" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGetMarket_ForwardsID(t *testing.T) {
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets/abc-123" {
			t.Errorf("upstream path = %s, want /markets/abc-123", r.URL.Path)
		}
		w.Write([]byte(`{"id":"abc-123"}`))
	})

	resp, err := http.Get(relay.URL + "/api/markets/abc-123")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetMarket_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	client := polymarket.NewClient(polymarket.Options{
		BaseURL: upstream.URL,
		Timeout: 2 * time.Second,
	})
	relay := httptest.NewServer(NewServer(client, ":0", "").Router())
	defer relay.Close()

	resp, err := http.Get(relay.URL + "/api/markets/abc")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Failed to load market details" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHealthCheck(t *testing.T) {
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {})

	resp, err := http.Get(relay.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	relay, _ := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	req, _ := http.NewRequest(http.MethodGet, relay.URL+"/api/markets", nil)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
