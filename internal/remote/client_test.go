package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/markargand/labourlog/internal/entry"
)

// fakeBackend serves the backend routes from an in-memory entry list.
type fakeBackend struct {
	entries []WireEntry
	pushed  []WireEntry
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{ "ok": true,  "db": "up" }`))
	})
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("username") != "mark@example.com" || r.PostForm.Get("password") != "secret" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(Auth{User: User{Name: "Mark", Role: "admin"}, Token: "tok"})
	})
	r.Get("/entries/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(b.entries)
	})
	r.Post("/entries/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&b.pushed); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	return r
}

func newTestClient(t *testing.T, b *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "///")
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, &fakeBackend{})
	got, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if got != `{"ok":true,"db":"up"}` {
		t.Errorf("Health() = %q", got)
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, &fakeBackend{})

	auth, err := c.Login(context.Background(), "mark@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if auth.User.Name != "Mark" || auth.User.Role != "admin" || auth.Token != "tok" {
		t.Errorf("Login() = %+v", auth)
	}

	_, err = c.Login(context.Background(), "mark@example.com", "wrong")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Login() error = %v, expected StatusError", err)
	}
	if se.Code != http.StatusUnauthorized || se.Message != "invalid credentials" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestFetchAndPushEntries(t *testing.T) {
	b := &fakeBackend{entries: []WireEntry{{
		ID: "t1", EmployeeID: "e1", ProjectID: "p1", Date: "2024-03-04",
		Start: "08:00", End: "16:30", BreakMinutes: 30, WorkType: "assembly",
		Hours: 8, RoundedFromMinutes: 480, RoundingIncrement: 15, Status: "approved", Locked: true,
	}}}
	c := newTestClient(t, b)

	got, err := c.FetchEntries(context.Background())
	if err != nil {
		t.Fatalf("FetchEntries() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.EmployeeID != "e1" || e.BreakMinutes != 30 || e.RoundedFromMinutes != 480 ||
		e.Status != entry.StatusApproved || !e.Locked || e.WorkType != "assembly" {
		t.Errorf("FetchEntries() mapped %+v", e)
	}

	if err := c.PushEntries(context.Background(), got); err != nil {
		t.Fatalf("PushEntries() error: %v", err)
	}
	if len(b.pushed) != 1 || b.pushed[0] != b.entries[0] {
		t.Errorf("pushed = %+v", b.pushed)
	}
}

func TestPushEntries_SnakeCaseBody(t *testing.T) {
	var body string
	r := chi.NewRouter()
	r.Post("/entries/", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	err := NewClient(srv.URL).PushEntries(context.Background(), []entry.TimeEntry{{ID: "x", EmployeeID: "e", BreakMinutes: 5}})
	if err != nil {
		t.Fatalf("PushEntries() error: %v", err)
	}
	for _, key := range []string{`"employee_id":"e"`, `"break_minutes":5`, `"rounding_increment"`} {
		if !strings.Contains(body, key) {
			t.Errorf("body missing %s: %s", key, body)
		}
	}
}

func TestErrors(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/entries/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()
	c := NewClient(srv.URL)

	_, err := c.FetchEntries(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Service Unavailable") {
		t.Errorf("FetchEntries() error = %v, expected status text", err)
	}

	if _, err := c.Health(context.Background()); err == nil {
		t.Error("Health() should fail on a non-JSON body")
	}

	if _, err := NewClient("  ").Health(context.Background()); !errors.Is(err, ErrNoAPIBase) {
		t.Errorf("Health() with no base = %v, expected ErrNoAPIBase", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchEntries(ctx); err == nil {
		t.Error("FetchEntries() should fail with a cancelled context")
	}
}

func TestTrimBase(t *testing.T) {
	tests := map[string]string{
		"https://x.example.com/":   "https://x.example.com",
		" https://x.example.com// ": "https://x.example.com",
		"http://h:8080/api":        "http://h:8080/api",
		"":                         "",
	}
	for in, want := range tests {
		if got := TrimBase(in); got != want {
			t.Errorf("TrimBase(%q) = %q, expected %q", in, got, want)
		}
	}
}
