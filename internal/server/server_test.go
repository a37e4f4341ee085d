package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Port: 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func postRender(t *testing.T, s *Server, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]string
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload["error"]
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestIndexServesForm(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "notation") {
		t.Error("index page does not mention the notation field")
	}
}

func TestRenderEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("RendersWAV", func(t *testing.T) {
		rec := postRender(t, s, url.Values{"notation": {"a4+c5"}, "bpm": {"600"}})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("Content-Type = %q, want audio/wav", ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("RIFF")) {
			t.Error("body is not a RIFF container")
		}
	})

	t.Run("CachedResponseIdentical", func(t *testing.T) {
		form := url.Values{"notation": {"g3*b3"}, "bpm": {"600"}}
		first := postRender(t, s, form)
		second := postRender(t, s, form)
		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Fatalf("status = %d/%d", first.Code, second.Code)
		}
		if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
			t.Error("cached response differs from fresh render")
		}
	})

	t.Run("MissingNotation", func(t *testing.T) {
		rec := postRender(t, s, url.Values{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if msg := decodeError(t, rec.Body); !strings.Contains(msg, "required") {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("MalformedNotation", func(t *testing.T) {
		rec := postRender(t, s, url.Values{"notation": {"a4+x9"}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if msg := decodeError(t, rec.Body); !strings.Contains(msg, "position") {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("IllegalPitch", func(t *testing.T) {
		rec := postRender(t, s, url.Values{"notation": {"es4"}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("UnknownShape", func(t *testing.T) {
		rec := postRender(t, s, url.Values{"notation": {"a4"}, "shape": {"noise"}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if msg := decodeError(t, rec.Body); !strings.Contains(msg, "shape") {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("BadBPM", func(t *testing.T) {
		rec := postRender(t, s, url.Values{"notation": {"a4"}, "bpm": {"zero"}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("ShapeChangesPayload", func(t *testing.T) {
		sin := postRender(t, s, url.Values{"notation": {"a4"}, "shape": {"sin"}, "bpm": {"600"}})
		saw := postRender(t, s, url.Values{"notation": {"a4"}, "shape": {"saw"}, "bpm": {"600"}})
		if sin.Code != http.StatusOK || saw.Code != http.StatusOK {
			t.Fatalf("status = %d/%d", sin.Code, saw.Code)
		}
		if bytes.Equal(sin.Body.Bytes(), saw.Body.Bytes()) {
			t.Error("different shapes produced identical payloads")
		}
	})
}

func TestStatusForMapsDomainErrors(t *testing.T) {
	// Anything the caller can fix is a 400; everything else is on us.
	if got := statusFor(io.ErrUnexpectedEOF); got != http.StatusInternalServerError {
		t.Errorf("unknown error mapped to %d, want 500", got)
	}
}
