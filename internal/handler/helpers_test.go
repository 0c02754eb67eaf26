package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duoplan/duoplan/internal/database"
	"github.com/duoplan/duoplan/internal/metrics"
	"github.com/duoplan/duoplan/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStores(t *testing.T) (*store.DocumentStore, *store.DayStore, *store.TemplateStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	docs := store.NewDocumentStore(db, metrics.Noop{})
	templates := store.NewTemplateStore(docs)
	return docs, store.NewDayStore(docs, templates), templates
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func jsonBody(t *testing.T, body any) io.Reader {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return bytes.NewReader(buf)
}

// doJSON builds a request with an optional JSON body and a set of path
// values, runs the handler, and decodes the response body into out.
func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any, pathValues map[string]string, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	r := httptest.NewRequest(method, target, reader)
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, r)

	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w
}
