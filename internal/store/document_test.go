package store

import (
	"sync"
	"testing"

	"github.com/duoplan/duoplan/internal/database"
	"github.com/duoplan/duoplan/internal/metrics"
)

func setupDocStore(t *testing.T) *DocumentStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDocumentStore(db, metrics.Noop{})
}

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetMaterializesDefault(t *testing.T) {
	docs := setupDocStore(t)

	var got testDoc
	if err := docs.Get("widget", testDoc{Name: "seed", Count: 1}, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "seed" || got.Count != 1 {
		t.Errorf("got %+v, want seed/1", got)
	}

	// The default must have been persisted, so a second Get with a
	// different default still returns the first one.
	var again testDoc
	if err := docs.Get("widget", testDoc{Name: "other", Count: 9}, &again); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again != got {
		t.Errorf("second get = %+v, want %+v", again, got)
	}
}

func TestPutOverwrites(t *testing.T) {
	docs := setupDocStore(t)

	if err := docs.Put("widget", testDoc{Name: "a", Count: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := docs.Put("widget", testDoc{Name: "b", Count: 2}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	var got testDoc
	if err := docs.Get("widget", testDoc{}, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "b" || got.Count != 2 {
		t.Errorf("got %+v, want b/2", got)
	}
}

func TestExists(t *testing.T) {
	docs := setupDocStore(t)

	ok, err := docs.Exists("widget")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("fresh key should not exist")
	}

	if err := docs.Put("widget", testDoc{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	ok, err = docs.Exists("widget")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("key should exist after put")
	}
}

func TestListKeysPrefix(t *testing.T) {
	docs := setupDocStore(t)

	for _, key := range []string{"days/2026-01-20", "days/2026-01-19", "days/2026-02-01", "settings"} {
		if err := docs.Put(key, testDoc{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	keys, err := docs.ListKeys("days/2026-01")
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	want := []string{"days/2026-01-19", "days/2026-01-20"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
		}
	}
}

func TestGetCorruptDocument(t *testing.T) {
	docs := setupDocStore(t)

	if _, err := docs.db.Exec(
		`INSERT INTO documents (key, body) VALUES ('widget', '{not json')`); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	var got testDoc
	if err := docs.Get("widget", testDoc{}, &got); err == nil {
		t.Error("expected error for corrupt stored JSON")
	}
}

func TestUpdateSerializesConcurrentIncrements(t *testing.T) {
	docs := setupDocStore(t)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var doc testDoc
			err := docs.Update("counter", testDoc{}, &doc, func() error {
				doc.Count++
				return nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	var got testDoc
	if err := docs.Get("counter", testDoc{}, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Count != workers {
		t.Errorf("count = %d, want %d (lost update)", got.Count, workers)
	}
}

func TestUpdateErrorLeavesDocument(t *testing.T) {
	docs := setupDocStore(t)

	if err := docs.Put("widget", testDoc{Name: "before"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	var doc testDoc
	err := docs.Update("widget", testDoc{}, &doc, func() error {
		doc.Name = "after"
		return ErrNotFound
	})
	if err == nil {
		t.Fatal("expected error from fn to propagate")
	}

	var got testDoc
	if err := docs.Get("widget", testDoc{}, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "before" {
		t.Errorf("document mutated despite failed update: %+v", got)
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey("2026-01-20"); got != "days/2026-01-20" {
		t.Errorf("DayKey = %s, want days/2026-01-20", got)
	}
}
