package parseserver

import (
	"context"
	"testing"
	"time"
)

func TestPoolParseSingleDocument(t *testing.T) {
	pool := NewPool(2, nil)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := pool.Parse(ctx, "{ hero { name } }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DefinitionCount != 1 {
		t.Fatalf("got %d definitions, want 1", res.DefinitionCount)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", res.Errors)
	}
}

func TestPoolParseAllFansOutAcrossWorkers(t *testing.T) {
	pool := NewPool(4, nil)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	docs := []string{
		"{ a }",
		"{ b { c } }",
		"query Q($x: Int) { d(x: $x) }",
		"{ unterminated",
	}
	results, err := pool.ParseAll(ctx, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("got %d results, want %d", len(results), len(docs))
	}
	if results[0].DefinitionCount != 1 || len(results[0].Errors) != 0 {
		t.Errorf("docs[0] = %+v", results[0])
	}
	if len(results[3].Errors) == 0 {
		t.Errorf("docs[3] (unterminated) should have reported an error")
	}
}

func TestPoolReusesWorkerArenasAcrossRequests(t *testing.T) {
	pool := NewPool(1, nil)
	defer pool.Close()

	ctx := context.Background()
	first, err := pool.Parse(ctx, "{ a }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pool.Parse(ctx, "{ b { c d } }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TokenCount == second.TokenCount {
		t.Fatalf("expected different token counts for different inputs, both got %d", first.TokenCount)
	}
	if second.DefinitionCount != 1 {
		t.Fatalf("second.DefinitionCount = %d, want 1", second.DefinitionCount)
	}
}
