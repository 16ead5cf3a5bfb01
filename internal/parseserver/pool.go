// Package parseserver embeds the tokenizer/parser as a worker pool behind
// an HTTP and WebSocket front end — the "embedded front-end inside a query
// server" use case the core library is built for, adapted from the
// teacher's executor/registry/handler trio. It performs no execution
// against resolvers; every request is tokenized and parsed, never
// evaluated.
package parseserver

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Protocol-Lattice/turbographql/ast"
	"github.com/Protocol-Lattice/turbographql/parser"
	"github.com/Protocol-Lattice/turbographql/tokenizer"
)

// Result summarizes one parsed document: how many tokens and top-level
// definitions it produced, and the recorded syntax errors (spec.md §7 —
// the parser never aborts on the first error, so a non-empty Errors slice
// does not imply DefinitionCount is zero).
type Result struct {
	TokenCount      int
	DefinitionCount int
	Errors          []*parser.SyntaxError
}

// worker owns one token arena and one AST arena, reused across every
// document it parses. Arenas are not safe for concurrent use (spec.md §5
// "Arenas are not thread-safe; sharing one across threads is undefined"),
// so a worker is never shared between goroutines while busy.
type worker struct {
	tokens *tokenizer.Arena
	nodes  *ast.Arena
}

func newWorker() *worker {
	return &worker{tokens: tokenizer.NewArena(), nodes: &ast.Arena{}}
}

// parse tokenizes and parses text using this worker's arenas, then resets
// both so the worker is ready for its next document (spec.md §4.3 "reset
// ... retains the buffer for reuse").
func (w *worker) parse(text string) Result {
	toks := tokenizer.Tokenize(text, w.tokens)
	doc, errs := parser.Parse(toks, w.nodes)

	res := Result{TokenCount: len(toks), Errors: errs}
	if doc != nil {
		res.DefinitionCount = len(doc.Definitions)
	}

	w.tokens.Reset()
	w.nodes.Reset()
	return res
}

// Pool is a fixed set of workers, each with its own arena pair, dispatching
// parse requests across goroutines — a direct realization of spec.md §5's
// "multiple parses may run on multiple threads provided each has its own
// token arena and AST arena."
type Pool struct {
	jobs    chan job
	log     *slog.Logger
	closeCh chan struct{}
}

type job struct {
	text   string
	result chan<- Result
}

// NewPool starts size worker goroutines, each looping on its own worker
// state, and returns a Pool ready to accept Parse calls. size must be >= 1.
func NewPool(size int, log *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Pool{
		jobs:    make(chan job),
		log:     log,
		closeCh: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		go p.run(i)
	}
	return p
}

func (p *Pool) run(id int) {
	w := newWorker()
	p.log.Debug("parseserver worker started", "worker", id)
	for {
		select {
		case j, ok := <-p.jobs:
			if !ok {
				return
			}
			j.result <- w.parse(j.text)
		case <-p.closeCh:
			return
		}
	}
}

// Parse submits text to the pool and blocks until a worker has parsed it.
func (p *Pool) Parse(ctx context.Context, text string) (Result, error) {
	result := make(chan Result, 1)
	select {
	case p.jobs <- job{text: text, result: result}:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case r := <-result:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// ParseAll fans out every document in texts across the pool concurrently
// and returns their results in the same order, using errgroup the way
// bufbuild/protocompile's concurrent property tests do.
func (p *Pool) ParseAll(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			r, err := p.Parse(ctx, text)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close stops every worker goroutine. It does not wait for in-flight jobs.
func (p *Pool) Close() {
	close(p.closeCh)
}
