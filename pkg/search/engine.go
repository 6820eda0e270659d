package search

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrClosed = errors.New("search engine closed")

type Engine interface {
	Index(ctx context.Context, doc Doc) error
	IndexBatch(ctx context.Context, docs []Doc) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req Request) (Result, error)
	Close() error
}

type bleveEngine struct {
	cfg    Config
	index  bleve.Index
	mu     sync.RWMutex
	closed bool
	// 可为 nil
	results *lru.Cache[string, Result]
}

// New opens the index at cfg.IndexPath, creating it when missing.
// An empty path gives a memory-only index.
func New(cfg Config, m mapping.IndexMapping) (Engine, error) {
	be := &bleveEngine{cfg: cfg}
	if cfg.ResultCacheSize > 0 {
		c, err := lru.New[string, Result](cfg.ResultCacheSize)
		if err != nil {
			return nil, err
		}
		be.results = c
	}

	var (
		idx bleve.Index
		err error
	)
	switch {
	case cfg.IndexPath == "":
		idx, err = bleve.NewMemOnly(m)
	default:
		if _, statErr := os.Stat(cfg.IndexPath); statErr == nil {
			idx, err = bleve.Open(cfg.IndexPath)
		} else if os.IsNotExist(statErr) {
			idx, err = bleve.New(cfg.IndexPath, m)
		} else {
			err = statErr
		}
	}
	if err != nil {
		return nil, err
	}
	be.index = idx
	return be, nil
}

func (e *bleveEngine) guard() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

func (e *bleveEngine) withDeadline(ctx context.Context, d time.Duration, fn func() error) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn()
	}
	c, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	ch := make(chan error, 1)
	go func() { ch <- fn() }()
	select {
	case <-c.Done():
		return c.Err()
	case err := <-ch:
		return err
	}
}

func docData(doc Doc) map[string]any {
	data := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		data[k] = v
	}
	if doc.Type != "" {
		data["type"] = doc.Type
	}
	return data
}

func (e *bleveEngine) invalidate() {
	if e.results != nil {
		e.results.Purge()
	}
}

func (e *bleveEngine) Index(ctx context.Context, doc Doc) error {
	if err := e.guard(); err != nil {
		return err
	}
	defer e.invalidate()
	return e.withDeadline(ctx, e.cfg.QueryTimeout, func() error {
		return e.index.Index(doc.ID, docData(doc))
	})
}

func (e *bleveEngine) IndexBatch(ctx context.Context, docs []Doc) error {
	if err := e.guard(); err != nil {
		return err
	}
	defer e.invalidate()
	bs := e.cfg.BatchSize
	if bs <= 0 {
		bs = 200
	}
	return e.withDeadline(ctx, 0, func() error {
		for i := 0; i < len(docs); i += bs {
			end := i + bs
			if end > len(docs) {
				end = len(docs)
			}
			b := e.index.NewBatch()
			for _, d := range docs[i:end] {
				if err := b.Index(d.ID, docData(d)); err != nil {
					return err
				}
			}
			if err := e.index.Batch(b); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *bleveEngine) Delete(ctx context.Context, id string) error {
	if err := e.guard(); err != nil {
		return err
	}
	defer e.invalidate()
	return e.withDeadline(ctx, e.cfg.QueryTimeout, func() error {
		return e.index.Delete(id)
	})
}

func (e *bleveEngine) Search(ctx context.Context, req Request) (Result, error) {
	if err := e.guard(); err != nil {
		return Result{}, err
	}

	sr := bleve.NewSearchRequest(buildQuery(req, e.cfg.DefaultSearchFields))
	// 分页
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}
	sr.Size = req.Size
	sr.From = req.From
	if req.Highlight {
		sr.Highlight = bleve.NewHighlightWithStyle("html")
	}

	key := req.cacheKey()
	if e.results != nil {
		if hit, ok := e.results.Get(key); ok {
			hit.Hits = append([]Hit(nil), hit.Hits...)
			return hit, nil
		}
	}

	var res *bleve.SearchResult
	err := e.withDeadline(ctx, e.cfg.QueryTimeout, func() error {
		r, err := e.index.Search(sr)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	out := Result{Total: res.Total, Took: res.Took, Hits: make([]Hit, 0, len(res.Hits))}
	for _, h := range res.Hits {
		out.Hits = append(out.Hits, Hit{ID: h.ID, Score: h.Score, Fragments: h.Fragments})
	}
	if e.results != nil {
		cached := out
		cached.Hits = append([]Hit(nil), out.Hits...)
		e.results.Add(key, cached)
	}
	return out, nil
}

func (e *bleveEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.index.Close()
}
