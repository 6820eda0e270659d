package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemEngine(t *testing.T) Engine {
	t.Helper()
	cfg := Config{DefaultSearchFields: []string{"title", "content", "category"}, QueryTimeout: time.Second}
	e, err := New(cfg, BuildIndexMapping(""))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func post(id, title, content, category string) Doc {
	return Doc{ID: id, Type: DocTypePost, Fields: map[string]any{
		"title":    title,
		"content":  content,
		"category": category,
	}}
}

func TestSearchKeywordAndPrefix(t *testing.T) {
	e := newMemEngine(t)
	ctx := context.Background()
	require.NoError(t, e.IndexBatch(ctx, []Doc{
		post("1", "Tips for Managing Diabetes in Summer", "Stay hydrated", "Diabetes"),
		post("2", "High BP medication timing", "morning or evening", "Blood Pressure"),
	}))

	res, err := e.Search(ctx, Request{Keyword: "diabetes"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "1", res.Hits[0].ID)

	res, err = e.Search(ctx, Request{Keyword: "medic"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "2", res.Hits[0].ID)
}

func TestSearchCategoryFilter(t *testing.T) {
	e := newMemEngine(t)
	ctx := context.Background()
	require.NoError(t, e.Index(ctx, post("1", "Camp", "free checkup", "Events")))
	require.NoError(t, e.Index(ctx, post("2", "Camp question", "is it free", "Questions")))

	res, err := e.Search(ctx, Request{Keyword: "free", MustTerms: map[string]string{"category": "Events"}})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "1", res.Hits[0].ID)
}

func TestDeleteAndClose(t *testing.T) {
	e := newMemEngine(t)
	ctx := context.Background()
	require.NoError(t, e.Index(ctx, post("1", "walking", "daily", "General")))
	require.NoError(t, e.Delete(ctx, "1"))

	res, err := e.Search(ctx, Request{Keyword: "walking"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)

	require.NoError(t, e.Close())
	_, err = e.Search(ctx, Request{Keyword: "walking"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestResultCacheInvalidatedOnWrite(t *testing.T) {
	cfg := Config{DefaultSearchFields: []string{"title", "content"}, ResultCacheSize: 8}
	e, err := New(cfg, BuildIndexMapping(""))
	require.NoError(t, err)
	defer e.Close()
	ctx := context.Background()

	require.NoError(t, e.Index(ctx, post("1", "yoga class", "mornings", "General")))
	res, err := e.Search(ctx, Request{Keyword: "yoga"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)

	// 缓存的结果不受调用方修改影响
	res.Hits[0].ID = "mutated"
	again, err := e.Search(ctx, Request{Keyword: "yoga"})
	require.NoError(t, err)
	assert.Equal(t, "1", again.Hits[0].ID)

	require.NoError(t, e.Index(ctx, post("2", "yoga for seniors", "evenings", "General")))
	res, err = e.Search(ctx, Request{Keyword: "yoga"})
	require.NoError(t, err)
	assert.Len(t, res.Hits, 2)
}

func TestCacheKeyStable(t *testing.T) {
	a := Request{Keyword: "x", MustTerms: map[string]string{"a": "1", "b": "2"}}
	b := Request{Keyword: "x", MustTerms: map[string]string{"b": "2", "a": "1"}}
	assert.Equal(t, a.cacheKey(), b.cacheKey())
	assert.NotEqual(t, a.cacheKey(), Request{Keyword: "y"}.cacheKey())
}
