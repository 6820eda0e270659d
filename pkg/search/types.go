package search

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Config struct {
	IndexPath           string // 为空时使用内存索引
	DefaultAnalyzer     string
	DefaultSearchFields []string
	QueryTimeout        time.Duration
	BatchSize           int
	// ResultCacheSize 缓存最近的查询结果，0 表示不缓存；写入索引时清空
	ResultCacheSize int
}

type Doc struct {
	ID     string
	Type   string
	Fields map[string]any
}

type Request struct {
	Keyword      string
	SearchFields []string
	// 精确过滤，如 category=Diabetes
	MustTerms map[string]string
	Highlight bool
	From      int
	Size      int
}

type Hit struct {
	ID        string              `json:"id"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"`
}

type Result struct {
	Total uint64        `json:"total"`
	Took  time.Duration `json:"took"`
	Hits  []Hit         `json:"hits"`
}

// cacheKey 同一请求生成相同的键，MustTerms 按键排序
func (r Request) cacheKey() string {
	terms := make([]string, 0, len(r.MustTerms))
	for k, v := range r.MustTerms {
		terms = append(terms, k+"="+v)
	}
	sort.Strings(terms)
	return fmt.Sprintf("%s|%s|%s|%t|%d|%d",
		r.Keyword, strings.Join(r.SearchFields, ","), strings.Join(terms, "&"), r.Highlight, r.From, r.Size)
}
