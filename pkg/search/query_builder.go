package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	q "github.com/blevesearch/bleve/v2/search/query"
)

// buildQuery 关键字按字段 OR，最后一个词额外按前缀匹配，过滤条件 AND
func buildQuery(req Request, defaultFields []string) q.Query {
	var must []q.Query

	if kw := strings.TrimSpace(req.Keyword); kw != "" {
		fields := req.SearchFields
		if len(fields) == 0 {
			fields = defaultFields
		}
		should := make([]q.Query, 0, len(fields)*2)
		words := strings.Fields(strings.ToLower(kw))
		last := words[len(words)-1]
		for _, f := range fields {
			mq := bleve.NewMatchQuery(kw)
			mq.SetField(f)
			should = append(should, mq)

			pq := bleve.NewPrefixQuery(last)
			pq.SetField(f)
			pq.SetBoost(0.5)
			should = append(should, pq)
		}
		if len(should) == 0 {
			should = append(should, bleve.NewMatchQuery(kw))
		}
		must = append(must, bleve.NewDisjunctionQuery(should...))
	}

	for f, v := range req.MustTerms {
		if v == "" {
			continue
		}
		tq := bleve.NewTermQuery(v)
		tq.SetField(f)
		must = append(must, tq)
	}

	if len(must) == 0 {
		return bleve.NewMatchAllQuery()
	}
	return bleve.NewConjunctionQuery(must...)
}
