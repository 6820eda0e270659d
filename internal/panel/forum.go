package panel

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/search"
	"HealthPortal/pkg/store"
	"HealthPortal/pkg/util"
)

const (
	forumAuthor = "You"
	forumAvatar = "👤"
)

type Forum struct {
	repo  store.Repository[models.Post]
	index search.Engine // 可为 nil，此时 Search 退化为子串匹配
	opts  Options
}

func NewForum(repo store.Repository[models.Post], index search.Engine, opts Options) *Forum {
	return &Forum{repo: repo, index: index, opts: opts.withDefaults()}
}

func (f *Forum) List() []models.Post { return f.repo.List() }

func (f *Forum) Categories() []string {
	return append([]string(nil), models.PostCategories...)
}

// Create 标题和内容都不能为空，分类默认 General
func (f *Forum) Create(ctx context.Context, form models.PostForm) (models.Post, bool) {
	if strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Content) == "" {
		return models.Post{}, false
	}
	category := strings.TrimSpace(form.Category)
	if category == "" {
		category = models.DefaultPostCategory
	}
	post := models.Post{
		ID:        util.NewID(),
		Author:    forumAuthor,
		Avatar:    forumAvatar,
		Title:     form.Title,
		Content:   form.Content,
		Timestamp: f.opts.Clock(),
		Category:  category,
	}
	f.repo.Add(post)
	f.indexPost(ctx, post)
	f.opts.emit(PanelForum, "created", post)
	return post, true
}

// ToggleLike 切换点赞并同步调整点赞数
func (f *Forum) ToggleLike(id string) (models.Post, bool) {
	post, ok := f.repo.Update(id, func(p *models.Post) {
		if p.IsLiked {
			p.Likes--
		} else {
			p.Likes++
		}
		p.IsLiked = !p.IsLiked
	})
	if ok {
		f.opts.emit(PanelForum, "liked", post)
	}
	return post, ok
}

func (f *Forum) Stats() models.ForumStats {
	var s models.ForumStats
	for _, p := range f.repo.List() {
		s.Posts++
		s.Likes += p.Likes
		s.Replies += p.Replies
	}
	return s
}

// IndexAll 把现有帖子写入搜索索引
func (f *Forum) IndexAll(ctx context.Context) error {
	if f.index == nil {
		return nil
	}
	posts := f.repo.List()
	docs := make([]search.Doc, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, postDoc(p))
	}
	return f.index.IndexBatch(ctx, docs)
}

// Search 按关键字和可选分类查询，结果按相关度排序
func (f *Forum) Search(ctx context.Context, query, category string) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	category = strings.TrimSpace(category)
	if f.index == nil {
		return f.scan(query, category), nil
	}

	req := search.Request{Keyword: query, Size: f.repo.Len()}
	if category != "" {
		req.MustTerms = map[string]string{"category": category}
	}
	res, err := f.index.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]models.Post, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if p, ok := f.repo.Get(hit.ID); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Forum) scan(query, category string) []models.Post {
	q := strings.ToLower(query)
	var out []models.Post
	for _, p := range f.repo.List() {
		if category != "" && p.Category != category {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(p.Title+" "+p.Content+" "+p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func (f *Forum) indexPost(ctx context.Context, p models.Post) {
	if f.index == nil {
		return
	}
	if err := f.index.Index(ctx, postDoc(p)); err != nil {
		logger.Warn("index forum post failed", zap.String("id", p.ID), zap.Error(err))
	}
}

func postDoc(p models.Post) search.Doc {
	return search.Doc{
		ID:   p.ID,
		Type: search.DocTypePost,
		Fields: map[string]any{
			"title":     p.Title,
			"content":   p.Content,
			"category":  p.Category,
			"author":    p.Author,
			"likes":     p.Likes,
			"timestamp": p.Timestamp,
		},
	}
}
