package handlers

import (
	"github.com/gin-gonic/gin"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/response"
)

// Forum

func (h *Handlers) handleListPosts(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"posts":      h.portal.Forum.List(),
		"categories": h.portal.Forum.Categories(),
		"stats":      h.portal.Forum.Stats(),
	})
}

func (h *Handlers) handleCreatePost(c *gin.Context) {
	var form models.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	post, ok := h.portal.Forum.Create(c.Request.Context(), form)
	if !ok {
		response.Error(c, errors.Invalid("title and content are required"))
		return
	}
	response.Created(c, "post created", post)
}

func (h *Handlers) handleTogglePostLike(c *gin.Context) {
	post, ok := h.portal.Forum.ToggleLike(c.Param("id"))
	if !ok {
		response.Error(c, errors.NotFound("post", c.Param("id")))
		return
	}
	response.Success(c, "ok", post)
}

func (h *Handlers) handleSearchPosts(c *gin.Context) {
	posts, err := h.portal.Forum.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		response.Error(c, errors.Wrap(err, "search posts"))
		return
	}
	response.Success(c, "ok", posts)
}

// Rewards

func (h *Handlers) handleRewards(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"summary":      h.portal.Rewards.Summary(),
		"achievements": h.portal.Rewards.Achievements(),
		"rewards":      h.portal.Rewards.Catalog(),
	})
}

func (h *Handlers) handleRedeemReward(c *gin.Context) {
	summary, err := h.portal.Rewards.Redeem(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "reward redeemed", summary)
}
