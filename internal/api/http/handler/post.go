package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-server/internal/api/http/middleware"
	"github.com/inkwell/inkwell-server/internal/model"
	"github.com/inkwell/inkwell-server/internal/service"
)

// Post exposes the content authorship operations over HTTP.
type Post struct {
	postService *service.Post
}

// NewPost creates a new Post handler.
func NewPost(postService *service.Post) *Post {
	return &Post{postService: postService}
}

type createPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// Create stores a new post owned by the caller.
func (h *Post) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), middleware.CallerFrom(c), model.CreatePostParams{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

// Get returns a post by numeric id.
func (h *Post) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// GetBySlug returns a post by its slug.
func (h *Post) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Request.Context(), middleware.CallerFrom(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// List returns published posts, newest first.
func (h *Post) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	posts, err := h.postService.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": toPostResponses(posts)})
}

// ListByAuthor returns an author's posts.
func (h *Post) ListByAuthor(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	posts, err := h.postService.ListByAuthor(c.Request.Context(), middleware.CallerFrom(c), authorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": toPostResponses(posts)})
}

// Search returns published posts matching the q query parameter.
func (h *Post) Search(c *gin.Context) {
	posts, err := h.postService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": toPostResponses(posts)})
}

type updatePostRequest struct {
	Title     model.Optional[string]   `json:"title"`
	Content   model.Optional[string]   `json:"content"`
	Excerpt   model.Optional[string]   `json:"excerpt"`
	Tags      model.Optional[[]string] `json:"tags"`
	Published model.Optional[bool]     `json:"published"`
}

// Update applies a partial update to a post the caller owns. Absent fields
// stay untouched; an explicit null clears where clearing is allowed.
func (h *Post) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), middleware.CallerFrom(c), id, model.UpdatePostParams{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Publish marks a post the caller owns as published.
func (h *Post) Publish(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.Publish(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Unpublish returns a post the caller owns to draft state.
func (h *Post) Unpublish(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.Unpublish(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete removes a post the caller owns.
func (h *Post) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postService.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
