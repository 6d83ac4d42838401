package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contentapp "github.com/greenclub/backend/internal/application/content"
	"github.com/greenclub/backend/internal/domain/content"
)

// PostHandler handles club post endpoints
type PostHandler struct {
	BaseHandler
	postService *contentapp.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *contentapp.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePostRequest represents a request to create a post
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Slug     string `json:"slug" binding:"required,min=1,max=120"`
	Summary  string `json:"summary" binding:"max=500"`
	Markdown string `json:"markdown" binding:"required"`
}

// UpdatePostRequest represents a request to update a post. Markdown is
// optional; omitting it leaves the stored content untouched.
type UpdatePostRequest struct {
	Title    string  `json:"title" binding:"required,min=1,max=200"`
	Slug     string  `json:"slug" binding:"required,min=1,max=120"`
	Summary  string  `json:"summary" binding:"max=500"`
	Markdown *string `json:"markdown"`
}

// SetPinnedRequest toggles a post's pinned flag
type SetPinnedRequest struct {
	Pinned bool `json:"pinned"`
}

// PostListFilter binds post list query parameters
type PostListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published archived"`
	AuthorID string `form:"author_id" binding:"omitempty,uuid"`
	Pinned   bool   `form:"pinned"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	AuthorID    string     `json:"author_id"`
	Status      string     `json:"status"`
	Pinned      bool       `json:"pinned"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	DirKey      string     `json:"dir_key"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// PostContentResponse represents a post together with its stored content
type PostContentResponse struct {
	PostResponse
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
}

func toPostResponse(p *content.Post) PostResponse {
	return PostResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Summary:     p.Summary,
		AuthorID:    p.AuthorID.String(),
		Status:      string(p.Status),
		Pinned:      p.Pinned,
		PublishedAt: p.PublishedAt,
		DirKey:      p.DirKey.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

func toPostContentResponse(pc *contentapp.PostContent) PostContentResponse {
	return PostContentResponse{
		PostResponse: toPostResponse(pc.Post),
		Markdown:     pc.Markdown,
		HTML:         pc.HTML,
	}
}

// Create creates a new draft post
func (h *PostHandler) Create(c *gin.Context) {
	authorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), contentapp.CreatePostInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Summary:  req.Summary,
		Markdown: req.Markdown,
		AuthorID: authorID,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPostResponse(post))
}

// GetByID retrieves a post with its Markdown and rendered HTML
func (h *PostHandler) GetByID(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	pc, err := h.postService.Get(c.Request.Context(), postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPostContentResponse(pc))
}

// GetPublishedBySlug retrieves a published post by slug for public display
func (h *PostHandler) GetPublishedBySlug(c *gin.Context) {
	slug := c.Param("slug")

	pc, err := h.postService.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPostContentResponse(pc))
}

// List retrieves a paginated list of posts
func (h *PostHandler) List(c *gin.Context) {
	var q PostListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := content.NewPostFilter()
	filter.Keyword = q.Search
	filter.PinnedOnly = q.Pinned
	if q.Status != "" {
		status := content.PostStatus(q.Status)
		filter.Status = &status
	}
	if q.AuthorID != "" {
		authorID, err := uuid.Parse(q.AuthorID)
		if err != nil {
			h.BadRequest(c, "Invalid author ID format")
			return
		}
		filter.AuthorID = &authorID
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	result, err := h.postService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PostResponse, 0, len(result.Posts))
	for _, p := range result.Posts {
		out = append(out, toPostResponse(p))
	}
	h.SuccessWithMeta(c, out, result.Total, result.Page, result.PageSize)
}

// ListPublished retrieves published posts for public display
func (h *PostHandler) ListPublished(c *gin.Context) {
	var q PostListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := content.NewPostFilter()
	filter.Keyword = q.Search
	filter.PinnedOnly = q.Pinned
	status := content.PostStatusPublished
	filter.Status = &status
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	result, err := h.postService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PostResponse, 0, len(result.Posts))
	for _, p := range result.Posts {
		out = append(out, toPostResponse(p))
	}
	h.SuccessWithMeta(c, out, result.Total, result.Page, result.PageSize)
}

// Update updates a post's metadata and optionally its Markdown content
func (h *PostHandler) Update(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), contentapp.UpdatePostInput{
		PostID:   postID,
		Title:    req.Title,
		Slug:     req.Slug,
		Summary:  req.Summary,
		Markdown: req.Markdown,
		ActorID:  actorID,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPostResponse(post))
}

// Publish publishes a draft post
func (h *PostHandler) Publish(c *gin.Context) {
	h.transition(c, h.postService.Publish)
}

// Archive archives a published post
func (h *PostHandler) Archive(c *gin.Context) {
	h.transition(c, h.postService.Archive)
}

// Unarchive returns an archived post to the published state
func (h *PostHandler) Unarchive(c *gin.Context) {
	h.transition(c, h.postService.Unarchive)
}

func (h *PostHandler) transition(c *gin.Context, op func(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.Post, error)) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	post, err := op(c.Request.Context(), postID, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPostResponse(post))
}

// SetPinned toggles a post's pinned flag
func (h *PostHandler) SetPinned(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	var req SetPinnedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.postService.SetPinned(c.Request.Context(), postID, req.Pinned, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPostResponse(post))
}

// Delete removes a post and its content directory
func (h *PostHandler) Delete(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), postID, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
