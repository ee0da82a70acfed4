package handler

import (
	"net/http"
	"strconv"

	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes registers the community feed routes. Reads go through
// optionalMW so anonymous viewers still get the feed; writes require
// authMW.
func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalMW gin.HandlerFunc) {
	posts := rg.Group("/posts")
	{
		posts.GET("", optionalMW, h.List)
		posts.GET("/:id", optionalMW, h.Get)

		posts.POST("", authMW, h.Create)
		posts.PUT("/:id", authMW, h.Update)
		posts.DELETE("/:id", authMW, h.Delete)
		posts.POST("/:id/like", authMW, h.ToggleLike)
		posts.POST("/:id/react", authMW, h.React)
	}
}

// Create creates a post from multipart form data: a caption plus an
// optional image.
// POST /api/community/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreatePostDTO
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := readImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	post, err := h.postService.CreatePost(userID, req.Caption, image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List returns the feed newest-first with pagination.
// GET /api/community/posts?page=1&page_size=20
func (h *PostHandler) List(c *gin.Context) {
	page := 1
	pageSize := 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	feed, err := h.postService.ListPosts(page, pageSize, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

// Get returns a single post with its comment tree.
// GET /api/community/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := h.postService.GetPost(postID, c.GetString("userID"))
	if err != nil {
		if err == service.ErrPostNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update updates a post's caption (author only).
// PUT /api/community/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.UpdatePost(c.GetString("userID"), postID, req.Caption)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete deletes a post (author only).
// DELETE /api/community/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if err := h.postService.DeletePost(c.GetString("userID"), postID); err != nil {
		switch err {
		case service.ErrPostNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// ToggleLike flips the caller's like on a post: 201 when the like was
// created, 200 when it was removed.
// POST /api/community/posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	liked, err := h.postService.TogglePostLike(c.GetString("userID"), postID)
	if err != nil {
		if err == service.ErrPostNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{"detail": "Post liked", "liked": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Post unliked", "liked": false})
}

// React sets the caller's reaction on a post; a differing type replaces
// the current one.
// POST /api/community/posts/:id/react
func (h *PostHandler) React(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req dto.SetReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reaction, err := h.postService.SetReaction(c.GetString("userID"), postID, req.ReactionType)
	if err != nil {
		if err == service.ErrPostNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reaction)
}
