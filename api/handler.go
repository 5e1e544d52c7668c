package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Tholoanasello/HamiltonBlog1/middleware"
	"github.com/Tholoanasello/HamiltonBlog1/models"
	"github.com/Tholoanasello/HamiltonBlog1/services"
	"github.com/Tholoanasello/HamiltonBlog1/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for the JSON API handlers.
type APIHandler struct {
	authService services.AuthService
	postService services.PostService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(authService services.AuthService, postService services.PostService) *APIHandler {
	return &APIHandler{
		authService: authService,
		postService: postService,
	}
}

// LoginRequest carries the login form submission.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies the admin password and, on success, sets the
// session cookie and returns the refreshed post and category lists so
// the console can render immediately.
// POST /api/admin/login
func (h *APIHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Password is required.", err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			utils.SendJSONError(c, http.StatusUnauthorized, "Invalid password", err)
		} else {
			utils.SendJSONError(c, http.StatusInternalServerError, "Authentication failed", err)
		}
		return
	}

	// No Max-Age: the cookie lives only for the browser session, so the
	// logged-in flag dies when the tab/session ends.
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)

	posts, err := h.postService.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("WARN: [API] Post list refresh after login failed: %v", err)
		posts = []*models.Post{}
	}
	categories, err := h.postService.ListCustomCategories(c.Request.Context())
	if err != nil {
		log.Printf("WARN: [API] Custom category refresh after login failed: %v", err)
		categories = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Logged in successfully",
		"data": gin.H{
			"posts":      posts,
			"categories": categories,
		},
	})
}

// SessionHandler reports whether the request carries a live admin
// session, letting the admin page decide between the login card and the
// console.
// GET /api/admin/session
func (h *APIHandler) SessionHandler(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	authenticated := err == nil && h.authService.IsAuthenticated(token)
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": gin.H{"authenticated": authenticated},
	})
}

// ListPostsHandler returns every post, newest first, for the admin
// console list.
// GET /api/admin/posts
func (h *APIHandler) ListPostsHandler(c *gin.Context) {
	posts, err := h.postService.ListAll(c.Request.Context())
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load posts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Posts retrieved successfully",
		"data":    posts,
	})
}

// PublicPostsHandler returns posts filtered by category for the public
// listing pages.
// GET /api/posts?category=corporate_finance
func (h *APIHandler) PublicPostsHandler(c *gin.Context) {
	category := models.Category(c.Query("category"))
	if category == "" {
		posts, err := h.postService.ListAll(c.Request.Context())
		if err != nil {
			utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load posts", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 200, "data": posts})
		return
	}
	if !category.IsValid() {
		utils.SendJSONError(c, http.StatusBadRequest, "Unknown category.", nil)
		return
	}
	posts, err := h.postService.ListByCategory(c.Request.Context(), category)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load posts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": posts})
}

// CreatePostHandler accepts the multipart creation form, including the
// optional "pdf" file part, and creates the post.
// POST /api/admin/posts
func (h *APIHandler) CreatePostHandler(c *gin.Context) {
	input := services.PostInput{
		Title:          c.PostForm("title"),
		Excerpt:        c.PostForm("excerpt"),
		Content:        c.PostForm("content"),
		Category:       models.Category(c.PostForm("category")),
		Subcategory:    c.PostForm("subcategory"),
		Industry:       c.PostForm("industry"),
		CustomCategory: c.PostForm("custom_category"),
		Author:         c.PostForm("author"),
	}

	var pdfName string
	var pdf io.Reader
	fileHeader, err := c.FormFile("pdf")
	if err == nil && fileHeader != nil {
		f, openErr := fileHeader.Open()
		if openErr != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "Failed to read uploaded PDF.", openErr)
			return
		}
		defer f.Close()
		pdfName = fileHeader.Filename
		pdf = f
	}

	post, err := h.postService.Create(c.Request.Context(), input, pdfName, pdf)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.SendJSONError(c, http.StatusBadRequest, "Title, excerpt, content and a valid category are required.", err)
		case errors.Is(err, services.ErrUpload):
			utils.SendJSONError(c, http.StatusInternalServerError, "Failed to upload PDF", err)
		default:
			utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create post", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Blog post created successfully",
		"data":    post,
	})
}

// DeletePostHandler removes a post by id. The confirmation prompt is a
// front-end concern; by the time the request arrives the admin already
// confirmed.
// DELETE /api/admin/posts/:id
func (h *APIHandler) DeletePostHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Post id is required.", nil)
		return
	}
	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Post deleted",
	})
}

// ListCategoriesHandler returns the custom category registry for the
// creation form.
// GET /api/admin/categories
func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.postService.ListCustomCategories(c.Request.Context())
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load custom categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}
