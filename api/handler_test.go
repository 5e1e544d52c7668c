package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tholoanasello/HamiltonBlog1/middleware"
	"github.com/Tholoanasello/HamiltonBlog1/models"
	"github.com/Tholoanasello/HamiltonBlog1/repository"
	"github.com/Tholoanasello/HamiltonBlog1/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the full admin API against an in-memory database
// and a temp upload directory.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Post{}, &models.CustomCategory{}, &models.AdminUser{}))

	hash, err := bcrypt.GenerateFromPassword([]byte(services.DefaultAdminPassword), bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.AdminUser{Username: "admin", PasswordHash: string(hash)}).Error)

	storage, err := services.NewDiskStorage(t.TempDir(), "/uploads")
	assert.NoError(t, err)

	authService := services.NewAuthService(repository.NewAdminRepository(db), services.NewSessionManager(), "admin")
	postService := services.NewPostService(
		repository.NewPostRepository(db),
		repository.NewCustomCategoryRepository(db),
		storage,
	)
	handler := NewAPIHandler(authService, postService)

	r := gin.New()
	apiGroup := r.Group("/api")
	apiGroup.GET("/posts", handler.PublicPostsHandler)
	adminGroup := apiGroup.Group("/admin")
	adminGroup.POST("/login", handler.LoginHandler)
	adminGroup.GET("/session", handler.SessionHandler)
	authed := adminGroup.Group("", middleware.RequireAdmin(authService))
	authed.GET("/posts", handler.ListPostsHandler)
	authed.POST("/posts", handler.CreatePostHandler)
	authed.DELETE("/posts/:id", handler.DeletePostHandler)
	authed.GET("/categories", handler.ListCategoriesHandler)
	return r
}

func doLogin(t *testing.T, r *gin.Engine, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := doLogin(t, r, "not-the-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid password")
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginHandler_CorrectPassword(t *testing.T) {
	r := newTestRouter(t)

	w := doLogin(t, r, services.DefaultAdminPassword)
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	// Browser session cookie: no Max-Age, so it dies with the tab.
	assert.Equal(t, 0, cookie.MaxAge)

	// The login response carries the refreshed post and category lists.
	var resp struct {
		Data struct {
			Posts      []models.Post `json:"posts"`
			Categories []string      `json:"categories"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Posts)
}

func TestRequireAdmin_BlocksWithoutSession(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionHandler(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	cookie := sessionCookie(t, doLogin(t, r, services.DefaultAdminPassword))
	req = httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func createPostForm(t *testing.T, fields map[string]string, pdfName, pdfBody string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		assert.NoError(t, mw.WriteField(key, value))
	}
	if pdfName != "" {
		part, err := mw.CreateFormFile("pdf", pdfName)
		assert.NoError(t, err)
		_, err = part.Write([]byte(pdfBody))
		assert.NoError(t, err)
	}
	assert.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateListDeleteRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	cookie := sessionCookie(t, doLogin(t, r, services.DefaultAdminPassword))

	// Create a corporate finance post with a custom category and a PDF.
	body, contentType := createPostForm(t, map[string]string{
		"title":           "Dividend Policy Review",
		"excerpt":         "How payout ratios shift.",
		"content":         "Full analysis.",
		"category":        "corporate_finance",
		"subcategory":     "Dividend Decisions",
		"custom_category": "ESG Notes",
	}, "review.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data models.Post `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Data.ID)
	assert.False(t, created.Data.PublishedDate.IsZero())
	// The custom category label overrides the subcategory select.
	assert.Equal(t, "ESG Notes", created.Data.Subcategory)
	assert.True(t, strings.HasPrefix(created.Data.PDFURL, "/uploads/"))

	// The admin list now contains exactly the new post.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var listed struct {
		Data []models.Post `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
	assert.Equal(t, created.Data.ID, listed.Data[0].ID)

	// The custom category landed in the registry.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/categories", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "ESG Notes")

	// The public filtered read sees it under corporate_finance only.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts?category=corporate_finance", nil))
	assert.Contains(t, w.Body.String(), "Dividend Policy Review")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts?category=valuation_reports", nil))
	assert.NotContains(t, w.Body.String(), "Dividend Policy Review")

	// Delete it; the list is empty afterwards.
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/posts/"+created.Data.ID, nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	listed.Data = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data)
}

func TestCreatePostHandler_ValidationError(t *testing.T) {
	r := newTestRouter(t)
	cookie := sessionCookie(t, doLogin(t, r, services.DefaultAdminPassword))

	body, contentType := createPostForm(t, map[string]string{
		"title":    "",
		"excerpt":  "x",
		"content":  "y",
		"category": "investment_insights",
	}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicPostsHandler_UnknownCategory(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts?category=press_releases", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
