package api

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/Tholoanasello/HamiltonBlog1/middleware"
	"github.com/Tholoanasello/HamiltonBlog1/models"
	"github.com/Tholoanasello/HamiltonBlog1/services"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance for rendering post content on the
// listing pages. Raw HTML in the markdown input stays escaped.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts post content markdown to safe HTML for the
// templates. On a conversion failure the raw text is escaped instead.
func RenderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// PageHandler renders the public listing pages and the admin page.
type PageHandler struct {
	authService services.AuthService
	postService services.PostService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(authService services.AuthService, postService services.PostService) *PageHandler {
	return &PageHandler{authService: authService, postService: postService}
}

// listingTab is one tab on a listing page: a label and the posts shown
// under it.
type listingTab struct {
	Name  string
	Posts []*models.Post
}

// HomeHandler renders the landing page.
// GET /
func (h *PageHandler) HomeHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Active": "/",
	})
}

// ValuationHandler renders the valuation reports page. Tabs are the
// distinct industry values actually present in the fetched posts, in
// first-seen order after the date sort.
// GET /valuation
func (h *PageHandler) ValuationHandler(c *gin.Context) {
	posts, err := h.postService.ListByCategory(c.Request.Context(), models.CategoryValuationReports)
	if err != nil {
		log.Printf("ERROR: [Pages] Failed to load valuation reports: %v", err)
		h.renderListing(c, "/valuation", "Valuation Reports",
			"Comprehensive financial asset valuations with detailed financial analysis.",
			nil, nil, "No valuation reports available yet.", "Failed to load valuation reports")
		return
	}

	var industries []string
	seen := make(map[string]bool)
	for _, post := range posts {
		if post.Industry != "" && !seen[post.Industry] {
			seen[post.Industry] = true
			industries = append(industries, post.Industry)
		}
	}
	tabs := make([]listingTab, 0, len(industries))
	for _, industry := range industries {
		var matched []*models.Post
		for _, post := range posts {
			if post.Industry == industry {
				matched = append(matched, post)
			}
		}
		tabs = append(tabs, listingTab{Name: industry, Posts: matched})
	}

	h.renderListing(c, "/valuation", "Valuation Reports",
		"Comprehensive financial asset valuations with detailed financial analysis.",
		posts, tabs, "No valuation reports available yet.", "")
}

// FinanceHandler renders the corporate finance page, partitioned by the
// fixed three-value subcategory set.
// GET /finance
func (h *PageHandler) FinanceHandler(c *gin.Context) {
	posts, err := h.postService.ListByCategory(c.Request.Context(), models.CategoryCorporateFinance)
	if err != nil {
		log.Printf("ERROR: [Pages] Failed to load corporate finance articles: %v", err)
		h.renderListing(c, "/finance", "Corporate Finance",
			"Strategic insights on investment, financing, and dividend decisions",
			nil, nil, "No corporate finance articles available yet.", "Failed to load corporate finance articles")
		return
	}

	tabs := make([]listingTab, 0, len(models.FinanceSubcategories))
	for _, sub := range models.FinanceSubcategories {
		var matched []*models.Post
		for _, post := range posts {
			if post.Subcategory == sub {
				matched = append(matched, post)
			}
		}
		tabs = append(tabs, listingTab{Name: sub, Posts: matched})
	}

	h.renderListing(c, "/finance", "Corporate Finance",
		"Strategic insights on investment, financing, and dividend decisions",
		posts, tabs, "No corporate finance articles available yet.", "")
}

// InsightsHandler renders the investment insights page. No tab
// partitioning.
// GET /insights
func (h *PageHandler) InsightsHandler(c *gin.Context) {
	posts, err := h.postService.ListByCategory(c.Request.Context(), models.CategoryInvestmentInsights)
	if err != nil {
		log.Printf("ERROR: [Pages] Failed to load investment insights: %v", err)
		h.renderListing(c, "/insights", "Investment Insights",
			"Everything, Anything, Anywhere - all in one place.",
			nil, nil, "No investment insights available yet.", "Failed to load investment insights")
		return
	}
	h.renderListing(c, "/insights", "Investment Insights",
		"Everything, Anything, Anywhere - all in one place.",
		posts, nil, "No investment insights available yet.", "")
}

func (h *PageHandler) renderListing(c *gin.Context, active, title, tagline string, posts []*models.Post, tabs []listingTab, emptyMsg, errMsg string) {
	c.HTML(http.StatusOK, "listing.html", gin.H{
		"Active":   active,
		"Title":    title,
		"Tagline":  tagline,
		"Posts":    posts,
		"Tabs":     tabs,
		"EmptyMsg": emptyMsg,
		"Error":    errMsg,
	})
}

// AdminHandler renders the admin page: the login card when the request
// has no live session, the management console otherwise.
// GET /admin
func (h *PageHandler) AdminHandler(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	authenticated := err == nil && h.authService.IsAuthenticated(token)

	if !authenticated {
		c.HTML(http.StatusOK, "admin.html", gin.H{
			"Authenticated":   false,
			"DefaultPassword": services.DefaultAdminPassword,
		})
		return
	}

	var errMsg string
	posts, err := h.postService.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: [Pages] Failed to load posts for admin console: %v", err)
		errMsg = "Failed to load posts"
	}
	categories, err := h.postService.ListCustomCategories(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: [Pages] Failed to load custom categories for admin console: %v", err)
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Authenticated":    true,
		"Posts":            posts,
		"PostCount":        len(posts),
		"CustomCategories": categories,
		"Subcategories":    models.FinanceSubcategories,
		"DefaultAuthor":    models.DefaultAuthor,
		"Error":            errMsg,
	})
}
