package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category defines the fixed top-level classification for blog posts.
type Category string

const (
	CategoryValuationReports   Category = "valuation_reports"
	CategoryCorporateFinance   Category = "corporate_finance"
	CategoryInvestmentInsights Category = "investment_insights"
)

// IsValid reports whether c is one of the three known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryValuationReports, CategoryCorporateFinance, CategoryInvestmentInsights:
		return true
	}
	return false
}

// FinanceSubcategories is the fixed set of corporate finance decision
// types used for the tabs on the Corporate Finance page.
var FinanceSubcategories = []string{
	"Investment Decisions",
	"Finance Decisions",
	"Dividend Decisions",
}

// DefaultAuthor is used when the admin leaves the author field untouched.
const DefaultAuthor = "Hamilton Investment"

// Post represents a single blog/report entry. Subcategory and Industry
// are advisory tags: subcategory is drawn from FinanceSubcategories (or
// a custom label) for corporate finance posts, industry is free-form
// and only meaningful for valuation reports.
type Post struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Excerpt       string    `gorm:"type:text;not null" json:"excerpt"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Category      Category  `gorm:"type:varchar(50);index;not null" json:"category"`
	Subcategory   string    `json:"subcategory"`
	Industry      string    `json:"industry"`
	Author        string    `gorm:"default:'Hamilton Investment'" json:"author"`
	PublishedDate time.Time `gorm:"index" json:"published_date"`
	PDFURL        string    `json:"pdf_url"`
}

// BeforeCreate assigns the server-side identifier and publication
// timestamp on insert.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.PublishedDate.IsZero() {
		p.PublishedDate = time.Now()
	}
	return nil
}

// TableName specifies the table name for the Post model.
func (Post) TableName() string {
	return "blog_posts"
}
