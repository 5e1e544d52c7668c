package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Tholoanasello/HamiltonBlog1/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomCategoryRepository defines the interface for the ad hoc
// category registry.
type CustomCategoryRepository interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) error
}

type customCategoryRepository struct {
	db *gorm.DB
}

// NewCustomCategoryRepository creates a new instance of CustomCategoryRepository.
func NewCustomCategoryRepository(db *gorm.DB) CustomCategoryRepository {
	return &customCategoryRepository{db: db}
}

// List returns the names of all registered custom categories.
func (r *customCategoryRepository) List(ctx context.Context) ([]string, error) {
	var categories []models.CustomCategory
	err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		log.Printf("ERROR: [CustomCategoryRepository] Failed to retrieve custom categories: %v", err)
		return nil, fmt.Errorf("failed to retrieve custom categories: %w", err)
	}
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}
	log.Printf("INFO: [CustomCategoryRepository] Retrieved %d custom categories.", len(names))
	return names, nil
}

// Add registers a custom category name. The registry has set
// semantics: adding a name that already exists is a no-op.
func (r *customCategoryRepository) Add(ctx context.Context, name string) error {
	if name == "" {
		log.Printf("ERROR: [CustomCategoryRepository] Add: name cannot be empty")
		return errors.New("category name cannot be empty")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CustomCategory{Name: name}).Error
	if err != nil {
		log.Printf("ERROR: [CustomCategoryRepository] Failed to add custom category '%s': %v", name, err)
		return fmt.Errorf("failed to add custom category '%s': %w", name, err)
	}
	log.Printf("INFO: [CustomCategoryRepository] Custom category '%s' registered.", name)
	return nil
}
