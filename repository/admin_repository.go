package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Tholoanasello/HamiltonBlog1/models"

	"gorm.io/gorm"
)

// AdminRepository defines the interface for reading the admin
// credential row. The row is provisioned at startup and never written
// by the management flow.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetByUsername retrieves the credential row for the given username.
// Returns (nil, nil) when no such row exists.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [AdminRepository] Admin user '%s' not found.", username)
			return nil, nil // Not found
		}
		log.Printf("ERROR: [AdminRepository] Failed to retrieve admin user '%s': %v", username, err)
		return nil, fmt.Errorf("failed to retrieve admin user '%s': %w", username, err)
	}
	return &admin, nil
}
