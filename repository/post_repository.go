package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Tholoanasello/HamiltonBlog1/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for interacting with blog post data.
// All operations take a context so an in-flight fetch can be abandoned
// when the requesting page goes away.
type PostRepository interface {
	ListAll(ctx context.Context) ([]*models.Post, error)
	ListByCategory(ctx context.Context, category models.Category) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// ListAll retrieves every post, newest first. Posts sharing a
// published_date have no secondary ordering; whatever the store returns
// is kept.
func (r *postRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Order("published_date desc").Find(&posts).Error
	if err != nil {
		log.Printf("ERROR: [PostRepository] Failed to retrieve posts: %v", err)
		return nil, fmt.Errorf("failed to retrieve posts: %w", err)
	}
	log.Printf("INFO: [PostRepository] Retrieved %d posts.", len(posts))
	return posts, nil
}

// ListByCategory retrieves posts whose category equals the given value,
// newest first.
func (r *postRepository) ListByCategory(ctx context.Context, category models.Category) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("published_date desc").Find(&posts).Error
	if err != nil {
		log.Printf("ERROR: [PostRepository] Failed to retrieve posts for category '%s': %v", category, err)
		return nil, fmt.Errorf("failed to retrieve posts for category '%s': %w", category, err)
	}
	log.Printf("INFO: [PostRepository] Retrieved %d posts for category '%s'.", len(posts), category)
	return posts, nil
}

// Create inserts a new post row. The identifier and publication
// timestamp are assigned by the model's BeforeCreate hook.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post == nil {
		log.Printf("ERROR: [PostRepository] Create: post cannot be nil")
		return errors.New("post cannot be nil")
	}
	err := r.db.WithContext(ctx).Create(post).Error
	if err != nil {
		log.Printf("ERROR: [PostRepository] Failed to create post '%s': %v", post.Title, err)
		return fmt.Errorf("failed to create post '%s': %w", post.Title, err)
	}
	log.Printf("INFO: [PostRepository] Successfully created post ID %s ('%s').", post.ID, post.Title)
	return nil
}

// Delete removes a post by its identifier. Deleting an id that no
// longer exists is a no-op success, matching the store's behavior.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		log.Printf("ERROR: [PostRepository] Delete: id cannot be empty")
		return errors.New("post id cannot be empty")
	}
	err := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
	if err != nil {
		log.Printf("ERROR: [PostRepository] Failed to delete post ID %s: %v", id, err)
		return fmt.Errorf("failed to delete post ID %s: %w", id, err)
	}
	log.Printf("INFO: [PostRepository] Successfully deleted post ID %s.", id)
	return nil
}
