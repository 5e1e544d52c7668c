package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Tholoanasello/HamiltonBlog1/models"
	"github.com/Tholoanasello/HamiltonBlog1/repository"
)

var (
	// ErrValidation indicates a required form field is missing or the
	// category is not one of the three known values.
	ErrValidation = errors.New("invalid post")
	// ErrUpload indicates file storage rejected the PDF. The post
	// insert is never attempted after an upload failure.
	ErrUpload = errors.New("pdf upload failed")
	// ErrInsert indicates the post row insert failed.
	ErrInsert = errors.New("post insert failed")
	// ErrDelete indicates the post row delete failed.
	ErrDelete = errors.New("post delete failed")
)

// PostInput carries the creation form fields.
type PostInput struct {
	Title          string
	Excerpt        string
	Content        string
	Category       models.Category
	Subcategory    string
	Industry       string
	CustomCategory string
	Author         string
}

// PostService composes the post repository, the custom category
// registry and file storage into the create/delete/list flow the admin
// console and the public pages use.
type PostService interface {
	ListAll(ctx context.Context) ([]*models.Post, error)
	ListByCategory(ctx context.Context, category models.Category) ([]*models.Post, error)
	Create(ctx context.Context, input PostInput, pdfName string, pdf io.Reader) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	ListCustomCategories(ctx context.Context) ([]string, error)
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CustomCategoryRepository
	storage      StorageService
}

// NewPostService creates a new instance of PostService.
func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CustomCategoryRepository, storage StorageService) PostService {
	return &postService{postRepo: postRepo, categoryRepo: categoryRepo, storage: storage}
}

// ListAll returns every post, newest first.
func (s *postService) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.ListAll(ctx)
}

// ListByCategory returns the posts for one of the three fixed
// categories, newest first.
func (s *postService) ListByCategory(ctx context.Context, category models.Category) ([]*models.Post, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category '%s'", ErrValidation, category)
	}
	return s.postRepo.ListByCategory(ctx, category)
}

// Create validates the form input, stores the optional PDF first, then
// inserts the post row. A brand-new custom category label is registered
// afterwards as a best-effort side effect; its failure does not roll
// back the created post.
func (s *postService) Create(ctx context.Context, input PostInput, pdfName string, pdf io.Reader) (*models.Post, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Excerpt) == "" ||
		strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title, excerpt and content are required", ErrValidation)
	}
	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category '%s'", ErrValidation, input.Category)
	}

	var pdfURL string
	if pdf != nil {
		url, err := s.storage.Save(pdfName, pdf)
		if err != nil {
			// An upload failure aborts before the insert is attempted,
			// so no partial post is left behind.
			log.Printf("ERROR: [PostService] PDF upload failed for '%s': %v", input.Title, err)
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		pdfURL = url
	}

	// A custom category label takes precedence over the selected
	// subcategory.
	subcategory := input.Subcategory
	if input.CustomCategory != "" {
		subcategory = input.CustomCategory
	}

	author := input.Author
	if author == "" {
		author = models.DefaultAuthor
	}

	post := &models.Post{
		Title:       input.Title,
		Excerpt:     input.Excerpt,
		Content:     input.Content,
		Category:    input.Category,
		Subcategory: subcategory,
		Industry:    input.Industry,
		Author:      author,
		PDFURL:      pdfURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsert, err)
	}

	if input.CustomCategory != "" {
		if err := s.categoryRepo.Add(ctx, input.CustomCategory); err != nil {
			log.Printf("WARN: [PostService] Failed to register custom category '%s' (post ID %s was still created): %v",
				input.CustomCategory, post.ID, err)
		}
	}

	log.Printf("INFO: [PostService] Created post ID %s ('%s') in category '%s'.", post.ID, post.Title, post.Category)
	return post, nil
}

// Delete removes the post by identifier. Deleting an id the store no
// longer holds is treated as a no-op success.
func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	return nil
}

// ListCustomCategories returns the registered ad hoc category names.
func (s *postService) ListCustomCategories(ctx context.Context) ([]string, error) {
	return s.categoryRepo.List(ctx)
}
