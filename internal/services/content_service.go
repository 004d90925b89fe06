package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

// PostRepository is the interface that wraps methods for Post table data access
type PostRepository interface {
	// Method List retrieves post summaries ordered by descending id, optionally
	// filtered by exact category and a case-insensitive title/content search.
	List(ctx context.Context, category, search string) ([]models.PostSummary, error)
	// Method Create inserts a post and its images atomically and sets the post's generated ID.
	Create(ctx context.Context, post *models.Post, images []string) error
	// Method GetByID retrieves a post with its author's username.
	//
	// If no such post exists, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, postID int) (*models.Post, error)
	// Method GetImages retrieves a post's images ordered by insertion.
	GetImages(ctx context.Context, postID int) ([]models.PostImage, error)
	// Method Exists checks if a post with such id exists.
	Exists(ctx context.Context, postID int) (bool, error)
	// Method Delete removes a post with its images and comments in one transaction.
	//
	// If no such post exists, models.ErrNotFound is returned.
	Delete(ctx context.Context, postID int) error
}

// CommentRepository is the interface that wraps methods for Comment table data access
type CommentRepository interface {
	// Method Create inserts a new comment and sets its generated ID.
	Create(ctx context.Context, comment *models.Comment) error
	// Method ListByPostID retrieves a post's comments ordered by ascending id.
	ListByPostID(ctx context.Context, postID int) ([]models.Comment, error)
}

// contentService implements post and comment business logic, including the
// authorization decisions gating mutations
type contentService struct {
	postRepo    PostRepository
	commentRepo CommentRepository
	logger      *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(postRepo PostRepository, commentRepo CommentRepository, logger *zap.Logger) *contentService {
	return &contentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// ListPosts retrieves post summaries, newest first. Empty filter values mean
// no filtering; both filters combine with logical AND.
func (s *contentService) ListPosts(ctx context.Context, category, search string) ([]models.PostSummary, error) {
	posts, err := s.postRepo.List(ctx, strings.TrimSpace(category), strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.PostSummary{}
	}
	return posts, nil
}

// CreatePost validates and persists a new post for the authenticated caller.
// At most models.MaxPostImages attachments are taken; entries that do not
// look like an encoded image payload are silently skipped rather than
// rejected, matching the behavior clients already rely on.
func (s *contentService) CreatePost(ctx context.Context, identity *models.Identity, req *models.CreatePostRequest) (int, error) {
	if identity == nil {
		return 0, models.ErrUnauthenticated
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return 0, fmt.Errorf("title and content are required: %w", models.ErrValidation)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		Category:  category,
		AuthorID:  identity.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.postRepo.Create(ctx, post, filterImages(req.Images)); err != nil {
		return 0, err
	}

	s.logger.Info("post created", zap.Int("postId", post.ID), zap.Int("authorId", identity.ID))
	return post.ID, nil
}

// GetPost retrieves a post with its full ordered image list and its comments,
// oldest comment first
func (s *contentService) GetPost(ctx context.Context, postID int) (*models.PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := s.postRepo.GetImages(ctx, postID)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.PostImage{}
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return &models.PostDetail{
		Post:     post,
		Images:   images,
		Comments: comments,
	}, nil
}

// DeletePost removes a post and everything attached to it. Only admins may
// delete; the repository runs the cascade in a single transaction.
func (s *contentService) DeletePost(ctx context.Context, identity *models.Identity, postID int) error {
	if identity == nil {
		return models.ErrUnauthenticated
	}
	if !identity.IsAdmin {
		return models.ErrForbidden
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info("post deleted", zap.Int("postId", postID), zap.Int("adminId", identity.ID))
	return nil
}

// AddComment adds a comment to an existing post for the authenticated caller
func (s *contentService) AddComment(ctx context.Context, identity *models.Identity, postID int, content string) error {
	if identity == nil {
		return models.ErrUnauthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("comment content is required: %w", models.ErrValidation)
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrNotFound
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  identity.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	return s.commentRepo.Create(ctx, comment)
}

// filterImages caps the attachment list and drops entries that do not carry
// a data-URL image payload
func filterImages(images []string) []string {
	if len(images) > models.MaxPostImages {
		images = images[:models.MaxPostImages]
	}

	var valid []string
	for _, img := range images {
		if strings.HasPrefix(img, "data:image") {
			valid = append(valid, img)
		}
	}
	return valid
}
