package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

// postRepository implements the content service's PostRepository
type postRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sql.DB, logger *zap.Logger) *postRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves post summaries ordered by descending id, optionally filtered
// by exact category and by a case-insensitive substring match against title or
// content. The thumbnail is the earliest-inserted image of each post.
func (r *postRepository) List(ctx context.Context, category, search string) ([]models.PostSummary, error) {
	filter := &queryFilter{}
	if category != "" {
		filter.Add("p.category = ?", category)
	}
	if search != "" {
		like := "%" + search + "%"
		filter.Add("(LOWER(p.title) LIKE LOWER(?) OR LOWER(p.content) LIKE LOWER(?))", like, like)
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.category, p.created_at,
		       u.username,
		       (SELECT pi.data FROM post_images pi WHERE pi.post_id = p.id ORDER BY pi.id ASC LIMIT 1) AS thumbnail
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		%s
		ORDER BY p.id DESC
	`, filter.Where())

	rows, err := r.db.QueryContext(ctx, query, filter.Args()...)
	if err != nil {
		r.logger.Error("failed to query posts", zap.Error(err))
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.PostSummary
	for rows.Next() {
		var post models.PostSummary
		var author, thumbnail sql.NullString
		if err := rows.Scan(&post.ID, &post.Title, &post.Category, &post.CreatedAt, &author, &thumbnail); err != nil {
			r.logger.Error("failed to scan post summary", zap.Error(err))
			return nil, fmt.Errorf("failed to scan post summary: %w", err)
		}
		if author.Valid {
			post.Author = &author.String
		}
		if thumbnail.Valid {
			post.Thumbnail = &thumbnail.String
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, nil
}

// Create inserts a post and its images in a single transaction so a failure
// cannot leave a post with half its attachments
func (r *postRepository) Create(ctx context.Context, post *models.Post, images []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (title, content, category, author_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query, post.Title, post.Content, post.Category, post.AuthorID, post.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	post.ID = int(id)

	if len(images) > 0 {
		placeholders := make([]string, len(images))
		args := make([]any, 0, len(images)*2)
		for i, data := range images {
			placeholders[i] = "(?, ?)"
			args = append(args, post.ID, data)
		}

		imageQuery := fmt.Sprintf(`
			INSERT INTO post_images (post_id, data)
			VALUES %s
		`, strings.Join(placeholders, ","))

		if _, err := tx.ExecContext(ctx, imageQuery, args...); err != nil {
			r.logger.Error("failed to create post images", zap.Error(err), zap.Int("postId", post.ID))
			return fmt.Errorf("failed to create post images: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a post with its author's username
func (r *postRepository) GetByID(ctx context.Context, postID int) (*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.category, p.created_at, u.username
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		WHERE p.id = ?
		LIMIT 1
	`

	post := &models.Post{}
	var author sql.NullString
	err := r.db.QueryRowContext(ctx, query, postID).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Category,
		&post.CreatedAt,
		&author,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get post by id", zap.Error(err), zap.Int("postId", postID))
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if author.Valid {
		post.Author = &author.String
	}

	return post, nil
}

// GetImages retrieves a post's images ordered by insertion
func (r *postRepository) GetImages(ctx context.Context, postID int) ([]models.PostImage, error) {
	query := `
		SELECT id, data
		FROM post_images
		WHERE post_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		r.logger.Error("failed to query post images", zap.Error(err), zap.Int("postId", postID))
		return nil, fmt.Errorf("failed to query post images: %w", err)
	}
	defer rows.Close()

	var images []models.PostImage
	for rows.Next() {
		var image models.PostImage
		if err := rows.Scan(&image.ID, &image.Data); err != nil {
			return nil, fmt.Errorf("failed to scan post image: %w", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

// Exists checks if a post with the given id exists
func (r *postRepository) Exists(ctx context.Context, postID int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM posts WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, postID).Scan(&exists); err != nil {
		r.logger.Error("failed to check post existence", zap.Error(err), zap.Int("postId", postID))
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}

	return exists, nil
}

// Delete removes a post together with its images and comments in one
// all-or-nothing transaction
func (r *postRepository) Delete(ctx context.Context, postID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_images WHERE post_id = ?`, postID); err != nil {
		r.logger.Error("failed to delete post images", zap.Error(err), zap.Int("postId", postID))
		return fmt.Errorf("failed to delete post images: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, postID); err != nil {
		r.logger.Error("failed to delete post comments", zap.Error(err), zap.Int("postId", postID))
		return fmt.Errorf("failed to delete post comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID)
	if err != nil {
		r.logger.Error("failed to delete post", zap.Error(err), zap.Int("postId", postID))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
