package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

// commentRepository implements the content service's CommentRepository
type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new comment into the database
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err), zap.Int("postId", comment.PostID))
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// ListByPostID retrieves a post's comments ordered by ascending id
// (oldest first), each with its author's username
func (r *commentRepository) ListByPostID(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.content, c.created_at, u.username
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		r.logger.Error("failed to query comments", zap.Error(err), zap.Int("postId", postID))
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		var author sql.NullString
		if err := rows.Scan(&comment.ID, &comment.Content, &comment.CreatedAt, &author); err != nil {
			r.logger.Error("failed to scan comment", zap.Error(err))
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if author.Valid {
			comment.Author = &author.String
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}
