package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blogfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAuthRequired = errors.New("login required to comment")
	ErrCommentEmpty = errors.New("comment text is required")
)

// CommentService stores reader comments on posts.
type CommentService struct {
	db *gorm.DB
}

// CommentInput describes a new comment.
type CommentInput struct {
	PostID   uint
	AuthorID uint
	Text     string
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create attaches a comment by the given author to the given post.
// The text is stored exactly as submitted; rendering is responsible for escaping it.
func (s *CommentService) Create(input CommentInput) (*db.Comment, error) {
	if input.AuthorID == 0 {
		return nil, ErrAuthRequired
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrCommentEmpty
	}

	var count int64
	if err := s.db.Model(&db.Post{}).Where("id = ?", input.PostID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := db.Comment{
		Text:     input.Text,
		AuthorID: input.AuthorID,
		PostID:   input.PostID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return &comment, nil
}

// ListForPost returns the comments of a post in the order they were written.
func (s *CommentService) ListForPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Preload("Author").Where("post_id = ?", postID).Order("id asc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
