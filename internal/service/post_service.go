package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrDuplicateTitle = errors.New("a post with this title already exists")
)

// PostDateLayout renders the publication date as "Month DD, YYYY".
const PostDateLayout = "January 02, 2006"

// PostService wraps post related database operations.
type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

// PostInput represents the editable fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
	AuthorID uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb, now: time.Now}
}

// List returns every post in insertion order with its author.
func (s *PostService) List() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Preload("Author").Order("id asc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post with its author and comments.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	err := s.db.
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("comments.id asc") }).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a new post stamped with today's date.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)

	taken, err := s.titleTaken(title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	post := db.Post{
		Title:    title,
		Subtitle: strings.TrimSpace(input.Subtitle),
		Body:     input.Body,
		ImgURL:   strings.TrimSpace(input.ImgURL),
		AuthorID: input.AuthorID,
		Date:     s.now().Format(PostDateLayout),
	}

	if err := s.db.Create(&post).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	return &post, nil
}

// Update overwrites title, subtitle, image and body. Author, date and id stay as they were.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	taken, err := s.titleTaken(title, existing.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	existing.Title = title
	existing.Subtitle = strings.TrimSpace(input.Subtitle)
	existing.ImgURL = strings.TrimSpace(input.ImgURL)
	existing.Body = input.Body

	if err := s.db.Save(&existing).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	return &existing, nil
}

// Delete removes a post together with its comments.
func (s *PostService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&db.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

func (s *PostService) titleTaken(title string, exceptID uint) (bool, error) {
	query := s.db.Model(&db.Post{}).Where("title = ?", title)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
