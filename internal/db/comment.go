package db

import "time"

// Comment is a reader's note attached to a post.
type Comment struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Text      string `gorm:"type:text;not null"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	PostID    uint   `gorm:"not null;index"`
	Post      *Post  `gorm:"foreignKey:PostID"`
}

// TableName maps comments onto the comments table.
func (Comment) TableName() string {
	return "comments"
}
