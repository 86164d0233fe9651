package db

import "time"

// Post is a blog entry. Deleting a post removes it and its comments for good.
type Post struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string    `gorm:"size:250;uniqueIndex;not null"`
	Subtitle  string    `gorm:"size:250;not null"`
	Date      string    `gorm:"size:250;not null"`
	Body      string    `gorm:"type:text;not null"`
	ImgURL    string    `gorm:"column:img_url;size:250;not null"`
	AuthorID  uint      `gorm:"not null;index"`
	Author    User      `gorm:"foreignKey:AuthorID"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// TableName maps posts onto the blog_posts table.
func (Post) TableName() string {
	return "blog_posts"
}
