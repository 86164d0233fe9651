package db

import (
	"errors"
	"strings"

	"github.com/blogfolio/internal/auth"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registered account. Role decides whether the account may manage posts.
type User struct {
	gorm.Model
	Email    string    `gorm:"size:250;uniqueIndex;not null"`
	Name     string    `gorm:"size:250;not null"`
	Password string    `gorm:"size:250;not null"`
	Role     string    `gorm:"size:20;not null;default:user"`
	Posts    []Post    `gorm:"foreignKey:AuthorID"`
	Comments []Comment `gorm:"foreignKey:AuthorID"`
}

// TableName keeps the table name stable across drivers.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureAdmin creates an admin account with a bcrypt hashed password when name,
// email and password are all provided and no account uses that email yet.
func EnsureAdmin(gdb *gorm.DB, name, email, password string) error {
	trimmedName := strings.TrimSpace(name)
	normalizedEmail := NormalizeEmail(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedName == "" || normalizedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("email = ?", normalizedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := auth.HashPassword(trimmedPassword)
		if err != nil {
			return err
		}

		return gdb.Create(&User{
			Name:     trimmedName,
			Email:    normalizedEmail,
			Password: hashed,
			Role:     RoleAdmin,
		}).Error
	}

	if existing.IsAdmin() {
		return nil
	}
	return gdb.Model(&existing).Update("role", RoleAdmin).Error
}
