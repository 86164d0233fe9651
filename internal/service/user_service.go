package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blogfolio/internal/auth"
	"github.com/blogfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownEmail   = errors.New("no account with that email")
	ErrBadPassword    = errors.New("password does not match")
	ErrUserNotFound   = errors.New("user not found")
)

// UserService handles account registration and credential checks.
type UserService struct {
	db *gorm.DB
}

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register creates an account with a hashed password. The first account ever
// registered becomes the admin.
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	email := db.NormalizeEmail(input.Email)

	exists, err := s.emailExists(s.db, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Role:     db.RoleUser,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Role = db.RoleAdmin
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		// a concurrent registration can still win the race to the unique index
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate resolves the account for email and verifies its password.
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", db.NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrBadPassword
	}

	return &user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Count returns the number of registered accounts.
func (s *UserService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *UserService) emailExists(tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := tx.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// isUniqueViolation recognises unique constraint failures from sqlite and postgres.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
