package db

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blogfolio/internal/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "relative url", in: "sqlite:///blog.db", want: "blog.db"},
		{name: "two slashes", in: "sqlite://data/blog.db", want: "data/blog.db"},
		{name: "absolute url", in: "sqlite:////var/lib/blog.db", want: "/var/lib/blog.db"},
		{name: "empty path", in: "sqlite://", want: "blog.db"},
		{name: "bare path", in: "blog.db", want: "blog.db"},
		{name: "file dsn", in: "file::memory:?cache=shared", want: "file::memory:?cache=shared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sqliteDSN(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWithForeignKeys(t *testing.T) {
	if got := withForeignKeys("blog.db"); got != "blog.db?_foreign_keys=1" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := withForeignKeys("file:x?mode=memory"); got != "file:x?mode=memory&_foreign_keys=1" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := withForeignKeys("blog.db?_fk=0"); got != "blog.db?_fk=0" {
		t.Fatalf("expected explicit setting to be kept, got %q", got)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	gdb, err := Open("sqlite:///"+filepath.Join(dir, "blog.db"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be created, stat err: %v", dir, err)
	}
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	gdb := openTestDB(t)

	if err := EnsureAdmin(gdb, "Admin", " Admin@Example.com ", "s3cret"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if err := EnsureAdmin(gdb, "Admin", "admin@example.com", "other"); err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}

	var users []User
	if err := gdb.Find(&users).Error; err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].Email != "admin@example.com" || !users[0].IsAdmin() {
		t.Fatalf("unexpected admin record: %+v", users[0])
	}
	if !auth.CheckPassword(users[0].Password, "s3cret") {
		t.Fatal("expected the first password to be kept")
	}
}

func TestEnsureAdminSkipsIncompleteInput(t *testing.T) {
	gdb := openTestDB(t)

	if err := EnsureAdmin(gdb, "Admin", "admin@example.com", " "); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}

	var count int64
	gdb.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}

func TestEnsureAdminPromotesExistingAccount(t *testing.T) {
	gdb := openTestDB(t)

	if err := gdb.Create(&User{Name: "Reader", Email: "reader@example.com", Password: "x", Role: RoleUser}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := EnsureAdmin(gdb, "Reader", "reader@example.com", "pw"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}

	var user User
	if err := gdb.Where("email = ?", "reader@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !user.IsAdmin() {
		t.Fatal("expected existing account to be promoted")
	}
}

func TestDeletingPostCascadesToComments(t *testing.T) {
	gdb := openTestDB(t)

	author := User{Name: "A", Email: "a@example.com", Password: "x"}
	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	post := Post{Title: "T", Subtitle: "S", Date: "January 02, 2006", Body: "B", ImgURL: "https://example.com/i.png", AuthorID: author.ID}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	if err := gdb.Create(&Comment{Text: "hi", AuthorID: author.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	if err := gdb.Delete(&Post{}, post.ID).Error; err != nil {
		t.Fatalf("delete post: %v", err)
	}

	var count int64
	gdb.Model(&Comment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected comments to be removed by the foreign key, found %d", count)
	}
}
