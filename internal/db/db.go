package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide database handle set by Init.
var DB *gorm.DB

const defaultDatabaseURL = "sqlite:///blog.db"

// Init opens the database addressed by databaseURL, migrates the schema and
// stores the handle in DB. An empty URL falls back to a local blog.db file.
func Init(databaseURL string) error {
	gdb, err := Open(databaseURL, &gorm.Config{Logger: defaultLogger()})
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Open connects to sqlite or postgres depending on the URL scheme.
func Open(databaseURL string, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}

	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		raw = defaultDatabaseURL
	}

	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		gdb, err := gorm.Open(postgres.Open(raw), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return gdb, nil
	}

	dsn := sqliteDSN(raw)
	if !strings.HasPrefix(dsn, "file:") {
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	gdb, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return gdb, nil
}

// Migrate creates or updates the tables for the blog models.
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("database not initialized")
	}
	if err := gdb.AutoMigrate(&User{}, &Post{}, &Comment{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// sqliteDSN strips the sqlite:// scheme used by DATABASE_URL.
// sqlite:///blog.db and sqlite://blog.db both address the relative file blog.db,
// sqlite:////var/lib/blog.db addresses an absolute path.
func sqliteDSN(raw string) string {
	if !strings.HasPrefix(raw, "sqlite://") {
		return raw
	}
	path := strings.TrimPrefix(raw, "sqlite://")
	if strings.HasPrefix(path, "//") {
		return path[1:]
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return "blog.db"
	}
	return path
}

// withForeignKeys turns on foreign key enforcement for every pooled sqlite connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func defaultLogger() logger.Interface {
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
