package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig collects the settings needed to run the blog server.
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabaseURL   string
	SessionSecret string
	GinMode       string
	TemplateGlob  string
	StaticDir     string
	SiteName      string
	AdminName     string
	AdminEmail    string
	AdminPassword string
	MailUsername  string
	MailPassword  string
}

const defaultSessionSecret = "blogfolio-dev-secret"

// Load reads the application config from the environment, applying safe defaults.
// A .env file in the working directory is loaded first when it exists.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	port := env("PORT", "5000")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if sessionSecret == "" {
		sessionSecret = env("SESSION_SECRET", defaultSessionSecret)
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabaseURL:   env("DATABASE_URL", "sqlite:///blog.db"),
		SessionSecret: sessionSecret,
		GinMode:       env("GIN_MODE", "release"),
		TemplateGlob:  env("TEMPLATE_GLOB", "web/template/*.html"),
		StaticDir:     env("STATIC_DIR", "web/static"),
		SiteName:      env("SITE_NAME", "Blogfolio"),
		AdminName:     env("ADMIN_NAME", ""),
		AdminEmail:    env("ADMIN_EMAIL", ""),
		AdminPassword: env("ADMIN_PASSWORD", ""),
		MailUsername:  env("MAIL_USERNAME", ""),
		MailPassword:  env("MAIL_PASSWORD", ""),
	}
}

// UsesDefaultSecret reports whether the session secret was left at its development value.
func (c AppConfig) UsesDefaultSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func env(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
