package commands

import (
	"fmt"
	"log"

	"github.com/blogfolio/internal/db"
	"github.com/blogfolio/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address, overrides LISTEN_ADDR/PORT")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.EnsureAdmin(db.DB, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	if cfg.UsesDefaultSecret() {
		log.Println("warning: SECRET_KEY is not set, sessions are signed with the development secret")
	}
	if cfg.MailUsername != "" {
		log.Printf("mail credentials configured for %s", cfg.MailUsername)
	}

	r := router.SetupRouter(db.DB, cfg)
	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}
