package commands

import (
	"fmt"
	"io"

	"github.com/blogfolio/internal/db"
	"github.com/blogfolio/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with demo accounts, posts and comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		return seedDemoData(db.DB, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type demoPost struct {
	title    string
	subtitle string
	imgURL   string
	body     string
	comments []string
}

var demoPosts = []demoPost{
	{
		title:    "The Life of Cactus",
		subtitle: "Who knew that cacti lived such interesting lives.",
		imgURL:   "https://images.unsplash.com/photo-1530482054429-cc491f61333b",
		body:     "Nori grape silver beet broccoli kombu beet greens fava bean potato quandong celery.\n\nBunya nuts black-eyed pea prairie turnip leek lentil turnip greens parsnip.",
		comments: []string{"Never looked at a cactus the same way again.", "More plant posts please!"},
	},
	{
		title:    "Top 15 Things to Do When You Are Bored",
		subtitle: "Are you bored? Don't know what to do? Try these top 15 activities.",
		imgURL:   "https://images.unsplash.com/photo-1520038410233-7141be7e6f97",
		body:     "Gingerbread sugar plum cheesecake tootsie roll.\n\n1. Read a book\n2. Learn **Go**\n3. Write a blog post",
	},
}

// seedDemoData registers an admin and a reader and publishes the demo posts.
// It does nothing when any account already exists.
func seedDemoData(gdb *gorm.DB, out io.Writer) error {
	users := service.NewUserService(gdb)
	count, err := users.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Fprintln(out, "accounts already exist, skipping seed")
		return nil
	}

	admin, err := users.Register(service.RegisterInput{Name: "Admin", Email: "admin@example.com", Password: "admin123"})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	reader, err := users.Register(service.RegisterInput{Name: "Reader", Email: "reader@example.com", Password: "reader123"})
	if err != nil {
		return fmt.Errorf("create reader: %w", err)
	}

	posts := service.NewPostService(gdb)
	comments := service.NewCommentService(gdb)
	for _, demo := range demoPosts {
		post, err := posts.Create(service.PostInput{
			Title:    demo.title,
			Subtitle: demo.subtitle,
			Body:     demo.body,
			ImgURL:   demo.imgURL,
			AuthorID: admin.ID,
		})
		if err != nil {
			return fmt.Errorf("create post %q: %w", demo.title, err)
		}
		for _, text := range demo.comments {
			if _, err := comments.Create(service.CommentInput{PostID: post.ID, AuthorID: reader.ID, Text: text}); err != nil {
				return fmt.Errorf("comment on %q: %w", demo.title, err)
			}
		}
	}

	fmt.Fprintln(out, "demo data created")
	fmt.Fprintln(out, "admin: admin@example.com (password: admin123)")
	fmt.Fprintln(out, "reader: reader@example.com (password: reader123)")
	return nil
}
