// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "SeededPass12!@"

// Run populates the database with demo users, posts, comments and
// reactions. The denormalized engagement counters are written to match
// the seeded rows exactly.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 40
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		name := gofakeit.Name()
		user := &models.User{
			Name:     name,
			Email:    fmt.Sprintf("%s%d@example.com", slugFragment(name), i),
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		title := strings.TrimSuffix(gofakeit.Sentence(5), ".")
		post := &models.Post{
			Title:       title,
			Content:     gofakeit.Paragraph(2, 4, 8, "\n"),
			Slug:        fmt.Sprintf("%s-%d", models.Slugify(title), i),
			AuthorID:    author.ID,
			Categories:  models.StringList{randomCategory(r)},
			Tags:        models.StringList{gofakeit.Word(), gofakeit.Word()},
			IsPublished: r.Intn(10) > 0,
			CreatedAt: time.Now().Add(
				-time.Duration(r.Intn(365*24)) * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("seeded %d posts", len(posts))

	var comments, reactions int
	for _, post := range posts {
		nComments := r.Intn(5)
		for i := 0; i < nComments; i++ {
			comment := &models.Comment{
				Text:   gofakeit.Sentence(8),
				PostID: post.ID,
				UserID: users[r.Intn(len(users))].ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			comments++
		}

		nReactions := r.Intn(len(users))
		for _, user := range users[:nReactions] {
			reaction := &models.Reaction{
				PostID: post.ID,
				UserID: user.ID,
				Kind:   models.ValidReactionKinds[r.Intn(len(models.ValidReactionKinds))],
			}
			if err := db.Create(reaction).Error; err != nil {
				return fmt.Errorf("seed reaction: %w", err)
			}
			reactions++
		}

		// Counters must agree with the rows just written.
		err := db.Model(post).UpdateColumns(map[string]any{
			"comments_count":  nComments,
			"reactions_count": nReactions,
		}).Error
		if err != nil {
			return fmt.Errorf("sync counters: %w", err)
		}
	}
	log.Printf("seeded %d comments and %d reactions", comments, reactions)

	return nil
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"reactions", "replies", "comments", "posts", "images", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func randomCategory(r *rand.Rand) string {
	return models.ValidCategories[r.Intn(len(models.ValidCategories))]
}

func slugFragment(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".")
}
