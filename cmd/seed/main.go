package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// Seeds a demo author with one published article and a small comment thread.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	articles := pginfra.NewArticleRepository(pool)
	comments := pginfra.NewCommentRepository(pool)

	email := "demo@blog.local"
	password := "password123"
	author, err := users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		hash, herr := helpers.HashPassword(password)
		if herr != nil {
			log.Fatalf("failed to hash password: %v", herr)
		}
		author = &entity.User{
			Username:     "demoUser",
			Firstname:    "Demo",
			Lastname:     "Auteur",
			Email:        email,
			PasswordHash: hash,
		}
		err = users.Create(ctx, author)
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", author.ID, email, password)

	article := &entity.Article{
		Title:     "Bienvenue sur le blog",
		Content:   "Premier article de démonstration, publié avec quelques commentaires pour tester les fils de discussion.",
		AuthorID:  author.ID,
		Category:  entity.CategoryInternet,
		Published: true,
	}
	if err := articles.Create(ctx, article); err != nil {
		log.Fatalf("failed to seed article: %v", err)
	}
	fmt.Printf("seeded article: id=%s\n", article.ID)

	root := &entity.Comment{Content: "Super article, merci !", AuthorID: author.ID, ArticleID: article.ID}
	if err := comments.Create(ctx, root); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}
	if _, err := comments.SetModeration(ctx, root.ID, false, true); err != nil {
		log.Fatalf("failed to approve comment: %v", err)
	}
	reply := &entity.Comment{Content: "Merci pour la lecture.", AuthorID: author.ID, ArticleID: article.ID, ParentID: &root.ID}
	if err := comments.Create(ctx, reply); err != nil {
		log.Fatalf("failed to seed reply: %v", err)
	}
	fmt.Printf("seeded thread: root=%s reply=%s\n", root.ID, reply.ID)
}
