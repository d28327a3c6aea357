package application

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

// authorLoader attaches public author summaries to fetched records in one query.
type authorLoader struct {
	users repo.UserRepository
}

func (l authorLoader) load(ctx context.Context, ids []string) (map[string]*entity.Author, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	users, err := l.users.GetManyByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Author, len(users))
	for id, u := range users {
		out[id] = u.Author()
	}
	return out, nil
}

func (l authorLoader) articles(ctx context.Context, articles ...*entity.Article) error {
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.AuthorID)
	}
	authors, err := l.load(ctx, ids)
	if err != nil {
		return err
	}
	for _, a := range articles {
		a.Author = authors[a.AuthorID]
	}
	return nil
}

func (l authorLoader) comments(ctx context.Context, comments ...*entity.Comment) error {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := l.load(ctx, ids)
	if err != nil {
		return err
	}
	for _, c := range comments {
		c.Author = authors[c.AuthorID]
	}
	return nil
}
