package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/metrics"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const (
	articleImageFolder = "articles"
	defaultPageSize    = 10
	maxPageSize        = 50
	searchHitLimit     = 500
)

const (
	msgDraftForbidden   = "Accès refusé. Cet article n'est pas publié."
	msgDraftsNeedAuth   = "Accès refusé. Authentification requise pour voir vos brouillons."
	msgNotArticleAuthor = "Accès refusé. Vous n'êtes pas l'auteur de cet article."
)

type ArticleService struct {
	Articles repo.ArticleRepository

	// Index is optional; listing falls back to SQL matching without it.
	Index   repo.ArticleIndex
	Storage ObjectStorage
	Authors authorLoader
	Logger  *logrus.Logger
}

func NewArticleService(articles repo.ArticleRepository, users repo.UserRepository, index repo.ArticleIndex, storage ObjectStorage, logger *logrus.Logger) *ArticleService {
	return &ArticleService{
		Articles: articles,
		Index:    index,
		Storage:  storage,
		Authors:  authorLoader{users: users},
		Logger:   logger,
	}
}

// ArticleQuery holds listing parameters as received from the client.
type ArticleQuery struct {
	Category   string
	Author     string
	Search     string
	Sort       string
	Page       int
	Limit      int
	ShowDrafts bool
}

type ArticlePage struct {
	Items []*entity.Article
	Total int
	Page  int
}

func (s *ArticleService) List(ctx context.Context, q ArticleQuery, viewerID string) (*ArticlePage, error) {
	if q.ShowDrafts && viewerID == "" {
		return nil, apperror.Forbidden(msgDraftsNeedAuth)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}

	f := repo.ArticleFilter{
		Category: q.Category,
		AuthorID: q.Author,
		Sort:     repo.ArticleSort(q.Sort),
		Limit:    q.Limit,
		Offset:   (q.Page - 1) * q.Limit,
	}
	if f.AuthorID == "me" {
		if viewerID == "" {
			return nil, apperror.Unauthenticated()
		}
		f.AuthorID = viewerID
	}
	published := true
	if q.ShowDrafts {
		published = false
		f.AuthorID = viewerID
	}
	f.Published = &published

	if search := strings.TrimSpace(q.Search); search != "" {
		f.Search = search
		// Drafts are never indexed.
		if s.Index != nil && !q.ShowDrafts {
			ids, err := s.Index.Search(ctx, search, searchHitLimit)
			if err != nil {
				s.Logger.WithError(err).Warn("article search failed, using sql matching")
			} else {
				f.IDs = append(make([]string, 0, len(ids)), ids...)
			}
		}
	}

	items, total, err := s.Articles.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.Authors.articles(ctx, items...); err != nil {
		return nil, apperror.Internal(err)
	}
	return &ArticlePage{Items: items, Total: total, Page: q.Page}, nil
}

func (s *ArticleService) find(ctx context.Context, id string) (*entity.Article, error) {
	a, err := s.Articles.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgArticleNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return a, nil
}

func (s *ArticleService) owned(ctx context.Context, id, viewerID string) (*entity.Article, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(viewerID) {
		return nil, apperror.Forbidden(msgNotArticleAuthor)
	}
	return a, nil
}

// Get returns a readable article and counts the view.
func (s *ArticleService) Get(ctx context.Context, id, viewerID string) (*entity.Article, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.VisibleTo(viewerID) {
		return nil, apperror.Forbidden(msgDraftForbidden)
	}
	views, err := s.Articles.IncrementViews(ctx, a.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	a.Views = views
	if err := s.Authors.articles(ctx, a); err != nil {
		return nil, apperror.Internal(err)
	}
	return a, nil
}

type ArticleInput struct {
	Title     string
	Content   string
	Category  string
	Published bool
	Image     *helpers.ImageUpload
}

func (s *ArticleService) Create(ctx context.Context, authorID string, in ArticleInput) (*entity.Article, error) {
	a := &entity.Article{
		Title:     helpers.SanitizeText(in.Title),
		Content:   helpers.SanitizeText(in.Content),
		Category:  in.Category,
		Published: in.Published,
		AuthorID:  authorID,
	}
	if err := validateArticle(a); err != nil {
		return nil, err
	}
	if in.Image != nil {
		if err := s.attachImage(ctx, a, in.Image); err != nil {
			return nil, err
		}
	}

	if err := s.Articles.Create(ctx, a); err != nil {
		s.removeImage(ctx, a.ImageObject)
		return nil, apperror.Internal(err)
	}
	metrics.ObserveArticleCreated(a.Published)
	s.reindex(ctx, a)

	if err := s.Authors.articles(ctx, a); err != nil {
		return nil, apperror.Internal(err)
	}
	return a, nil
}

// ArticlePatch is a partial update. Author and views are not editable.
type ArticlePatch struct {
	Title    *string
	Content  *string
	Category *string
	Image    *helpers.ImageUpload
}

func (s *ArticleService) Update(ctx context.Context, id, viewerID string, in ArticlePatch) (*entity.Article, error) {
	a, err := s.owned(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		a.Title = helpers.SanitizeText(*in.Title)
	}
	if in.Content != nil {
		a.Content = helpers.SanitizeText(*in.Content)
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if err := validateArticle(a); err != nil {
		return nil, err
	}

	oldObject := ""
	if in.Image != nil {
		oldObject = a.ImageObject
		if err := s.attachImage(ctx, a, in.Image); err != nil {
			return nil, err
		}
	}

	if err := s.Articles.Update(ctx, a); err != nil {
		if in.Image != nil {
			s.removeImage(ctx, a.ImageObject)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgArticleNotFound)
		}
		return nil, apperror.Internal(err)
	}
	s.removeImage(ctx, oldObject)
	s.reindex(ctx, a)

	if err := s.Authors.articles(ctx, a); err != nil {
		return nil, apperror.Internal(err)
	}
	return a, nil
}

func (s *ArticleService) SetPublished(ctx context.Context, id, viewerID string, published bool) (*entity.Article, error) {
	if _, err := s.owned(ctx, id, viewerID); err != nil {
		return nil, err
	}
	a, err := s.Articles.SetPublished(ctx, id, published)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgArticleNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.reindex(ctx, a)

	if err := s.Authors.articles(ctx, a); err != nil {
		return nil, apperror.Internal(err)
	}
	return a, nil
}

// Delete removes the article and its comments. The stored image and the
// search document are cleaned up best-effort.
func (s *ArticleService) Delete(ctx context.Context, id, viewerID string) error {
	a, err := s.owned(ctx, id, viewerID)
	if err != nil {
		return err
	}
	if err := s.Articles.Delete(ctx, a.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound(msgArticleNotFound)
		}
		return apperror.Internal(err)
	}
	s.removeImage(ctx, a.ImageObject)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, a.ID); err != nil {
			s.Logger.WithError(err).WithField("article_id", a.ID).Warn("remove article from index failed")
		}
	}
	return nil
}

// CountByAuthor counts published articles, or all of them when the viewer is the author.
func (s *ArticleService) CountByAuthor(ctx context.Context, authorID, viewerID string) (int64, error) {
	n, err := s.Articles.CountByAuthor(ctx, authorID, authorID == viewerID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (s *ArticleService) ViewsByAuthor(ctx context.Context, authorID string) (int64, error) {
	n, err := s.Articles.SumViewsByAuthor(ctx, authorID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (s *ArticleService) attachImage(ctx context.Context, a *entity.Article, img *helpers.ImageUpload) error {
	obj, err := s.Storage.Put(ctx, articleImageFolder, img.Filename, img.ContentType, img.Reader())
	if err != nil {
		return apperror.Internal(err)
	}
	a.ImageURL = obj.URL
	a.ImageObject = obj.Object
	a.ImageName = obj.Name
	a.ImageExtension = obj.Extension
	return nil
}

func (s *ArticleService) removeImage(ctx context.Context, object string) {
	if object == "" {
		return
	}
	if err := s.Storage.Remove(ctx, object); err != nil {
		s.Logger.WithError(err).WithField("object", object).Warn("delete stored image failed")
	}
}

func (s *ArticleService) reindex(ctx context.Context, a *entity.Article) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("article_id", a.ID).Warn("index article failed")
	}
}

// validateArticle re-checks lengths after sanitization, which may shorten the text.
func validateArticle(a *entity.Article) error {
	var errs []string
	if n := utf8.RuneCountInString(a.Title); n < 3 || n > 150 {
		errs = append(errs, "title: doit contenir entre 3 et 150 caractères")
	}
	if n := utf8.RuneCountInString(a.Content); n < 20 || n > 2000 {
		errs = append(errs, "content: doit contenir entre 20 et 2000 caractères")
	}
	if !isCategory(a.Category) {
		errs = append(errs, "category: valeur non autorisée")
	}
	if len(errs) > 0 {
		return apperror.Validation(msgValidation, errs...)
	}
	return nil
}

func isCategory(c string) bool {
	for _, v := range entity.Categories {
		if v == c {
			return true
		}
	}
	return false
}
