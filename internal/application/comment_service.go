package application

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/domain/thread"
	"github.com/oksasatya/go-ddd-blog/internal/metrics"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const msgNotCommentAuthor = "Accès refusé. Vous n'êtes pas l'auteur de ce commentaire."

// CountScopeArticle restricts an author count to one article.
const CountScopeArticle = "article"

type CommentService struct {
	Comments repo.CommentRepository
	Articles repo.ArticleRepository
	Authors  authorLoader
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, articles repo.ArticleRepository, users repo.UserRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Articles: articles, Authors: authorLoader{users: users}, Logger: logger}
}

func (s *CommentService) article(ctx context.Context, id string) (*entity.Article, error) {
	a, err := s.Articles.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgArticleNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return a, nil
}

// Tree returns the reply forest of a readable article. With approvedOnly,
// unapproved comments are dropped before threading, so their replies surface as roots.
func (s *CommentService) Tree(ctx context.Context, articleID, viewerID string, approvedOnly bool) ([]*thread.Node, error) {
	a, err := s.article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !a.VisibleTo(viewerID) {
		return nil, apperror.Forbidden(msgDraftForbidden)
	}

	comments, err := s.Comments.ListByArticle(ctx, a.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if approvedOnly {
		comments = thread.Approved(comments)
	}
	if err := s.Authors.comments(ctx, comments...); err != nil {
		return nil, apperror.Internal(err)
	}
	return thread.Build(comments), nil
}

func (s *CommentService) Create(ctx context.Context, articleID, authorID, content string, parentID *string) (*entity.Comment, error) {
	a, err := s.article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !a.Published {
		return nil, apperror.Forbidden("Impossible de commenter un article non publié", "Cet article n'est pas encore publié")
	}

	c := &entity.Comment{
		Content:   helpers.SanitizeText(content),
		AuthorID:  authorID,
		ArticleID: a.ID,
	}
	if err := validateComment(c.Content); err != nil {
		return nil, err
	}

	if parentID != nil && *parentID != "" {
		parent, err := s.Comments.GetByID(ctx, *parentID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		if parent == nil || parent.ArticleID != a.ID {
			return nil, apperror.Validation(msgValidation, "comment: le commentaire parent n'appartient pas à cet article")
		}
		c.ParentID = &parent.ID
	}

	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	metrics.ObserveCommentCreated(c.ParentID != nil)

	if err := s.Authors.comments(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	return c, nil
}

// CountByAuthor counts the author's comments globally, or within articleID
// when scope is CountScopeArticle.
func (s *CommentService) CountByAuthor(ctx context.Context, articleID, authorID, scope string) (int64, error) {
	if scope != CountScopeArticle {
		n, err := s.Comments.CountByAuthor(ctx, authorID)
		if err != nil {
			return 0, apperror.Internal(err)
		}
		return n, nil
	}

	if _, err := s.article(ctx, articleID); err != nil {
		return 0, err
	}
	comments, err := s.Comments.ListByArticle(ctx, articleID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return int64(thread.CountByAuthor(comments, authorID)), nil
}

// inArticle loads a comment and checks that it belongs to articleID.
func (s *CommentService) inArticle(ctx context.Context, articleID, commentID string) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, commentID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgCommentNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c.ArticleID != articleID {
		return nil, apperror.NotFound(msgCommentNotFound)
	}
	return c, nil
}

func (s *CommentService) owned(ctx context.Context, articleID, commentID, viewerID string) (*entity.Comment, error) {
	c, err := s.inArticle(ctx, articleID, commentID)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(viewerID) {
		return nil, apperror.Forbidden(msgNotCommentAuthor)
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, articleID, commentID, viewerID, content string) (*entity.Comment, error) {
	if _, err := s.owned(ctx, articleID, commentID, viewerID); err != nil {
		return nil, err
	}
	content = helpers.SanitizeText(content)
	if err := validateComment(content); err != nil {
		return nil, err
	}
	c, err := s.Comments.UpdateContent(ctx, commentID, content)
	return s.finish(ctx, c, err)
}

// Delete removes only the comment. Its replies keep their parent id and
// render as roots afterwards.
func (s *CommentService) Delete(ctx context.Context, articleID, commentID, viewerID string) error {
	if _, err := s.owned(ctx, articleID, commentID, viewerID); err != nil {
		return err
	}
	if err := s.Comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound(msgCommentNotFound)
		}
		return apperror.Internal(err)
	}
	return nil
}

// Report flags a comment and withdraws it from the approved listing.
func (s *CommentService) Report(ctx context.Context, articleID, commentID string) (*entity.Comment, error) {
	if _, err := s.inArticle(ctx, articleID, commentID); err != nil {
		return nil, err
	}
	c, err := s.Comments.SetModeration(ctx, commentID, true, false)
	return s.finish(ctx, c, err)
}

// Approve is reserved to the article author and clears any report.
func (s *CommentService) Approve(ctx context.Context, articleID, commentID, viewerID string) (*entity.Comment, error) {
	a, err := s.article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(viewerID) {
		return nil, apperror.Forbidden(msgNotArticleAuthor)
	}
	if _, err := s.inArticle(ctx, articleID, commentID); err != nil {
		return nil, err
	}
	c, err := s.Comments.SetModeration(ctx, commentID, false, true)
	return s.finish(ctx, c, err)
}

func (s *CommentService) finish(ctx context.Context, c *entity.Comment, err error) (*entity.Comment, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgCommentNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.Authors.comments(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	return c, nil
}

func validateComment(content string) error {
	if content == "" {
		return apperror.Validation("Le contenu est obligatoire", "content: champ obligatoire")
	}
	if n := utf8.RuneCountInString(content); n < 2 || n > 500 {
		return apperror.Validation(msgValidation, "content: doit contenir entre 2 et 500 caractères")
	}
	return nil
}
