package application_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/mocks"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

type commentDeps struct {
	comments *mocks.CommentRepository
	articles *mocks.ArticleRepository
	users    *mocks.UserRepository
}

func newCommentService(t *testing.T) (*application.CommentService, commentDeps) {
	d := commentDeps{
		comments: mocks.NewCommentRepository(t),
		articles: mocks.NewArticleRepository(t),
		users:    mocks.NewUserRepository(t),
	}
	return application.NewCommentService(d.comments, d.articles, d.users, quietLogger()), d
}

func publishedArticle() *entity.Article {
	return &entity.Article{ID: "a1", AuthorID: "owner", Published: true}
}

func comment(id, parent, author string) *entity.Comment {
	c := &entity.Comment{ID: id, ArticleID: "a1", AuthorID: author, Content: "texte " + id, Approved: true}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func TestTreeNestsReplies(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)

	flat := []*entity.Comment{comment("c3", "c2", "u1"), comment("c2", "c1", "u2"), comment("c1", "", "u1")}
	d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)
	d.comments.On("ListByArticle", ctx, "a1").Return(flat, nil)
	d.users.On("GetManyByIDs", ctx, []string{"u1", "u2"}).Return(map[string]*entity.User{
		"u1": {ID: "u1", Username: "neo"},
		"u2": {ID: "u2", Username: "trinity"},
	}, nil)

	roots, err := svc.Tree(ctx, "a1", "", false)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "c1", roots[0].ID)
	require.Len(t, roots[0].Responses, 1)
	assert.Equal(t, "trinity", roots[0].Responses[0].Author.Username)
	require.Len(t, roots[0].Responses[0].Responses, 1)
	assert.Empty(t, roots[0].Responses[0].Responses[0].Responses)
}

func TestTreeApprovedOnly(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)

	hidden := comment("c1", "", "u1")
	hidden.Approved = false
	d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)
	d.comments.On("ListByArticle", ctx, "a1").Return([]*entity.Comment{comment("c2", "c1", "u2"), hidden}, nil)
	d.users.On("GetManyByIDs", ctx, []string{"u2"}).Return(map[string]*entity.User{}, nil)

	roots, err := svc.Tree(ctx, "a1", "", true)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "c2", roots[0].ID)
}

func TestTreeOfDraftIsForbiddenToOthers(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	a := publishedArticle()
	a.Published = false
	d.articles.On("GetByID", ctx, "a1").Return(a, nil)

	_, err := svc.Tree(ctx, "a1", "stranger", false)
	requireKind(t, err, apperror.KindForbidden, http.StatusForbidden)
}

func TestCreateOnDraftIsForbidden(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	a := publishedArticle()
	a.Published = false
	d.articles.On("GetByID", ctx, "a1").Return(a, nil)

	_, err := svc.Create(ctx, "a1", "u1", "Bonjour", nil)
	ae := requireKind(t, err, apperror.KindForbidden, http.StatusForbidden)
	assert.Equal(t, "Impossible de commenter un article non publié", ae.Message)
	assert.Equal(t, []string{"Cet article n'est pas encore publié"}, ae.Errors)
	d.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOnMissingArticle(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	d.articles.On("GetByID", ctx, "zz").Return(nil, repo.ErrNotFound)

	_, err := svc.Create(ctx, "zz", "u1", "Bonjour", nil)
	requireKind(t, err, apperror.KindNotFound, http.StatusNotFound)
}

func TestCreateRejectsParentFromOtherArticle(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	foreign := comment("p1", "", "u2")
	foreign.ArticleID = "a2"

	d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)
	d.comments.On("GetByID", ctx, "p1").Return(foreign, nil)
	d.comments.On("GetByID", ctx, "gone").Return(nil, repo.ErrNotFound)

	for _, parent := range []string{"p1", "gone"} {
		_, err := svc.Create(ctx, "a1", "u1", "Une réponse", strPtr(parent))
		requireKind(t, err, apperror.KindValidationFailed, http.StatusBadRequest)
	}
	d.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReply(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)

	d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)
	d.comments.On("GetByID", ctx, "p1").Return(comment("p1", "", "u2"), nil)
	d.comments.On("Create", ctx, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.Content == "Une réponse" && c.Parent() == "p1" && c.AuthorID == "u1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Comment).ID = "c9"
	}).Return(nil)
	d.users.On("GetManyByIDs", ctx, []string{"u1"}).Return(map[string]*entity.User{"u1": {ID: "u1"}}, nil)

	c, err := svc.Create(ctx, "a1", "u1", "<i>Une réponse</i>", strPtr("p1"))
	require.NoError(t, err)
	assert.Equal(t, "c9", c.ID)
	assert.NotNil(t, c.Author)
}

func TestCreateValidatesContent(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)

	_, err := svc.Create(ctx, "a1", "u1", "<p></p>", nil)
	ae := requireKind(t, err, apperror.KindValidationFailed, http.StatusBadRequest)
	assert.Equal(t, "Le contenu est obligatoire", ae.Message)
}

func TestUpdateByNonAuthorIsForbidden(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	d.comments.On("GetByID", ctx, "c1").Return(comment("c1", "", "u1"), nil)

	_, err := svc.Update(ctx, "a1", "c1", "u2", "Modifié")
	requireKind(t, err, apperror.KindForbidden, http.StatusForbidden)
	d.comments.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCommentOfOtherArticleIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	d.comments.On("GetByID", ctx, "c1").Return(comment("c1", "", "u1"), nil)

	_, err := svc.Update(ctx, "a2", "c1", "u1", "Modifié")
	requireKind(t, err, apperror.KindNotFound, http.StatusNotFound)
}

func TestDeleteOwnComment(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	d.comments.On("GetByID", ctx, "c1").Return(comment("c1", "", "u1"), nil)
	d.comments.On("Delete", ctx, "c1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "a1", "c1", "u1"))
}

func TestCountByAuthorScopes(t *testing.T) {
	ctx := context.Background()
	svc, d := newCommentService(t)
	d.comments.On("CountByAuthor", ctx, "u1").Return(int64(7), nil)
	d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)
	d.comments.On("ListByArticle", ctx, "a1").Return([]*entity.Comment{
		comment("c1", "", "u1"), comment("c2", "c1", "u2"), comment("c3", "c1", "u1"),
	}, nil)

	n, err := svc.CountByAuthor(ctx, "a1", "u1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = svc.CountByAuthor(ctx, "a1", "u1", application.CountScopeArticle)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestModeration(t *testing.T) {
	ctx := context.Background()

	t.Run("report", func(t *testing.T) {
		svc, d := newCommentService(t)
		reported := comment("c1", "", "u1")
		reported.Reported, reported.Approved = true, false
		d.comments.On("GetByID", ctx, "c1").Return(comment("c1", "", "u1"), nil)
		d.comments.On("SetModeration", ctx, "c1", true, false).Return(reported, nil)
		d.users.On("GetManyByIDs", ctx, []string{"u1"}).Return(map[string]*entity.User{}, nil)

		c, err := svc.Report(ctx, "a1", "c1")
		require.NoError(t, err)
		assert.True(t, c.Reported)
	})

	t.Run("approve needs article author", func(t *testing.T) {
		svc, d := newCommentService(t)
		d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)

		_, err := svc.Approve(ctx, "a1", "c1", "u1")
		requireKind(t, err, apperror.KindForbidden, http.StatusForbidden)
	})

	t.Run("approve", func(t *testing.T) {
		svc, d := newCommentService(t)
		d.articles.On("GetByID", ctx, "a1").Return(publishedArticle(), nil)
		d.comments.On("GetByID", ctx, "c1").Return(comment("c1", "", "u1"), nil)
		d.comments.On("SetModeration", ctx, "c1", false, true).Return(comment("c1", "", "u1"), nil)
		d.users.On("GetManyByIDs", ctx, []string{"u1"}).Return(map[string]*entity.User{}, nil)

		c, err := svc.Approve(ctx, "a1", "c1", "owner")
		require.NoError(t, err)
		assert.True(t, c.Approved)
	})
}
