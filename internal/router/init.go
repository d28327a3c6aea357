package router

import (
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/container"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	esinfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/notification"
	pginfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/internal/router/modules"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type repositories struct {
	Users    repository.UserRepository
	Articles repository.ArticleRepository
	Comments repository.CommentRepository
}

func buildRepositories() repositories {
	pool := container.GetPGPool()
	return repositories{
		Users:    pginfra.NewUserRepository(pool),
		Articles: pginfra.NewArticleRepository(pool),
		Comments: pginfra.NewCommentRepository(pool),
	}
}

// Optional backends stay nil interfaces when not configured.
func articleIndex() repository.ArticleIndex {
	es := container.GetES()
	if es == nil {
		return nil
	}
	return esinfra.NewArticleIndex(es, container.GetConfig().ESArticlesIndex)
}

func emailPublisher() notification.Publisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}

// InitModules wires repositories, services and handlers from the container
// and adds every module to the registry. Call once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	storage := container.GetStorage()
	repos := buildRepositories()

	guard := middleware.NewGuard(jwt, repos.Users)
	notifier := notification.NewQueueNotifier(cfg, emailPublisher(), logger)

	authSvc := application.NewAuthService(repos.Users, jwt, notifier, logger, cfg.ResetPasswordURL)
	userSvc := application.NewUserService(repos.Users, storage, logger)
	articleSvc := application.NewArticleService(repos.Articles, repos.Users, articleIndex(), storage, logger)
	commentSvc := application.NewCommentService(repos.Comments, repos.Articles, repos.Users, logger)

	cookies := helpers.NewTokenCookie(cfg.CookieDomain, cfg.CookieSecure, jwt.TTL)
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, cookies), guard))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, cfg.UploadMaxSize), guard))
	r.Add(modules.NewArticleModule(handlers.NewArticleHandler(articleSvc, cfg.UploadMaxSize), guard))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc), guard))
	r.AddRoot(modules.NewOpsModule(cfg.Version, cfg.MetricsEnabled))
}
