package setup

import (
	"github.com/otoboard/otoboard/internal/config"
	"github.com/otoboard/otoboard/internal/handler"
	"github.com/otoboard/otoboard/internal/jwt"
	"github.com/otoboard/otoboard/internal/middleware"
	"github.com/otoboard/otoboard/internal/service"
	"github.com/otoboard/otoboard/internal/service/utils"
	"github.com/otoboard/otoboard/internal/store/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	aggregate := service.NewAggregate(storage)
	likes := service.NewLike(storage)
	composer := service.NewComposer(storage, &utils.CommentValidator{MaxLength: cfg.Public.MaxCommentLength})
	settings := service.NewSettings(storage)

	h := handler.New(aggregate, likes, composer, settings, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
