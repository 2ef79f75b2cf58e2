package setup

import (
	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/email"
	"github.com/jotter-dev/jotter/internal/handler"
	"github.com/jotter-dev/jotter/internal/service"
	"github.com/jotter-dev/jotter/internal/storage/pg"
	"github.com/jotter-dev/jotter/internal/token"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Jwt     token.JwtService
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	mail := email.New(&cfg.Private.Email)
	jwt := token.New(cfg.JwtKey(), cfg.AccessTokenTTL())

	auth := service.NewAuth(storage, mail, jwt, cfg)
	note := service.NewNote(storage, cfg)
	admin := service.NewAdmin(storage, cfg)
	audit := service.NewAudit(storage)

	h := handler.New(auth, note, admin, audit, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Jwt:     jwt,
		Config:  cfg,
	}, nil
}
