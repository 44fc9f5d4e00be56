package handlers

import (
	"github.com/jmoiron/sqlx"

	"easyshop/internal/auth"
	"easyshop/internal/config"
	"easyshop/internal/repos"
	"easyshop/internal/services"
)

type Deps struct {
	Auth            *services.AuthService
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	AuthHandler     *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	authSvc := services.NewAuthService(userRepo, auth.NewManager(cfg.JWT.Secret, cfg.JWT.TTL))

	return &Deps{
		Auth:            authSvc,
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
	}
}
