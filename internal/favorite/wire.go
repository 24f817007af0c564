//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"favorites-service/internal/catalog"
	"favorites-service/internal/favorite/delivery/http"
	"favorites-service/internal/favorite/domain"
	"favorites-service/internal/favorite/repository"
	"favorites-service/internal/favorite/usecase/command"
	"favorites-service/internal/favorite/usecase/query"
	"favorites-service/internal/favorite/viewcache"
	"favorites-service/kafka"
	"favorites-service/pkg/cache"
)

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db)
}

// ProvideTxManager provides the transaction manager
func ProvideTxManager(db *gorm.DB) domain.TxManager {
	return repository.NewGormTxManager(db)
}

// ProvideViewCache provides the per-customer favorites view cache
func ProvideViewCache(store cache.Store, repo domain.FavoriteRepository) *viewcache.ViewCache {
	return viewcache.New(store, repo, cache.DefaultTTL)
}

// ProvideProductResolver provides the catalog-backed product resolver
func ProvideProductResolver(client *catalog.Client) command.ProductResolver {
	return client
}

// Command Handlers Providers
func ProvideCreateFavoriteHandler(resolver command.ProductResolver, tx domain.TxManager, views *viewcache.ViewCache, audit *kafka.Publisher) *command.CreateFavoriteHandler {
	return command.NewCreateFavoriteHandler(resolver, tx, views, audit)
}

func ProvideDeactivateFavoriteHandler(tx domain.TxManager, views *viewcache.ViewCache, audit *kafka.Publisher) *command.DeactivateFavoriteHandler {
	return command.NewDeactivateFavoriteHandler(tx, views, audit)
}

// Query Handlers Providers
func ProvideListFavoritesHandler(views *viewcache.ViewCache) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(views)
}

func ProvideGetFavoriteHandler(repo domain.FavoriteRepository) *query.GetFavoriteHandler {
	return query.NewGetFavoriteHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
	ProvideTxManager,
	ProvideViewCache,
)

var CommandHandlerSet = wire.NewSet(
	ProvideProductResolver,
	ProvideCreateFavoriteHandler,
	ProvideDeactivateFavoriteHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListFavoritesHandler,
	ProvideGetFavoriteHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the favorites HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, store cache.Store, client *catalog.Client, audit *kafka.Publisher) (*http.FavoriteHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewFavoriteHandler,
	)
	return nil, nil
}
