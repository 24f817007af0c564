//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"favorites-service/internal/favorite/viewcache"
	"favorites-service/internal/user/delivery/http"
	"favorites-service/internal/user/domain"
	"favorites-service/internal/user/repository"
	"favorites-service/internal/user/usecase/command"
	"favorites-service/internal/user/usecase/query"
	"favorites-service/kafka"
)

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return repository.NewGormCustomerRepository(db)
}

// ProvideFavoritesInvalidator provides the favorites view invalidator
func ProvideFavoritesInvalidator(views *viewcache.ViewCache) command.FavoritesInvalidator {
	return views
}

// Command Handlers Providers
func ProvideRegisterCustomerHandler(repo domain.CustomerRepository) *command.RegisterCustomerHandler {
	return command.NewRegisterCustomerHandler(repo)
}

func ProvideLoginCustomerHandler(repo domain.CustomerRepository) *command.LoginCustomerHandler {
	return command.NewLoginCustomerHandler(repo)
}

func ProvideUpdateCustomerHandler(repo domain.CustomerRepository) *command.UpdateCustomerHandler {
	return command.NewUpdateCustomerHandler(repo)
}

func ProvideDeleteCustomerHandler(repo domain.CustomerRepository, views command.FavoritesInvalidator, audit *kafka.Publisher) *command.DeleteCustomerHandler {
	return command.NewDeleteCustomerHandler(repo, views, audit)
}

// Query Handlers Providers
func ProvideGetCustomerHandler(repo domain.CustomerRepository) *query.GetCustomerHandler {
	return query.NewGetCustomerHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCustomerRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideFavoritesInvalidator,
	ProvideRegisterCustomerHandler,
	ProvideLoginCustomerHandler,
	ProvideUpdateCustomerHandler,
	ProvideDeleteCustomerHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCustomerHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the customer HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, views *viewcache.ViewCache, audit *kafka.Publisher) (*http.CustomerHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCustomerHandler,
	)
	return nil, nil
}
