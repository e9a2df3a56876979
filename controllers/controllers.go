package controllers

import (
	"gorm.io/gorm"

	"github.com/ShanAhmd/HiDrawpix/services"
	"github.com/ShanAhmd/HiDrawpix/store"
)

// Shared store instances. The hubs inside them carry the live subscriptions,
// so every handler must go through the same instance.
var (
	orderStore     *store.OrderStore
	portfolioStore *store.PortfolioStore
	offerStore     *store.OfferStore
)

// InitStores builds the record stores over the given database handle. Called
// once at startup, and from tests with an in-memory database.
func InitStores(db *gorm.DB) {
	orderStore = store.NewOrderStore(db)
	portfolioStore = store.NewPortfolioStore(db)
	offerStore = store.NewOfferStore(db)
}

// GetOrderStore returns the shared order store.
func GetOrderStore() *store.OrderStore {
	return orderStore
}

// lifecycle builds the order lifecycle service over the current global
// collaborators. Constructed per call so tests can swap the S3 and email
// mocks after InitStores.
func lifecycle() *services.LifecycleService {
	return services.NewLifecycleService(orderStore, services.GetS3Service(), services.GetEmailSender())
}
