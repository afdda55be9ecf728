package order

import (
	"go.uber.org/zap"

	"delitrack/internal/domain"
	"delitrack/internal/order/controller"
	orderrepo "delitrack/internal/order/repository"
	"delitrack/internal/order/service"
)

type Module struct {
	Catalog    *service.CatalogService
	Controller *controller.OrdersController
}

func NewModule(orders []domain.Order, recorder service.LookupRecorder, logger *zap.Logger) (*Module, error) {
	repo, err := orderrepo.NewMemoryOrderRepository(orders)
	if err != nil {
		return nil, err
	}

	catalog := service.NewCatalogService(repo, logger, recorder)

	return &Module{
		Catalog:    catalog,
		Controller: controller.NewOrdersController(catalog, logger),
	}, nil
}
