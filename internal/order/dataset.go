package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"delitrack/internal/config"
	"delitrack/internal/domain"
	"delitrack/internal/infrastructure/mysql"
	orderrepo "delitrack/internal/order/repository"
)

// LoadDataset reads the order dataset from the configured source. The mysql
// source is read once and the connection is closed before returning.
func LoadDataset(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)

	switch cfg.Dataset.Source {
	case config.DatasetSourceEmbedded, "":
		orders, err = orderrepo.LoadEmbeddedOrders()
	case config.DatasetSourceFile:
		orders, err = orderrepo.LoadOrdersFile(cfg.Dataset.Path)
	case config.DatasetSourceMySQL:
		orders, err = loadFromMySQL(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s dataset: %w", cfg.Dataset.Source, err)
	}

	logger.Info("order dataset loaded",
		zap.String("source", cfg.Dataset.Source),
		zap.Int("orders", len(orders)),
	)
	return orders, nil
}

func loadFromMySQL(ctx context.Context, cfg config.DatabaseConfig) ([]domain.Order, error) {
	db, err := mysql.NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return orderrepo.NewMySQLOrderRepository(db).List(ctx)
}
