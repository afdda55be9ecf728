package repository

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"delitrack/internal/domain"
)

//go:embed mock_orders.yaml
var embeddedOrders []byte

type orderFixture struct {
	Orders []domain.Order `yaml:"orders"`
}

// DecodeOrders parses a YAML order fixture, keeping document order.
func DecodeOrders(data []byte) ([]domain.Order, error) {
	var fixture orderFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing order fixture: %w", err)
	}
	return fixture.Orders, nil
}

func LoadEmbeddedOrders() ([]domain.Order, error) {
	return DecodeOrders(embeddedOrders)
}

func LoadOrdersFile(path string) ([]domain.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading order fixture: %w", err)
	}
	return DecodeOrders(data)
}
