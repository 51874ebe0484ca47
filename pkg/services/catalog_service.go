package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/repositories"
)

// CatalogService manages the product catalog. Every mutation is one
// synchronous full-entity persist call.
type CatalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	Save(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, reference string) error
}

type catalogService struct {
	products repositories.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(products repositories.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{products: products, logger: logger}
}

func (s *catalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Save upserts a product by reference. Reference and name are required;
// url and image are optional.
func (s *catalogService) Save(ctx context.Context, product models.Product) error {
	if strings.TrimSpace(product.Reference) == "" {
		return fmt.Errorf("product reference is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required")
	}

	if err := s.products.Upsert(ctx, product); err != nil {
		return err
	}
	s.logger.Info("product saved", zap.String("reference", product.Reference))
	return nil
}

// Delete removes a product from the catalog. Tasks that matched it keep
// their denormalized fields; their next reconciliation simply finds no
// match.
func (s *catalogService) Delete(ctx context.Context, reference string) error {
	if err := s.products.Delete(ctx, reference); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("reference", reference))
	return nil
}
