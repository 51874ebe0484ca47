package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// DefaultProducts seeds the catalog the first time the products collection is
// read. These are the studio's two stock panels.
var DefaultProducts = []models.Product{
	{
		Reference:    "P2AA11489",
		Name:         "Panneau Bois Arifi Pin, Saturé Doré, L. 1,80 m x h. 1,80 m x ep. 75 mm",
		URL:          "https://www.vivreenbois.com/produit/panneau-bois-arifi-pin-sature-dore-l-180-m-x-h-180-m-x-ep-75-mm",
		ImageDisplay: "https://images.unsplash.com/photo-1585790050230-5dd28404ccb9?auto=format&fit=crop&q=80&w=400",
	},
	{
		Reference:    "730510168",
		Name:         "Panneau de décor Aluminium Tokyo, Gris Anthracite, L. 1.855 m x l. 920 mm x ep. 23 mm",
		URL:          "https://www.vivreenbois.com/produit/panneau-de-decor-aluminium-tokyo-gris-anthracite-l-1855-m-x-l-920-mm-x-ep-23-mm",
		ImageDisplay: "https://images.unsplash.com/photo-1620625515032-654e71b12041?auto=format&fit=crop&q=80&w=400",
	},
}

// ProductRepository defines catalog data access.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Upsert(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, reference string) error
}

// productRepository implements ProductRepository on a KV store.
type productRepository struct {
	store KV
}

// NewProductRepository creates a catalog repository over the given store.
func NewProductRepository(store KV) ProductRepository {
	return &productRepository{store: store}
}

// List returns the full catalog. An absent collection is seeded with the
// default products and the seed is written back so later reads see it.
func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	raw, ok, err := r.store.Get(ctx, ProductsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if !ok {
		if err := r.writeAll(ctx, DefaultProducts); err != nil {
			return nil, err
		}
		return append([]models.Product(nil), DefaultProducts...), nil
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to decode products collection: %w", err)
	}
	return products, nil
}

// Upsert replaces the product with the same reference, or appends it.
// The whole collection is written back in one call.
func (r *productRepository) Upsert(ctx context.Context, product models.Product) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if models.SameReference(products[i].Reference, product.Reference) {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}

	return r.writeAll(ctx, products)
}

// Delete removes the product with the given reference. Deleting an unknown
// reference is a no-op write of the unchanged collection.
func (r *productRepository) Delete(ctx context.Context, reference string) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := products[:0]
	for _, p := range products {
		if !models.SameReference(p.Reference, reference) {
			filtered = append(filtered, p)
		}
	}

	return r.writeAll(ctx, filtered)
}

func (r *productRepository) writeAll(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products collection: %w", err)
	}
	if err := r.store.Set(ctx, ProductsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}
