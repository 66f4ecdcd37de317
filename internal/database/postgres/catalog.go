package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybermarket/server/internal/domain"
)

// CatalogStore persists the product catalog
type CatalogStore struct {
	db *pgxpool.Pool
}

// NewCatalogStore creates a new CatalogStore
func NewCatalogStore(db *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{db: db}
}

const productColumns = `product_id, name, category, subcategory, price, rarity, stats, description, image_url, model_ref`

// ListItems returns all products in insertion order, so the default listing
// matches the order the catalog was seeded or extended in.
func (s *CatalogStore) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, product_id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProducts, err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProducts, err)
	}
	return items, nil
}

// GetItem retrieves a single product by ID
func (s *CatalogStore) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	item, err := scanItem(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// InsertItem adds a new product and fills in the generated ID
func (s *CatalogStore) InsertItem(ctx context.Context, item *domain.Item) error {
	stats, err := json.Marshal(statsOrEmpty(item.Stats))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProduct, err)
	}

	query := `
		INSERT INTO products (name, category, subcategory, price, rarity, stats, description, image_url, model_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING product_id
	`
	err = s.db.QueryRow(ctx, query,
		item.Name, item.Category, item.Subcategory, item.Price,
		item.Rarity, stats, item.Description, item.ImageURL, item.ModelRef,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProduct, err)
	}
	return nil
}

// UpdateItem overwrites an existing product
func (s *CatalogStore) UpdateItem(ctx context.Context, item *domain.Item) error {
	stats, err := json.Marshal(statsOrEmpty(item.Stats))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProduct, err)
	}

	query := `
		UPDATE products
		SET name = $2, category = $3, subcategory = $4, price = $5, rarity = $6,
		    stats = $7, description = $8, image_url = $9, model_ref = $10, updated_at = NOW()
		WHERE product_id = $1
	`
	tag, err := s.db.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Subcategory, item.Price,
		item.Rarity, stats, item.Description, item.ImageURL, item.ModelRef,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProduct, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteItem removes a product
func (s *CatalogStore) DeleteItem(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteProduct, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// CountItems returns the number of products in the catalog
func (s *CatalogStore) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountProducts, err)
	}
	return count, nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var stats []byte
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Subcategory, &item.Price,
		&item.Rarity, &stats, &item.Description, &item.ImageURL, &item.ModelRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProduct, err)
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &item.Stats); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProduct, err)
		}
	}
	return &item, nil
}

func statsOrEmpty(stats map[string]string) map[string]string {
	if stats == nil {
		return map[string]string{}
	}
	return stats
}
