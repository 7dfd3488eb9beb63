package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rogerio-castellano/storefront-api/internal/models"
)

// The file backend is the in-memory backend persisting one JSON document per
// collection after every write.

const (
	productsFile = "products.json"
	cartsFile    = "carts.json"
	usersFile    = "users.json"
)

func loadSnapshot[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return items, nil
}

func saveSnapshot[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func NewJSONFileProductRepository(dir string) (*InMemoryProductRepository, error) {
	path := filepath.Join(dir, productsFile)
	products, err := loadSnapshot[models.Product](path)
	if err != nil {
		return nil, err
	}
	r := NewInMemoryProductRepository()
	r.products = products
	r.persist = func(next []models.Product) error {
		return saveSnapshot(path, next)
	}
	return r, nil
}

func NewJSONFileCartRepository(dir string, products ProductRepository) (*InMemoryCartRepository, error) {
	path := filepath.Join(dir, cartsFile)
	carts, err := loadSnapshot[models.Cart](path)
	if err != nil {
		return nil, err
	}
	for i := range carts {
		carts[i] = cloneCart(carts[i])
	}
	r := NewInMemoryCartRepository(products)
	r.carts = carts
	r.persist = func(next []models.Cart) error {
		return saveSnapshot(path, next)
	}
	return r, nil
}

// userRecord is the on-disk form of a user; models.User hides the hash from JSON.
type userRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewJSONFileUserRepository(dir string) (*InMemoryUserRepository, error) {
	path := filepath.Join(dir, usersFile)
	records, err := loadSnapshot[userRecord](path)
	if err != nil {
		return nil, err
	}
	r := NewInMemoryUserRepository()
	for _, rec := range records {
		r.users = append(r.users, models.User(rec))
	}
	r.persist = func(next []models.User) error {
		out := make([]userRecord, len(next))
		for i, u := range next {
			out[i] = userRecord(u)
		}
		return saveSnapshot(path, out)
	}
	return r, nil
}
