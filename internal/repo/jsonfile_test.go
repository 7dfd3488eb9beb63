package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStores(t *testing.T) stores {
	dir := t.TempDir()
	products, err := NewJSONFileProductRepository(dir)
	require.NoError(t, err)
	carts, err := NewJSONFileCartRepository(dir, products)
	require.NoError(t, err)
	users, err := NewJSONFileUserRepository(dir)
	require.NoError(t, err)
	return stores{products: products, carts: carts, users: users}
}

func TestJSONFileProductRepository(t *testing.T) { runProductContract(t, newFileStores) }
func TestJSONFileCartRepository(t *testing.T)    { runCartContract(t, newFileStores) }
func TestJSONFileUserRepository(t *testing.T)    { runUserContract(t, newFileStores) }

func TestJSONFile_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	products, err := NewJSONFileProductRepository(dir)
	require.NoError(t, err)
	carts, err := NewJSONFileCartRepository(dir, products)
	require.NoError(t, err)
	users, err := NewJSONFileUserRepository(dir)
	require.NoError(t, err)

	p, err := products.Create(ctx, models.Product{Code: "A", Title: "Lamp", Price: 20, Stock: 2})
	require.NoError(t, err)
	c, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = carts.ReplaceItems(ctx, c.ID, []models.CartItem{{ProductID: p.ID, Quantity: 3}})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, models.User{Username: "bob", PasswordHash: "secret-hash", Role: models.RoleUser})
	require.NoError(t, err)

	products2, err := NewJSONFileProductRepository(dir)
	require.NoError(t, err)
	carts2, err := NewJSONFileCartRepository(dir, products2)
	require.NoError(t, err)
	users2, err := NewJSONFileUserRepository(dir)
	require.NoError(t, err)

	got, err := carts2.GetByID(ctx, c.ID, FindOptions{IncludeProductDetails: true})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Lamp", got.Items[0].Product.Title)
	assert.Equal(t, 3, got.Items[0].Quantity)

	u, err := users2.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "secret-hash", u.PasswordHash)
}

func TestJSONFile_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, productsFile), []byte("{not json"), 0o600))

	_, err := NewJSONFileProductRepository(dir)
	assert.Error(t, err)
}
