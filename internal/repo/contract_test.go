package repo

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The contract tests run against every backend: memory and file in unit
// tests, postgres and mongo behind the integration build tag.

type stores struct {
	products ProductRepository
	carts    CartRepository
	users    UserRepository
}

func seedProducts(t *testing.T, r ProductRepository) []models.Product {
	t.Helper()
	ctx := context.Background()
	input := []models.Product{
		{Code: "P-1", Title: "Red Apple", Description: "crisp fruit", Price: 1.5, Stock: 10, Category: "Fruit", Status: true},
		{Code: "P-2", Title: "Banana", Description: "yellow and sweet apple substitute", Price: 0.5, Stock: 0, Category: "fruit", Status: true},
		{Code: "P-3", Title: "Hammer", Description: "steel tool", Price: 12, Stock: 3, Category: "Tools", Status: false},
		{Code: "P-4", Title: "Pear", Description: "green", Price: 1.5, Stock: 7, Category: "Fruit", Status: true},
	}
	out := make([]models.Product, 0, len(input))
	for _, p := range input {
		created, err := r.Create(ctx, p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func titles(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func runProductContract(t *testing.T, newStores func(t *testing.T) stores) {
	ctx := context.Background()
	yes, no := true, false

	t.Run("create assigns id and rejects duplicate code", func(t *testing.T) {
		r := newStores(t).products
		p, err := r.Create(ctx, models.Product{Code: "X", Title: "x", Price: 1, Stock: 1})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.NotNil(t, p.Thumbnails)

		_, err = r.Create(ctx, models.Product{Code: "X", Title: "y", Price: 1, Stock: 1})
		assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
	})

	t.Run("get by id", func(t *testing.T) {
		r := newStores(t).products
		seeded := seedProducts(t, r)

		got, err := r.GetByID(ctx, seeded[2].ID)
		require.NoError(t, err)
		assert.Equal(t, "Hammer", got.Title)

		_, err = r.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("get by ids skips missing", func(t *testing.T) {
		r := newStores(t).products
		seeded := seedProducts(t, r)

		found, err := r.GetByIDs(ctx, []string{seeded[0].ID, "missing", seeded[3].ID})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Equal(t, "Pear", found[seeded[3].ID].Title)
	})

	t.Run("find filters", func(t *testing.T) {
		r := newStores(t).products
		seedProducts(t, r)

		cases := []struct {
			name   string
			filter ProductFilter
			want   []string
		}{
			{"no filter keeps store order", ProductFilter{}, []string{"Red Apple", "Banana", "Hammer", "Pear"}},
			{"text over title or description", ProductFilter{TextQuery: "APPLE"}, []string{"Red Apple", "Banana"}},
			{"category substring ignores case", ProductFilter{Category: "fru"}, []string{"Red Apple", "Banana", "Pear"}},
			{"status false", ProductFilter{Status: &no}, []string{"Hammer"}},
			{"status true and in stock", ProductFilter{Status: &yes, InStock: true}, []string{"Red Apple", "Pear"}},
			{"price asc is stable", ProductFilter{Sort: SortPriceAsc}, []string{"Banana", "Red Apple", "Pear", "Hammer"}},
			{"price desc is stable", ProductFilter{Sort: SortPriceDesc}, []string{"Hammer", "Red Apple", "Pear", "Banana"}},
			{"wildcards match literally", ProductFilter{TextQuery: "%"}, []string{}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				page, total, err := r.Find(ctx, tc.filter)
				require.NoError(t, err)
				assert.Equal(t, tc.want, titles(page))
				assert.Equal(t, len(tc.want), total)
			})
		}
	})

	t.Run("find paginates and counts the filtered set", func(t *testing.T) {
		r := newStores(t).products
		seedProducts(t, r)

		page, total, err := r.Find(ctx, ProductFilter{Sort: SortPriceAsc, Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"Red Apple", "Pear"}, titles(page))

		page, total, err = r.Find(ctx, ProductFilter{Offset: 10, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Empty(t, page)
	})

	t.Run("update keeps code", func(t *testing.T) {
		r := newStores(t).products
		seeded := seedProducts(t, r)

		p := seeded[0]
		p.Code = "CHANGED"
		p.Price = 2.25
		p.Thumbnails = []string{"a.png"}
		updated, err := r.Update(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "P-1", updated.Code)
		assert.Equal(t, 2.25, updated.Price)
		assert.Equal(t, []string{"a.png"}, updated.Thumbnails)

		_, err = r.Update(ctx, models.Product{ID: "missing"})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		r := newStores(t).products
		seeded := seedProducts(t, r)

		require.NoError(t, r.Delete(ctx, seeded[1].ID))
		_, err := r.GetByID(ctx, seeded[1].ID)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.ErrorIs(t, r.Delete(ctx, seeded[1].ID), ErrProductNotFound)
	})
}

func runCartContract(t *testing.T, newStores func(t *testing.T) stores) {
	ctx := context.Background()

	t.Run("create and get empty cart", func(t *testing.T) {
		s := newStores(t)
		c, err := s.carts.Create(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Empty(t, c.Items)

		got, err := s.carts.GetByID(ctx, c.ID, FindOptions{IncludeProductDetails: true})
		require.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)

		_, err = s.carts.GetByID(ctx, "missing", FindOptions{})
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("replace items keeps order and populates on request", func(t *testing.T) {
		s := newStores(t)
		seeded := seedProducts(t, s.products)
		c, err := s.carts.Create(ctx)
		require.NoError(t, err)

		items := []models.CartItem{
			{ProductID: seeded[2].ID, Quantity: 1},
			{ProductID: seeded[0].ID, Quantity: 4},
		}
		_, err = s.carts.ReplaceItems(ctx, c.ID, items)
		require.NoError(t, err)

		plain, err := s.carts.GetByID(ctx, c.ID, FindOptions{})
		require.NoError(t, err)
		require.Len(t, plain.Items, 2)
		assert.Nil(t, plain.Items[0].Product)

		full, err := s.carts.GetByID(ctx, c.ID, FindOptions{IncludeProductDetails: true})
		require.NoError(t, err)
		require.Len(t, full.Items, 2)
		assert.Equal(t, seeded[2].ID, full.Items[0].ProductID)
		require.NotNil(t, full.Items[0].Product)
		assert.Equal(t, "Hammer", full.Items[0].Product.Title)
		assert.Equal(t, 4, full.Items[1].Quantity)
	})

	t.Run("deleted product leaves an orphan line", func(t *testing.T) {
		s := newStores(t)
		seeded := seedProducts(t, s.products)
		c, err := s.carts.Create(ctx)
		require.NoError(t, err)
		_, err = s.carts.ReplaceItems(ctx, c.ID, []models.CartItem{{ProductID: seeded[0].ID, Quantity: 2}})
		require.NoError(t, err)

		require.NoError(t, s.products.Delete(ctx, seeded[0].ID))

		got, err := s.carts.GetByID(ctx, c.ID, FindOptions{IncludeProductDetails: true})
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, seeded[0].ID, got.Items[0].ProductID)
		assert.Nil(t, got.Items[0].Product)
	})

	t.Run("replace on missing cart", func(t *testing.T) {
		s := newStores(t)
		_, err := s.carts.ReplaceItems(ctx, "missing", nil)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("delete cart", func(t *testing.T) {
		s := newStores(t)
		c, err := s.carts.Create(ctx)
		require.NoError(t, err)
		require.NoError(t, s.carts.Delete(ctx, c.ID))
		assert.ErrorIs(t, s.carts.Delete(ctx, c.ID), ErrCartNotFound)
	})
}

func runUserContract(t *testing.T, newStores func(t *testing.T) stores) {
	ctx := context.Background()

	s := newStores(t)
	u, err := s.users.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "hash", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = s.users.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)

	got, err := s.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, models.RoleAdmin, got.Role)

	_, err = s.users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
