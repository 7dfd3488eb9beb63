package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/storefront-api/internal/apperr"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/rogerio-castellano/storefront-api/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *Service
	products *repo.InMemoryProductRepository
	carts    *repo.InMemoryCartRepository
	p1, p2   models.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	products := repo.NewInMemoryProductRepository()
	carts := repo.NewInMemoryCartRepository(products)

	p1, err := products.Create(ctx, models.Product{Code: "P1", Title: "Pen", Price: 2, Stock: 5, Status: true})
	require.NoError(t, err)
	p2, err := products.Create(ctx, models.Product{Code: "P2", Title: "Notebook", Price: 6, Stock: 5, Status: true})
	require.NoError(t, err)

	return fixture{
		svc:      NewService(carts, products, nil),
		products: products,
		carts:    carts,
		p1:       p1,
		p2:       p2,
	}
}

func (f fixture) newCart(t *testing.T) models.Cart {
	t.Helper()
	c, err := f.svc.Create(context.Background())
	require.NoError(t, err)
	return c
}

func lines(c models.Cart) map[string]int {
	out := map[string]int{}
	for _, it := range c.Items {
		out[it.ProductID] = it.Quantity
	}
	return out
}

func assertKind(t *testing.T, err error, k apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, k, apperr.KindOf(err), err.Error())
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	got, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Pen", got.Items[0].Product.Title)

	got, err = f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestAddItem_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	_, err := f.svc.AddItem(ctx, "missing", f.p1.ID)
	assertKind(t, err, apperr.KindNotFound)

	_, err = f.svc.AddItem(ctx, c.ID, "missing")
	assertKind(t, err, apperr.KindNotFound)

	_, err = f.svc.AddItem(ctx, c.ID, " ")
	assertKind(t, err, apperr.KindInvalidArgument)
}

func TestAddThenRemove_RestoresItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	before, err := f.svc.AddItem(ctx, c.ID, f.p2.ID)
	require.NoError(t, err)

	_, err = f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)
	after, err := f.svc.RemoveItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)

	assert.Equal(t, lines(before), lines(after))
}

func TestSetQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)
	_, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)

	got, err := f.svc.SetQuantity(ctx, c.ID, f.p1.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{f.p1.ID: 7}, lines(got))

	_, err = f.svc.SetQuantity(ctx, c.ID, f.p2.ID, 3)
	assertKind(t, err, apperr.KindNotFound)

	_, err = f.svc.SetQuantity(ctx, c.ID, "missing", 3)
	assertKind(t, err, apperr.KindNotFound)

	_, err = f.svc.SetQuantity(ctx, "missing", f.p1.ID, 3)
	assertKind(t, err, apperr.KindNotFound)
}

func TestSetQuantity_ZeroIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)
	_, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)

	_, err = f.svc.SetQuantity(ctx, c.ID, f.p1.ID, 0)
	assertKind(t, err, apperr.KindInvalidArgument)

	got, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{f.p1.ID: 2}, lines(got))
}

func TestRemoveItem_MissingLineIsAnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	_, err := f.svc.RemoveItem(ctx, c.ID, f.p1.ID)
	assertKind(t, err, apperr.KindNotFound)
}

func TestRemoveItem_OrphanedLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)
	_, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)
	require.NoError(t, f.products.Delete(ctx, f.p1.ID))

	got, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].Product)

	got, err = f.svc.RemoveItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestReplaceAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)
	_, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)

	got, err := f.svc.ReplaceAll(ctx, c.ID, []Line{{ProductID: f.p2.ID, Quantity: 4}, {ProductID: f.p1.ID, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, f.p2.ID, got.Items[0].ProductID)
	assert.Equal(t, 4, got.Items[0].Quantity)
	require.NotNil(t, got.Items[1].Product)

	got, err = f.svc.ReplaceAll(ctx, c.ID, []Line{})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestReplaceAll_RejectsWithoutMutating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)
	_, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)

	cases := []struct {
		name  string
		lines []Line
		kind  apperr.Kind
	}{
		{"nil list", nil, apperr.KindInvalidArgument},
		{"zero quantity", []Line{{ProductID: f.p2.ID, Quantity: 0}}, apperr.KindInvalidArgument},
		{"missing product id", []Line{{Quantity: 1}}, apperr.KindInvalidArgument},
		{"duplicate product", []Line{{ProductID: f.p2.ID, Quantity: 1}, {ProductID: f.p2.ID, Quantity: 2}}, apperr.KindInvalidArgument},
		{"unknown product", []Line{{ProductID: f.p2.ID, Quantity: 1}, {ProductID: "missing", Quantity: 1}}, apperr.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.ReplaceAll(ctx, c.ID, tc.lines)
			assertKind(t, err, tc.kind)

			got, err := f.svc.Get(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, map[string]int{f.p1.ID: 1}, lines(got))
		})
	}

	_, err = f.svc.ReplaceAll(ctx, "missing", []Line{})
	assertKind(t, err, apperr.KindNotFound)
}

func TestClear_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)
	_, err := f.svc.AddItem(ctx, c.ID, f.p1.ID)
	require.NoError(t, err)

	first, err := f.svc.Clear(ctx, c.ID)
	require.NoError(t, err)
	second, err := f.svc.Clear(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, first.Items)
	assert.Empty(t, second.Items)

	_, err = f.svc.Clear(ctx, "missing")
	assertKind(t, err, apperr.KindNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	require.NoError(t, f.svc.Delete(ctx, c.ID))
	_, err := f.svc.Get(ctx, c.ID)
	assertKind(t, err, apperr.KindNotFound)
	assertKind(t, f.svc.Delete(ctx, c.ID), apperr.KindNotFound)
}

type failingCarts struct {
	repo.CartRepository
}

func (failingCarts) ReplaceItems(context.Context, string, []models.CartItem) (models.Cart, error) {
	return models.Cart{}, errors.New("connection reset")
}

func TestStoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.newCart(t)

	svc := NewService(failingCarts{CartRepository: f.carts}, f.products, nil)
	_, err := svc.AddItem(ctx, c.ID, f.p1.ID)
	assertKind(t, err, apperr.KindInternal)
	assert.Equal(t, "cart store failure", apperr.Message(err))
}
