package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestFindByCustomerWithProducts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrdersRepository(db)

	purchaseDate := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"order_id", "customer_id", "product_id", "quantity", "purchase_date",
		"product_name", "category", "price", "description",
	}).
		AddRow(2, 1, 11, 1, purchaseDate, "Headphones", "Electronics", 250.0, "over-ear").
		AddRow(1, 1, 10, 2, purchaseDate.AddDate(0, 0, -3), "Laptop Pro", "Electronics", 1200.0, "16 inch")

	mock.ExpectQuery(`SELECT (.+) FROM "orders" JOIN products ON products.id = orders.product_id WHERE orders.customer_id = \$1 ORDER BY orders.purchase_date DESC`).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.FindByCustomerWithProducts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, uint(2), got[0].OrderID)
	assert.Equal(t, uint(11), got[0].ProductID)
	assert.Equal(t, "Headphones", got[0].ProductName)
	assert.Equal(t, "Electronics", got[0].Category)
	assert.Equal(t, 250.0, got[0].Price)
	assert.Equal(t, "Laptop Pro", got[1].ProductName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCustomersWithProductsEmptyInput(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewOrdersRepository(db)

	got, err := repo.FindByCustomersWithProducts(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindByCustomersWithProductsExcludes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrdersRepository(db)

	rows := sqlmock.NewRows([]string{
		"order_id", "customer_id", "product_id", "quantity", "purchase_date",
		"product_name", "category", "price", "description",
	}).
		AddRow(3, 2, 12, 1, time.Now(), "Keyboard", "Electronics", 90.0, "")

	mock.ExpectQuery(`SELECT (.+) FROM "orders" JOIN products ON products.id = orders.product_id WHERE orders.customer_id IN (.+) AND orders.product_id NOT IN (.+) ORDER BY orders.purchase_date DESC`).
		WithArgs(2, 3, 10).
		WillReturnRows(rows)

	got, err := repo.FindByCustomersWithProducts(context.Background(), []uint{2, 3}, []uint{10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(12), got[0].ProductID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSimilarCustomersByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrdersRepository(db)

	groupRows := sqlmock.NewRows([]string{"customer_id", "shared_purchases"}).
		AddRow(2, 4).
		AddRow(3, 1)

	mock.ExpectQuery(`SELECT orders.customer_id AS customer_id, COUNT\(orders.id\) AS shared_purchases FROM "orders"`).
		WithArgs(1, "Electronics", 5).
		WillReturnRows(groupRows)

	categoryRows := sqlmock.NewRows([]string{"customer_id", "category"}).
		AddRow(2, "Electronics").
		AddRow(3, "Electronics")

	mock.ExpectQuery(`SELECT DISTINCT orders.customer_id AS customer_id, products.category AS category FROM "orders"`).
		WithArgs(2, 3, "Electronics").
		WillReturnRows(categoryRows)

	similar, err := repo.FindSimilarCustomersByCategory(context.Background(), []string{"Electronics"}, 1, 5)
	require.NoError(t, err)
	require.Len(t, similar, 2)

	assert.Equal(t, uint(2), similar[0].CustomerID)
	assert.Equal(t, 4, similar[0].SharedPurchases)
	assert.Equal(t, []string{"Electronics"}, similar[0].Categories)
	assert.Equal(t, uint(3), similar[1].CustomerID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSimilarCustomersByCategoryNoCategories(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewOrdersRepository(db)

	similar, err := repo.FindSimilarCustomersByCategory(context.Background(), nil, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, similar)
}
