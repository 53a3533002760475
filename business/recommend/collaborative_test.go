package recommend

import (
	"context"
	"myStorefront/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatePurchasesCountsDistinctBuyers(t *testing.T) {
	ordersRepo := &fakeOrdersRepo{
		ordersByCustomer: map[uint][]domain.OrderWithProduct{
			2: {
				orderRow(1, 2, 20, "Keyboard", "Electronics", 90, 1),
				orderRow(2, 2, 20, "Keyboard", "Electronics", 90, 2),
				orderRow(3, 2, 21, "Mouse", "Electronics", 30, 3),
			},
			3: {
				orderRow(4, 3, 20, "Keyboard", "Electronics", 90, 1),
			},
		},
	}
	svc := NewService(&fakeCustomerRepo{}, ordersRepo, &fakeProductRepo{}, nil, &fakeGenerator{}, nil)

	similar := []domain.SimilarCustomer{{CustomerID: 2}, {CustomerID: 3}}
	candidates, err := svc.aggregatePurchases(context.Background(), similar, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// keyboard: 3 purchases across 2 distinct buyers
	assert.Equal(t, uint(20), candidates[0].ProductID)
	assert.Equal(t, 3, candidates[0].PurchaseCount)
	assert.Equal(t, 2, candidates[0].CustomerCount)

	assert.Equal(t, uint(21), candidates[1].ProductID)
	assert.Equal(t, 1, candidates[1].PurchaseCount)
	assert.Equal(t, 1, candidates[1].CustomerCount)
}

func TestAggregatePurchasesExcludesProducts(t *testing.T) {
	ordersRepo := &fakeOrdersRepo{
		ordersByCustomer: map[uint][]domain.OrderWithProduct{
			2: {
				orderRow(1, 2, 20, "Keyboard", "Electronics", 90, 1),
				orderRow(2, 2, 21, "Mouse", "Electronics", 30, 2),
			},
		},
	}
	svc := NewService(&fakeCustomerRepo{}, ordersRepo, &fakeProductRepo{}, nil, &fakeGenerator{}, nil)

	candidates, err := svc.aggregatePurchases(context.Background(), []domain.SimilarCustomer{{CustomerID: 2}}, []uint{20})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(21), candidates[0].ProductID)
}

func TestAggregatePurchasesEmptySimilar(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{}, &fakeOrdersRepo{}, &fakeProductRepo{}, nil, &fakeGenerator{}, nil)

	candidates, err := svc.aggregatePurchases(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAggregatePurchasesDeterministicTies(t *testing.T) {
	// two products with identical counts resolve by ascending product id
	ordersRepo := &fakeOrdersRepo{
		ordersByCustomer: map[uint][]domain.OrderWithProduct{
			2: {
				orderRow(1, 2, 31, "Mug", "Kitchen", 12, 1),
				orderRow(2, 2, 30, "Plate", "Kitchen", 8, 2),
			},
		},
	}
	svc := NewService(&fakeCustomerRepo{}, ordersRepo, &fakeProductRepo{}, nil, &fakeGenerator{}, nil)

	candidates, err := svc.aggregatePurchases(context.Background(), []domain.SimilarCustomer{{CustomerID: 2}}, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, uint(30), candidates[0].ProductID)
	assert.Equal(t, uint(31), candidates[1].ProductID)
}

func TestFindSimilarCustomersEmptyCategories(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{}, &fakeOrdersRepo{similar: []domain.SimilarCustomer{{CustomerID: 9}}}, &fakeProductRepo{}, nil, &fakeGenerator{}, nil)

	similar, err := svc.findSimilarCustomers(context.Background(), &domain.PurchaseProfile{CustomerID: 1})
	require.NoError(t, err)
	assert.Empty(t, similar)
}
