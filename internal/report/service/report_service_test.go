package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	lRepo "github.com/gestock/inventory-backend/internal/ledger/repository"
	"github.com/gestock/inventory-backend/internal/ledger/repository/mocks"
)

func TestReportService_MostChangedProducts(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()

	t.Run("Returns ranked summaries as computed by the ledger", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		ranked := []lDomain.ProductChangeSummary{
			{Name: "A", TotalChanges: 30},
			{Name: "B", TotalChanges: 10},
			{Name: "C", TotalChanges: 5},
		}
		mockLedger.On("ChangeTotals", ctx, userID, lRepo.Descending, 10).Return(ranked, nil).Once()

		summaries, err := svc.MostChangedProducts(ctx, userID, 10)
		assert.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, []string{summaries[0].Name, summaries[1].Name, summaries[2].Name})
		mockLedger.AssertExpectations(t)
	})

	t.Run("Empty result reports not found, not an empty list", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		mockLedger.On("ChangeTotals", ctx, userID, lRepo.Descending, 10).Return([]lDomain.ProductChangeSummary{}, nil).Once()

		summaries, err := svc.MostChangedProducts(ctx, userID, 10)
		assert.ErrorIs(t, err, ErrNoReportData)
		assert.Nil(t, summaries)
	})

	t.Run("Non-positive limit falls back to the default", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		mockLedger.On("ChangeTotals", ctx, userID, lRepo.Ascending, DefaultFacetLimit).
			Return([]lDomain.ProductChangeSummary{{Name: "A"}}, nil).Once()

		_, err := svc.LeastChangedProducts(ctx, userID, 0)
		assert.NoError(t, err)
		mockLedger.AssertExpectations(t)
	})

	t.Run("Configured facet limit flows into the rollup queries", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 3)

		mockLedger.On("ChangeTotals", ctx, userID, lRepo.Descending, 3).
			Return([]lDomain.ProductChangeSummary{{Name: "A"}}, nil).Once()
		mockLedger.On("SalesFacets", ctx, userID, 3).
			Return(&lDomain.SalesFacets{MostSales: []lDomain.SalesSummary{{ProductName: "A"}}}, nil).Once()

		_, err := svc.MostChangedProducts(ctx, userID, 0)
		assert.NoError(t, err)
		_, err = svc.SalesExtremes(ctx, userID)
		assert.NoError(t, err)
		mockLedger.AssertExpectations(t)
	})
}

func TestReportService_BreakageExtremes(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()

	t.Run("Truncates last breakage to calendar-day precision", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		broken := time.Date(2024, 3, 15, 17, 42, 9, 0, time.UTC)
		facets := &lDomain.BreakageFacets{
			MostBroken:  []lDomain.BreakageSummary{{ProductName: "A", TotalBroken: 4, LastBroken: broken}},
			LeastBroken: []lDomain.BreakageSummary{{ProductName: "B", TotalBroken: 1, LastBroken: broken}},
		}
		mockLedger.On("BreakageFacets", ctx, userID, DefaultFacetLimit).Return(facets, nil).Once()

		report, err := svc.BreakageExtremes(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "2024-03-15", report.MostBroken[0].LastBrokenDate)
		assert.Equal(t, "2024-03-15", report.LeastBroken[0].LastBrokenDate)
		assert.Equal(t, 4, report.MostBroken[0].TotalBroken)
	})

	t.Run("Both facets empty reports not found", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		mockLedger.On("BreakageFacets", ctx, userID, DefaultFacetLimit).Return(&lDomain.BreakageFacets{}, nil).Once()

		report, err := svc.BreakageExtremes(ctx, userID)
		assert.ErrorIs(t, err, ErrNoReportData)
		assert.Nil(t, report)
	})
}

func TestReportService_SalesExtremes(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()

	t.Run("Zero matching sale rows reports not found", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		mockLedger.On("SalesFacets", ctx, userID, DefaultFacetLimit).Return(&lDomain.SalesFacets{}, nil).Once()

		facets, err := svc.SalesExtremes(ctx, userID)
		assert.ErrorIs(t, err, ErrNoReportData)
		assert.Nil(t, facets)
	})

	t.Run("Passes populated facets through", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		facets := &lDomain.SalesFacets{
			MostSales:  []lDomain.SalesSummary{{ProductName: "A", TotalSales: 20}},
			LeastSales: []lDomain.SalesSummary{{ProductName: "B", TotalSales: 2}},
		}
		mockLedger.On("SalesFacets", ctx, userID, DefaultFacetLimit).Return(facets, nil).Once()

		got, err := svc.SalesExtremes(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, facets, got)
	})
}

func TestReportService_CreateRecord(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()
	productID := bson.NewObjectID()

	t.Run("Accepts manual types only", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		_, err := svc.CreateRecord(ctx, userID, CreateRecordRequest{
			ProductID: productID.Hex(),
			Type:      "restock",
		})
		assert.ErrorIs(t, err, ErrInvalidType)
		mockLedger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Appends a record with the caller as actor", func(t *testing.T) {
		mockLedger := new(mocks.MockLedgerRepository)
		svc := NewReportService(mockLedger, 0)

		mockLedger.On("Append", ctx, mock.MatchedBy(func(m *lDomain.StockModification) bool {
			return m.Type == lDomain.TypeAdjustment && m.QuantityChanged == 3 &&
				m.ProductID == productID && m.UserID == userID
		})).Return(nil).Once()

		record, err := svc.CreateRecord(ctx, userID, CreateRecordRequest{
			ProductID:       productID.Hex(),
			Type:            lDomain.TypeAdjustment,
			QuantityChanged: 3,
		})
		assert.NoError(t, err)
		assert.False(t, record.DateModified.IsZero())
		mockLedger.AssertExpectations(t)
	})
}
