package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	lRepo "github.com/gestock/inventory-backend/internal/ledger/repository"
	"github.com/gestock/inventory-backend/internal/platform/logger"
)

// DefaultFacetLimit caps every ranked rollup unless the service was
// configured with its own limit.
const DefaultFacetLimit = 10

var (
	ErrNoReportData    = errors.New("no report data found")
	ErrInvalidRecordID = errors.New("invalid record id")
	ErrInvalidType     = errors.New("invalid stock modification type")
)

// BreakageReportItem carries the breakage date truncated to calendar-day
// precision, the way the report is presented.
type BreakageReportItem struct {
	lDomain.BreakageSummary
	LastBrokenDate string `json:"last_broken_date"`
}

type BreakageReport struct {
	MostBroken  []BreakageReportItem `json:"mostBroken"`
	LeastBroken []BreakageReportItem `json:"leastBroken"`
}

type CreateRecordRequest struct {
	ProductID       string `json:"product_id" binding:"required"`
	Type            string `json:"type" binding:"required"`
	QuantityChanged int    `json:"quantity_changed" binding:"min=0"`
}

// ReportService serves analytical rollups over the audit ledger plus the
// administrative record endpoints. It never mutates products.
type ReportService interface {
	MostChangedProducts(ctx context.Context, userID bson.ObjectID, limit int) ([]lDomain.ProductChangeSummary, error)
	LeastChangedProducts(ctx context.Context, userID bson.ObjectID, limit int) ([]lDomain.ProductChangeSummary, error)
	BreakageExtremes(ctx context.Context, userID bson.ObjectID) (*BreakageReport, error)
	SalesExtremes(ctx context.Context, userID bson.ObjectID) (*lDomain.SalesFacets, error)

	ListRecords(ctx context.Context) ([]lDomain.StockModification, error)
	CreateRecord(ctx context.Context, userID bson.ObjectID, req CreateRecordRequest) (*lDomain.StockModification, error)
	GetRecord(ctx context.Context, id string) (*lDomain.StockModification, error)
	DeleteRecord(ctx context.Context, id string) error
}

type reportServiceImpl struct {
	ledger     lRepo.LedgerRepository
	facetLimit int
}

// NewReportService builds the aggregator. A non-positive facetLimit falls
// back to DefaultFacetLimit.
func NewReportService(ledger lRepo.LedgerRepository, facetLimit int) ReportService {
	if facetLimit <= 0 {
		facetLimit = DefaultFacetLimit
	}
	return &reportServiceImpl{ledger: ledger, facetLimit: facetLimit}
}

func (s *reportServiceImpl) MostChangedProducts(ctx context.Context, userID bson.ObjectID, limit int) ([]lDomain.ProductChangeSummary, error) {
	return s.changedProducts(ctx, userID, lRepo.Descending, limit)
}

func (s *reportServiceImpl) LeastChangedProducts(ctx context.Context, userID bson.ObjectID, limit int) ([]lDomain.ProductChangeSummary, error) {
	return s.changedProducts(ctx, userID, lRepo.Ascending, limit)
}

func (s *reportServiceImpl) changedProducts(ctx context.Context, userID bson.ObjectID, order lRepo.SortOrder, limit int) ([]lDomain.ProductChangeSummary, error) {
	if limit <= 0 {
		limit = s.facetLimit
	}
	summaries, err := s.ledger.ChangeTotals(ctx, userID, order, limit)
	if err != nil {
		logger.Error("Svc.changedProducts: repo error", err)
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, ErrNoReportData
	}
	return summaries, nil
}

func (s *reportServiceImpl) BreakageExtremes(ctx context.Context, userID bson.ObjectID) (*BreakageReport, error) {
	facets, err := s.ledger.BreakageFacets(ctx, userID, s.facetLimit)
	if err != nil {
		logger.Error("Svc.BreakageExtremes: repo error", err)
		return nil, err
	}
	if len(facets.MostBroken) == 0 && len(facets.LeastBroken) == 0 {
		return nil, ErrNoReportData
	}

	report := &BreakageReport{
		MostBroken:  truncateBreakageDates(facets.MostBroken),
		LeastBroken: truncateBreakageDates(facets.LeastBroken),
	}
	return report, nil
}

func truncateBreakageDates(summaries []lDomain.BreakageSummary) []BreakageReportItem {
	items := make([]BreakageReportItem, len(summaries))
	for i, summary := range summaries {
		items[i] = BreakageReportItem{
			BreakageSummary: summary,
			LastBrokenDate:  summary.LastBroken.UTC().Format(time.DateOnly),
		}
	}
	return items
}

func (s *reportServiceImpl) SalesExtremes(ctx context.Context, userID bson.ObjectID) (*lDomain.SalesFacets, error) {
	facets, err := s.ledger.SalesFacets(ctx, userID, s.facetLimit)
	if err != nil {
		logger.Error("Svc.SalesExtremes: repo error", err)
		return nil, err
	}
	if len(facets.MostSales) == 0 && len(facets.LeastSales) == 0 {
		return nil, ErrNoReportData
	}
	return facets, nil
}

func (s *reportServiceImpl) ListRecords(ctx context.Context) ([]lDomain.StockModification, error) {
	return s.ledger.List(ctx)
}

func (s *reportServiceImpl) CreateRecord(ctx context.Context, userID bson.ObjectID, req CreateRecordRequest) (*lDomain.StockModification, error) {
	productID, err := bson.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, ErrInvalidRecordID
	}
	if !lDomain.IsManualType(req.Type) {
		return nil, ErrInvalidType
	}

	record := &lDomain.StockModification{
		ProductID:       productID,
		Type:            req.Type,
		QuantityChanged: req.QuantityChanged,
		DateModified:    time.Now(),
		UserID:          userID,
	}
	if err := s.ledger.Append(ctx, record); err != nil {
		logger.Error("Svc.CreateRecord: repo error", err)
		return nil, err
	}
	return record, nil
}

func (s *reportServiceImpl) GetRecord(ctx context.Context, id string) (*lDomain.StockModification, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidRecordID
	}
	return s.ledger.GetByID(ctx, objID)
}

// DeleteRecord is an administrative override; the reconciliation path never
// removes ledger entries.
func (s *reportServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidRecordID
	}
	return s.ledger.Delete(ctx, objID)
}
