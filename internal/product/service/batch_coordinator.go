package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/product/domain"
	"github.com/gestock/inventory-backend/internal/product/repository"
)

// The batch coordinator is deliberately best-effort: every item fans out as
// its own independent write with no cross-item atomicity. One item's failure
// fails the whole call, but writes already dispatched stay committed. The CSV
// reconciliation path is the all-or-nothing counterpart.

// ApplyPositionBatch writes a new position per item and counts the writes
// that reported an actual modification. Writing a position equal to the
// stored one counts as not modified.
func (s *productServiceImpl) ApplyPositionBatch(ctx context.Context, items []domain.PositionUpdate) (int, error) {
	// A caller disconnect must not abort writes already dispatched.
	ctx = context.WithoutCancel(ctx)

	type result struct {
		modified bool
		err      error
	}
	resultsChan := make(chan result, len(items))

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(item domain.PositionUpdate) {
			defer wg.Done()
			objID, err := bson.ObjectIDFromHex(item.ProductID)
			if err != nil {
				resultsChan <- result{err: ErrInvalidProductID}
				return
			}
			modified, err := s.repo.UpdatePosition(ctx, objID, item.Position)
			resultsChan <- result{modified: modified, err: err}
		}(item)
	}
	wg.Wait()
	close(resultsChan)

	updatedCount := 0
	var firstErr error
	for res := range resultsChan {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		if res.modified {
			updatedCount++
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return updatedCount, nil
}

// ApplyStockBatch writes absolute stock levels and appends one ledger record
// per applied item, classifying restock vs sale from the delta sign.
func (s *productServiceImpl) ApplyStockBatch(ctx context.Context, userID bson.ObjectID, items []domain.StockUpdate) (*BatchStockResult, error) {
	return s.applyQuantityBatch(ctx, userID, items, "")
}

// ApplyBreakageBatch is ApplyStockBatch with the ledger type forced to
// breakage regardless of the delta sign.
func (s *productServiceImpl) ApplyBreakageBatch(ctx context.Context, userID bson.ObjectID, items []domain.StockUpdate) (*BatchStockResult, error) {
	return s.applyQuantityBatch(ctx, userID, items, lDomain.TypeBreakage)
}

type stockItemResult struct {
	modification *lDomain.StockModification
	skipped      bool
	err          error
}

func (s *productServiceImpl) applyQuantityBatch(ctx context.Context, userID bson.ObjectID, items []domain.StockUpdate, forcedType string) (*BatchStockResult, error) {
	// A caller disconnect must not abort writes already dispatched.
	ctx = context.WithoutCancel(ctx)

	resultsChan := make(chan stockItemResult, len(items))

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(item domain.StockUpdate) {
			defer wg.Done()
			resultsChan <- s.applyStockItem(ctx, userID, item, forcedType)
		}(item)
	}
	wg.Wait()
	close(resultsChan)

	batch := &BatchStockResult{Modifications: []lDomain.StockModification{}}
	var firstErr error
	for res := range resultsChan {
		switch {
		case res.err != nil:
			if firstErr == nil {
				firstErr = res.err
			}
		case res.skipped:
			// missing product, reflected only in the reduced count
		default:
			batch.UpdatedCount++
			batch.Modifications = append(batch.Modifications, *res.modification)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return batch, nil
}

func (s *productServiceImpl) applyStockItem(ctx context.Context, userID bson.ObjectID, item domain.StockUpdate, forcedType string) (res stockItemResult) {
	objID, err := bson.ObjectIDFromHex(item.ProductID)
	if err != nil {
		res.err = ErrInvalidProductID
		return res
	}

	product, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn("Svc.applyStockItem: product %s not found, skipping", item.ProductID)
			res.skipped = true
			return res
		}
		res.err = err
		return res
	}

	delta := item.NewStock - product.Stock.Current
	if err := s.repo.SetStock(ctx, objID, item.NewStock); err != nil {
		res.err = err
		return res
	}

	modType := forcedType
	if modType == "" {
		if delta > 0 {
			modType = lDomain.TypeRestock
		} else {
			modType = lDomain.TypeSale
		}
	}

	modification := &lDomain.StockModification{
		ProductID:       objID,
		Type:            modType,
		QuantityChanged: abs(delta),
		DateModified:    time.Now(),
		UserID:          userID,
	}
	if err := s.ledger.Append(ctx, modification); err != nil {
		res.err = err
		return res
	}

	res.modification = modification
	return res
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
