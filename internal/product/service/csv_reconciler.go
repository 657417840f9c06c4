package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/product/domain"
	"github.com/gestock/inventory-backend/internal/product/repository"
)

var ErrMissingCSVColumns = errors.New("csv header must contain barcode and sold columns")

// ProcessSalesCSV streams the uploaded sale feed row by row inside one
// storage transaction. Rows with an unparseable sold quantity or an unknown
// barcode are logged and skipped without mutating anything; every applied row
// decrements stock and appends a sale record to the ledger. Any other fault
// aborts the transaction and rolls back the whole run. The source file is
// removed whether the run commits or not.
func (s *productServiceImpl) ProcessSalesCSV(ctx context.Context, userID bson.ObjectID, path string) ([]domain.StockCorrection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer func() {
		file.Close()
		if err := os.Remove(path); err != nil {
			logger.Error("Svc.ProcessSalesCSV: failed to remove source file "+path, err)
		}
	}()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	barcodeIdx, soldIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "barcode":
			barcodeIdx = i
		case "sold":
			soldIdx = i
		}
	}
	if barcodeIdx < 0 || soldIdx < 0 {
		return nil, ErrMissingCSVColumns
	}

	// Once the run starts it goes to completion or terminal failure; a caller
	// disconnect must not abort it halfway.
	ctx = context.WithoutCancel(ctx)

	var updates []domain.StockCorrection
	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read csv row: %w", err)
			}

			barcode := strings.TrimSpace(row[barcodeIdx])
			sold, convErr := strconv.Atoi(strings.TrimSpace(row[soldIdx]))
			if convErr != nil {
				logger.Warn("Svc.ProcessSalesCSV: invalid sold quantity for barcode %s: %q", barcode, row[soldIdx])
				continue
			}

			product, err := s.repo.DecrementStockByBarcode(txCtx, barcode, sold)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					logger.Warn("Svc.ProcessSalesCSV: product with barcode %s not found", barcode)
					continue
				}
				return err
			}

			modification := &lDomain.StockModification{
				ProductID:       product.ID,
				Type:            lDomain.TypeSale,
				QuantityChanged: sold,
				DateModified:    time.Now(),
				UserID:          userID,
			}
			if err := s.ledger.Append(txCtx, modification); err != nil {
				return err
			}

			updates = append(updates, domain.StockCorrection{
				Barcode:      barcode,
				NewStock:     product.Stock.Current,
				LastModified: product.LastModified,
			})
		}
	})
	if err != nil {
		logger.Error("Svc.ProcessSalesCSV: transaction aborted", err)
		return nil, err
	}
	if updates == nil {
		updates = []domain.StockCorrection{}
	}
	return updates, nil
}
