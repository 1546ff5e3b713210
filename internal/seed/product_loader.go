package seed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"kiosk/m/domain"
	kerrors "kiosk/m/internal/errors"
	"kiosk/m/internal/logger"
)

const (
	// productFields is the minimum number of columns in a product line:
	// name,category,total_pieces,total_stocks,price. Extra columns are ignored.
	productFields = 5

	maxLineBytes = 1024 * 1024
)

// ProductCreator persists one parsed product.
type ProductCreator interface {
	CreateProduct(ctx context.Context, p domain.NewProduct) (domain.ProductIDs, error)
}

// Summary counts the outcome of an import.
type Summary struct {
	Added   int
	Invalid int
	Failed  int
	// Err collects every invalid or failed record.
	Err error
}

// Clean reports whether every record was imported.
func (s Summary) Clean() bool {
	return s.Invalid == 0 && s.Failed == 0
}

type Loader struct {
	store ProductCreator
	log   *logger.Logger
}

func NewLoader(store ProductCreator, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{store: store, log: log}
}

// LoadFile imports the product file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("unable to open product file %s: %w", path, err)
	}
	defer file.Close()

	return l.Load(l.log.WithField(ctx, "file", path), file)
}

// Load reads one product per line and creates each valid record. Blank lines
// are skipped; malformed lines and failed inserts are logged, counted, and do
// not stop the import. Only a read error aborts it.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Summary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var sum Summary
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		lineCtx := l.log.WithField(ctx, "line", line)
		if strings.TrimSpace(raw) == "" {
			l.log.Debug(lineCtx, "blank line skipped")
			continue
		}

		product, err := ParseLine(raw)
		if err != nil {
			sum.Invalid++
			sum.Err = multierr.Append(sum.Err, fmt.Errorf("line %d: %w", line, err))
			l.log.Error(l.log.WithField(lineCtx, "raw", strings.TrimSpace(raw)), "invalid product format", err)
			continue
		}

		lineCtx = l.log.WithField(lineCtx, "product_name", product.ProductName)
		ids, err := l.store.CreateProduct(lineCtx, product)
		if err == nil && ids.IsZero() {
			err = kerrors.New(kerrors.CodeTransactionFailure, "no identifiers returned")
		}
		if err != nil {
			sum.Failed++
			sum.Err = multierr.Append(sum.Err, fmt.Errorf("line %d: %w", line, err))
			l.log.Error(lineCtx, "product import failed", err)
			continue
		}

		sum.Added++
		l.log.Info(l.log.WithFields(lineCtx, map[string]any{
			"inventory_id": ids.InventoryID,
			"product_id":   ids.ProductID,
		}), "product added")
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("reading product file after line %d: %w", line, err)
	}

	l.log.Info(l.log.WithFields(ctx, map[string]any{
		"added":   sum.Added,
		"invalid": sum.Invalid,
		"failed":  sum.Failed,
	}), "all products have been imported")
	return sum, nil
}

// ParseLine parses a single "name,category,total_pieces,total_stocks,price"
// line. Fields are split on every comma; quotes have no special meaning.
func ParseLine(line string) (domain.NewProduct, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < productFields {
		return domain.NewProduct{}, kerrors.New(kerrors.CodeMalformedRecord,
			fmt.Sprintf("expected %d fields, got %d", productFields, len(fields))).
			WithDetails(map[string]any{"fields": len(fields)})
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	pieces, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return domain.NewProduct{}, kerrors.Wrap(kerrors.CodeMalformedRecord, err, "total_pieces is not an integer")
	}
	stocks, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return domain.NewProduct{}, kerrors.Wrap(kerrors.CodeMalformedRecord, err, "total_stocks is not an integer")
	}
	price, err := decimal.NewFromString(fields[4])
	if err != nil {
		return domain.NewProduct{}, kerrors.Wrap(kerrors.CodeMalformedRecord, err, "price is not a number")
	}

	return domain.NewProduct{
		ProductName: fields[0],
		Category:    fields[1],
		TotalPieces: pieces,
		TotalStocks: stocks,
		Price:       price,
	}, nil
}
