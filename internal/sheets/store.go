package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/report"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

// Columns is the Data_Log header row. Order matches the row layout written by
// AppendTransaction and expected by parseRow.
var Columns = []string{
	"timestamp",
	"transaction_type",
	"category_or_source",
	"description",
	"amount",
	"user_id",
}

const callTimeout = 30 * time.Second

// Store persists transactions in a two-sheet spreadsheet: a raw append-only
// log and a derived human-readable report view.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	dataSheet     string
	reportSheet   string
	log           zerolog.Logger
}

// NewStore creates a Store over an authenticated sheets service.
func NewStore(svc *sheetsapi.Service, spreadsheetID, dataSheet, reportSheet string, log zerolog.Logger) *Store {
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		dataSheet:     dataSheet,
		reportSheet:   reportSheet,
		log:           log,
	}
}

// AppendTransaction appends one row to the data log.
func (s *Store) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	row := []interface{}{
		timeutil.FormatTimestamp(tx.Timestamp),
		string(tx.Type),
		tx.CategoryOrSource,
		tx.Description,
		tx.Amount.StringFixed(2),
		tx.UserID,
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.dataSheet, &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending to %s: %w", s.dataSheet, err)
	}

	s.log.Info().
		Str("type", string(tx.Type)).
		Str("amount", tx.Amount.StringFixed(2)).
		Str("description", tx.Description).
		Msg("transaction logged")
	return nil
}

// ReadAllTransactions reads every data log row. Malformed rows are skipped
// with a warning rather than failing the whole read: a single bad manual edit
// must not take reporting down.
func (s *Store) ReadAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataSheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.dataSheet, err)
	}

	var records []domain.Transaction
	for i, row := range resp.Values {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		tx, err := parseRow(row)
		if err != nil {
			s.log.Warn().Err(err).Int("row", i+1).Msg("skipping malformed row")
			continue
		}
		records = append(records, tx)
	}
	return records, nil
}

// RebuildReportView rewrites the report sheet from the full data log.
func (s *Store) RebuildReportView(ctx context.Context, generatedAt time.Time) error {
	records, err := s.ReadAllTransactions(ctx)
	if err != nil {
		return fmt.Errorf("rebuilding report view: %w", err)
	}

	rows := report.BuildView(records, generatedAt)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	_, err = s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.reportSheet, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clearing %s: %w", s.reportSheet, err)
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.reportSheet+"!A1", &sheetsapi.ValueRange{
		Values: values,
	}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating %s: %w", s.reportSheet, err)
	}

	s.log.Info().Int("rows", len(rows)).Msg("report view rebuilt")
	return nil
}

// Initialize writes the data log header when the sheet is empty and seeds the
// report view. An existing header that does not match the expected columns is
// left alone and reported, so a sheet holding foreign data is never clobbered.
func (s *Store) Initialize(ctx context.Context) error {
	getCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataSheet+"!A1:F1").Context(getCtx).Do()
	if err != nil {
		return fmt.Errorf("checking %s header: %w", s.dataSheet, err)
	}

	switch {
	case len(resp.Values) == 0:
		header := make([]interface{}, len(Columns))
		for i, c := range Columns {
			header[i] = c
		}
		_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.dataSheet, &sheetsapi.ValueRange{
			Values: [][]interface{}{header},
		}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("writing %s header: %w", s.dataSheet, err)
		}
		s.log.Info().Str("sheet", s.dataSheet).Msg("data log header written")

	case !isHeaderRow(resp.Values[0]):
		return fmt.Errorf("sheet %s has an unexpected header row", s.dataSheet)
	}

	if err := s.RebuildReportView(ctx, timeutil.Now()); err != nil {
		return err
	}

	s.log.Info().Msg("sheets initialized")
	return nil
}

// Ping verifies the spreadsheet is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("pinging spreadsheet: %w", err)
	}
	return nil
}

func isHeaderRow(row []interface{}) bool {
	if len(row) < len(Columns) {
		return false
	}
	for i, want := range Columns {
		if cellString(row[i]) != want {
			return false
		}
	}
	return true
}

// parseRow converts a raw sheet row into a transaction. Rows written by the
// bot always have six cells, but manual edits can leave trailing cells empty,
// so only the leading five are required.
func parseRow(row []interface{}) (domain.Transaction, error) {
	if len(row) < 5 {
		return domain.Transaction{}, fmt.Errorf("row has %d cells, want at least 5", len(row))
	}

	ts, err := timeutil.ParseTimestamp(cellString(row[0]))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing timestamp: %w", err)
	}

	txType := domain.TransactionType(strings.ToLower(cellString(row[1])))
	if !txType.Valid() {
		return domain.Transaction{}, fmt.Errorf("unknown transaction type %q", cellString(row[1]))
	}

	amount, err := parseCellAmount(cellString(row[4]))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing amount: %w", err)
	}

	tx := domain.Transaction{
		Timestamp:        ts,
		Type:             txType,
		CategoryOrSource: cellString(row[2]),
		Description:      cellString(row[3]),
		Amount:           amount,
	}
	if len(row) > 5 {
		tx.UserID = cellString(row[5])
	}
	return tx, nil
}

// parseCellAmount tolerates currency symbols and thousands separators that
// sneak in through manual edits or sheet formatting.
func parseCellAmount(cell string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("₱", "", "$", "", ",", "", " ", "").Replace(cell)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount cell")
	}
	return decimal.NewFromString(cleaned)
}

func cellString(cell interface{}) string {
	if s, ok := cell.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(cell))
}
