package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	maxTabTitleRunes = 25
	defaultTabRows   = 1000
)

// SheetsClient talks to the master spreadsheet that hosts one tab per form.
// It implements the admin SheetProvisioner and the public TabularSink ports.
// The service handle is built once at startup; credential problems surface
// there instead of on every request.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsClient builds the Sheets service from service-account credentials
// and verifies the master spreadsheet is reachable.
func NewSheetsClient(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}

	if _, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("master spreadsheet %s not reachable: %w", spreadsheetID, err)
	}

	return &SheetsClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// CreateTab adds a sheet tab for a new form and writes its header row.
func (c *SheetsClient) CreateTab(ctx context.Context, title string, headers []string) (string, error) {
	tab := tabTitle(title)

	batch := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: tab,
					GridProperties: &sheets.GridProperties{
						RowCount:    defaultTabRows,
						ColumnCount: int64(len(headers) + 2),
					},
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, batch).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("add sheet tab %q: %w", tab, err)
	}

	headerCells := make([]any, 0, len(headers))
	for _, header := range headers {
		headerCells = append(headerCells, header)
	}
	valueRange := &sheets.ValueRange{Values: [][]any{headerCells}}
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, tab+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("write header row to %q: %w", tab, err)
	}

	return tab, nil
}

// AppendRow appends one submission row to the bottom of a tab. Concurrent
// appends rely on the Sheets API serializing them server-side.
func (c *SheetsClient) AppendRow(ctx context.Context, tab string, row []string) error {
	cells := make([]any, 0, len(row))
	for _, cell := range row {
		cells = append(cells, cell)
	}
	valueRange := &sheets.ValueRange{Values: [][]any{cells}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, tab+"!A1", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %q: %w", tab, err)
	}
	return nil
}

// tabTitle derives a unique tab name from the form title. The random suffix
// keeps two same-titled forms created in the same second from colliding.
func tabTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	runes := []rune(trimmed)
	if len(runes) > maxTabTitleRunes {
		trimmed = string(runes[:maxTabTitleRunes])
	}
	return fmt.Sprintf("%s-%s", trimmed, uuid.NewString()[:8])
}
