package sources

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"hotelorders/pivot"
)

// DefaultRange is the order sheet tab and its twelve columns.
const DefaultRange = "LIST_CREATION!A:L"

// SheetsSource reads the order sheet from a Google spreadsheet with a
// service account.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewSheetsSource builds a read-only Sheets client from a service account
// key file. Extra options are appended to the client options.
func NewSheetsSource(ctx context.Context, spreadsheetID, readRange, credentialsFile string, logger *zap.Logger, opts ...option.ClientOption) (*SheetsSource, error) {
	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	if readRange == "" {
		readRange = DefaultRange
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetsSource{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange, logger: logger}, nil
}

// Load fetches every row of the configured range.
func (s *SheetsSource) Load(ctx context.Context) (pivot.RawTable, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("get %s: %w", s.readRange, err)
	}

	table := valuesToTable(resp.Values)
	if len(table.Columns) > 0 {
		if err := checkColumns(table); err != nil {
			return pivot.RawTable{}, err
		}
	}
	s.logger.Debug("sheet loaded",
		zap.String("range", s.readRange),
		zap.Int("rows", table.Len()),
	)
	return table, nil
}
