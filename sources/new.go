package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// Options selects and configures a source.
type Options struct {
	Kind            string
	SpreadsheetID   string
	Range           string
	CredentialsFile string
	Path            string
	Sheet           string
}

// New builds the source named by opts.Kind. An empty kind is inferred from
// the file extension of opts.Path, falling back to Google Sheets.
func New(ctx context.Context, opts Options, app core.App, logger *zap.Logger) (Source, error) {
	kind := opts.Kind
	if kind == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".xlsx":
			kind = KindXLSX
		case ".csv":
			kind = KindCSV
		default:
			kind = KindSheets
		}
	}

	switch kind {
	case KindSheets:
		if opts.SpreadsheetID == "" {
			return nil, fmt.Errorf("sheets source needs a spreadsheet id")
		}
		return NewSheetsSource(ctx, opts.SpreadsheetID, opts.Range, opts.CredentialsFile, logger)
	case KindXLSX:
		return XLSXSource{Path: opts.Path, Sheet: opts.Sheet}, nil
	case KindCSV:
		return CSVSource{Path: opts.Path}, nil
	case KindPocketBase:
		if app == nil {
			return nil, fmt.Errorf("pocketbase source needs an app")
		}
		return RecordSource{App: app}, nil
	}
	return nil, fmt.Errorf("unknown source kind %q", kind)
}
