package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap/zaptest"

	"hotelorders/pivot"
	"hotelorders/services"
	"hotelorders/sources"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e
}

const ordersCSV = `DATE,MAIN HOTEL NAME,VENDOR,PIVOT_VEGETABLE_NAME,TELUGU NAME,UNITS,QUANTITY
05/03/2025,Novotel,Sita,Tomato,Tamata,kg,10
05/03/2025,Grandbay,Sita,Tomato,Tamata,kg,4
05/03/2025,Grandbay,Ravi,Onion,Ullipaya,kg,6
06/03/2025,Novotel,Ravi,Carrot,,kg,3
`

// newTestDeps wires a generator over a CSV file through the sheet cache.
func newTestDeps(t *testing.T) Deps {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte(ordersCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	logger := zaptest.NewLogger(t)
	return Deps{
		Generator: &services.Generator{
			Source:  sources.NewCache(sources.CSVSource{Path: path}, time.Minute, logger),
			Hotels:  pivot.DefaultHotelRegistry(),
			Workers: 2,
			Timeout: 5 * time.Second,
			PDF:     services.PDFRenderer{},
			Excel:   services.ExcelRenderer{},
			Logger:  logger,
		},
		SecondaryLabel: "Telugu Name",
		PreviewRows:    2,
		Logger:         logger,
	}
}

type failingSource struct{ err error }

func (s failingSource) Fetch(context.Context, time.Time) (pivot.RawTable, time.Time, error) {
	return pivot.RawTable{}, time.Time{}, s.err
}

// newFailingDeps wires a generator whose source always fails with err.
func newFailingDeps(t *testing.T, err error) Deps {
	t.Helper()
	d := newTestDeps(t)
	d.Generator.Source = failingSource{err: err}
	return d
}

var errSheetDown = errors.New("sheet down")
