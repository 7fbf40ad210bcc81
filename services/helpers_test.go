package services

import (
	"bytes"
	"context"
	"time"

	"github.com/shopspring/decimal"

	"hotelorders/pivot"
)

var testDate = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func amount(n int64, unit string) pivot.Amount {
	return pivot.Amount{Sum: decimal.NewFromInt(n), Unit: unit}
}

// sampleSheet is a day of orders for two vendors across three hotels, plus
// one row on another day and one with a zero quantity.
func sampleSheet() pivot.RawTable {
	return pivot.NewRawTable([][]string{
		{"DATE", "MAIN HOTEL NAME", "VENDOR", "PIVOT_VEGETABLE_NAME", "TELUGU NAME", "UNITS", "QUANTITY"},
		{"05/03/2025", "Novotel", "Sita", "Tomato", "Tamata", "kg", "10"},
		{"05/03/2025", "Grandbay", "Sita", "Tomato", "Tamata", "kg", "4.5"},
		{"5/3/2025", "radisson", "Ravi", "Tomato", "Tamata", "box", "2"},
		{"05/03/2025", "Novotel", "Ravi", "Onion", "Ullipaya", "kg", "7"},
		{"06/03/2025", "Novotel", "Sita", "Carrot", "", "kg", "3"},
		{"05/03/2025", "Bheemili", "Sita", "Beans", "", "kg", "0"},
	})
}

type stubSource struct {
	table pivot.RawTable
	at    time.Time
	err   error
	calls int
	// block waits for ctx to end before returning.
	block       bool
	invalidated bool
}

func (s *stubSource) Fetch(ctx context.Context, now time.Time) (pivot.RawTable, time.Time, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return pivot.RawTable{}, time.Time{}, ctx.Err()
	}
	if s.err != nil {
		return pivot.RawTable{}, time.Time{}, s.err
	}
	if s.at.IsZero() {
		return s.table, now, nil
	}
	return s.table, s.at, nil
}

func (s *stubSource) Invalidate() { s.invalidated = true }

type stubRenderer struct {
	out []byte
	err error
	got []Document
}

func (r *stubRenderer) Render(doc Document) ([]byte, error) {
	r.got = append(r.got, doc)
	return r.out, r.err
}
