package pivot

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultPreferredHotels is the column prefix used when none is configured.
var DefaultPreferredHotels = []string{"Novotel", "Grandbay", "Radisson Blu", "Bheemili"}

// DefaultHotelAliases maps preferred hotels to the other spellings seen in
// the order sheet. Case and whitespace differences need no alias.
var DefaultHotelAliases = map[string][]string{
	"Radisson Blu": {"Radisson"},
}

// ColumnPolicy decides the hotel columns of a pivot built over a scope.
type ColumnPolicy interface {
	Columns(scope Records) []string
}

// HotelRegistry is the canonical hotel-name list. It maps sheet spellings to
// one display name and orders hotel columns: preferred hotels first, in the
// configured order, then everything else sorted.
type HotelRegistry struct {
	preferred []string
	canonical map[string]string
}

// NewHotelRegistry builds a registry from the preferred order and extra
// aliases keyed by canonical name.
func NewHotelRegistry(preferred []string, aliases map[string][]string) *HotelRegistry {
	r := &HotelRegistry{
		preferred: make([]string, 0, len(preferred)),
		canonical: make(map[string]string),
	}
	for _, name := range preferred {
		name = collapseSpaces(name)
		if name == "" {
			continue
		}
		if _, dup := r.canonical[foldKey(name)]; dup {
			continue
		}
		r.preferred = append(r.preferred, name)
		r.canonical[foldKey(name)] = name
	}
	for name, spellings := range aliases {
		name = collapseSpaces(name)
		for _, s := range spellings {
			key := foldKey(s)
			if _, taken := r.canonical[key]; !taken {
				r.canonical[key] = name
			}
		}
	}
	return r
}

// DefaultHotelRegistry returns the registry for the default hotel list.
func DefaultHotelRegistry() *HotelRegistry {
	return NewHotelRegistry(DefaultPreferredHotels, DefaultHotelAliases)
}

// Preferred returns the configured preferred order.
func (r *HotelRegistry) Preferred() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.preferred...)
}

// Canonical returns the registry spelling of name, or name with its
// whitespace collapsed when the registry does not know it.
func (r *HotelRegistry) Canonical(name string) string {
	name = collapseSpaces(name)
	if r == nil || name == "" {
		return name
	}
	if c, ok := r.canonical[foldKey(name)]; ok {
		return c
	}
	return name
}

// Order arranges hotel names: present preferred hotels in configured order,
// then the rest ascending.
func (r *HotelRegistry) Order(hotels []string) []string {
	present := make(map[string]struct{}, len(hotels))
	for _, h := range hotels {
		present[h] = struct{}{}
	}

	out := make([]string, 0, len(present))
	if r != nil {
		for _, p := range r.preferred {
			if _, ok := present[p]; ok {
				out = append(out, p)
				delete(present, p)
			}
		}
	}

	rest := make([]string, 0, len(present))
	for h := range present {
		rest = append(rest, h)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Columns implements ColumnPolicy.
func (r *HotelRegistry) Columns(scope Records) []string {
	return r.Order(scope.Hotels())
}

// Enumerate is Columns with every preferred hotel listed, present or not.
// The individual hotel report uses it when absent hotels must still get a
// page.
func (r *HotelRegistry) Enumerate(scope Records) []string {
	return r.Order(append(r.Preferred(), scope.Hotels()...))
}

// foldKey is the matching key for hotel spellings: NFC, case folded, with
// all whitespace removed.
func foldKey(s string) string {
	s = cases.Fold().String(norm.NFC.String(s))
	return strings.Join(strings.Fields(s), "")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
