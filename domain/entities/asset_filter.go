package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeFilter selects assets of one type, or all of them
type TypeFilter string

// TypeFilterAll disables type filtering
const TypeFilterAll TypeFilter = "ALL"

// ParseTypeFilter accepts "", "ALL" or any known asset type
func ParseTypeFilter(s string) (TypeFilter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == string(TypeFilterAll) {
		return TypeFilterAll, nil
	}
	if !AssetType(s).Valid() {
		return "", fmt.Errorf("%w: unknown asset type %q", ErrInvalidFilter, s)
	}
	return TypeFilter(s), nil
}

// AssetFilter is the dashboard view state. ShowDisposed switches between the
// active view and the disposed view; the two are mutually exclusive.
type AssetFilter struct {
	Search       string     `json:"search"`
	Type         TypeFilter `json:"type"`
	ShowDisposed bool       `json:"showDisposed"`
}

// ParseAssetFilter builds a filter from raw query values. disposed accepts
// anything strconv.ParseBool does; empty means the active view.
func ParseAssetFilter(search, typ, disposed string) (AssetFilter, error) {
	t, err := ParseTypeFilter(typ)
	if err != nil {
		return AssetFilter{}, err
	}

	filter := AssetFilter{Search: search, Type: t}
	if disposed != "" {
		show, err := strconv.ParseBool(disposed)
		if err != nil {
			return AssetFilter{}, fmt.Errorf("%w: disposed flag %q", ErrInvalidFilter, disposed)
		}
		filter.ShowDisposed = show
	}
	return filter, nil
}

// Matches reports whether a belongs in the filtered view
func (f AssetFilter) Matches(a *Asset) bool {
	return f.matchesSearch(a) && f.matchesType(a) && f.matchesStatus(a)
}

func (f AssetFilter) matchesSearch(a *Asset) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(a.InventoryNumber), term) ||
		strings.Contains(strings.ToLower(a.ID), term)
}

func (f AssetFilter) matchesType(a *Asset) bool {
	return f.Type == "" || f.Type == TypeFilterAll || AssetType(f.Type) == a.Type
}

func (f AssetFilter) matchesStatus(a *Asset) bool {
	return a.IsDisposed() == f.ShowDisposed
}

// Apply returns the matching assets in their original order
func (f AssetFilter) Apply(assets []*Asset) []*Asset {
	result := make([]*Asset, 0, len(assets))
	for _, a := range assets {
		if f.Matches(a) {
			result = append(result, a)
		}
	}
	return result
}
