package entities

import (
	"errors"
	"strings"
	"testing"
)

func sampleAssets() []*Asset {
	return []*Asset{
		{ID: "abc-001", InventoryNumber: "INV-100", Type: AssetTypeComputer, Status: AssetStatusAvailable},
		{ID: "abc-002", InventoryNumber: "INV-200", Type: AssetTypeMonitor, Status: AssetStatusInUse},
		{ID: "xyz-003", InventoryNumber: "inv-300", Type: AssetTypeComputer, Status: AssetStatusDisposed},
		{ID: "xyz-004", InventoryNumber: "MISC-1", Type: AssetTypeHub, Status: AssetStatusBroken},
		{ID: "xyz-005", InventoryNumber: "INV-500", Type: AssetTypeCable, Status: AssetStatusDisposed},
	}
}

func ids(assets []*Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func TestAssetFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter AssetFilter
		want   []string
	}{
		{"default view hides disposed", AssetFilter{Type: TypeFilterAll}, []string{"abc-001", "abc-002", "xyz-004"}},
		{"disposed view", AssetFilter{ShowDisposed: true}, []string{"xyz-003", "xyz-005"}},
		{"search inventory number case-insensitively", AssetFilter{Search: "Inv-"}, []string{"abc-001", "abc-002"}},
		{"search by id", AssetFilter{Search: "XYZ"}, []string{"xyz-004"}},
		{"type filter", AssetFilter{Type: TypeFilter(AssetTypeComputer)}, []string{"abc-001"}},
		{"type filter in disposed view", AssetFilter{Type: TypeFilter(AssetTypeComputer), ShowDisposed: true}, []string{"xyz-003"}},
		{"no match", AssetFilter{Search: "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(sampleAssets()))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssetFilterViewsArePartition(t *testing.T) {
	assets := sampleAssets()
	active := AssetFilter{}.Apply(assets)
	disposed := AssetFilter{ShowDisposed: true}.Apply(assets)

	if len(active)+len(disposed) != len(assets) {
		t.Errorf("Expected views to cover %d assets, got %d+%d", len(assets), len(active), len(disposed))
	}
	for _, a := range active {
		for _, d := range disposed {
			if a.ID == d.ID {
				t.Errorf("Asset %s appears in both views", a.ID)
			}
		}
	}
}

func TestAssetFilterSearchResultsContainTerm(t *testing.T) {
	for _, term := range []string{"", "0", "inv", "ABC", "-3", "zzz"} {
		result := AssetFilter{Search: term}.Apply(sampleAssets())
		for _, a := range result {
			lower := strings.ToLower(term)
			if !strings.Contains(strings.ToLower(a.InventoryNumber), lower) && !strings.Contains(strings.ToLower(a.ID), lower) {
				t.Errorf("Asset %s does not contain search term %q", a.ID, term)
			}
		}
	}
}

func TestDisposeMovesAssetBetweenViews(t *testing.T) {
	asset := &Asset{ID: "a-1", InventoryNumber: "INV-1", Type: AssetTypeComputer, Status: AssetStatusAvailable}
	assets := []*Asset{asset}

	StatusPatch(AssetStatusDisposed).ApplyTo(asset)
	if len(AssetFilter{}.Apply(assets)) != 0 {
		t.Error("Disposed asset should leave the active view")
	}
	if len(AssetFilter{ShowDisposed: true}.Apply(assets)) != 1 {
		t.Error("Disposed asset should appear in the disposed view")
	}

	StatusPatch(AssetStatusMaintenance).ApplyTo(asset)
	if len(AssetFilter{}.Apply(assets)) != 1 {
		t.Error("Restored asset should return to the active view")
	}
}

func TestParseTypeFilter(t *testing.T) {
	for _, in := range []string{"", "ALL", "all"} {
		got, err := ParseTypeFilter(in)
		if err != nil || got != TypeFilterAll {
			t.Errorf("ParseTypeFilter(%q) = %v, %v; want ALL", in, got, err)
		}
	}

	got, err := ParseTypeFilter("hub")
	if err != nil || got != TypeFilter(AssetTypeHub) {
		t.Errorf("ParseTypeFilter(hub) = %v, %v", got, err)
	}

	if _, err := ParseTypeFilter("PRINTER"); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Expected ErrInvalidFilter, got %v", err)
	}
}

func TestParseAssetFilter(t *testing.T) {
	f, err := ParseAssetFilter("inv-00", "monitor", "1")
	if err != nil {
		t.Fatalf("ParseAssetFilter failed: %v", err)
	}
	if f.Search != "inv-00" || f.Type != TypeFilter(AssetTypeMonitor) || !f.ShowDisposed {
		t.Errorf("Unexpected filter %+v", f)
	}

	// The search term is matched as typed, surrounding spaces included
	f, err = ParseAssetFilter(" inv-1", "", "")
	if err != nil {
		t.Fatalf("ParseAssetFilter failed: %v", err)
	}
	if f.Search != " inv-1" {
		t.Errorf("Expected search term to be kept as typed, got %q", f.Search)
	}
	if got := f.Apply(sampleAssets()); len(got) != 0 {
		t.Errorf("Expected no asset to contain %q, got %v", f.Search, ids(got))
	}

	f, err = ParseAssetFilter("", "", "")
	if err != nil || f.Type != TypeFilterAll || f.ShowDisposed {
		t.Errorf("Empty query should be the default active view, got %+v, %v", f, err)
	}

	if _, err := ParseAssetFilter("", "", "maybe"); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Expected ErrInvalidFilter for bad disposed flag, got %v", err)
	}
	if _, err := ParseAssetFilter("", "TABLET", ""); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Expected ErrInvalidFilter for unknown type, got %v", err)
	}
}
