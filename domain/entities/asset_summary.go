package entities

// TypeCount is one summary card of the dashboard
type TypeCount struct {
	Type  AssetType `json:"type"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// summaryCards is the fixed card layout. HUB has no card of its own.
var summaryCards = []struct {
	Type  AssetType
	Label string
}{
	{AssetTypeComputer, "Computadoras"},
	{AssetTypeMonitor, "Monitores"},
	{AssetTypeKeyboard, "Teclados"},
	{AssetTypeMouse, "Mouse"},
	{AssetTypeHeadset, "Auriculares"},
	{AssetTypeCable, "Cables"},
	{AssetTypeOther, "Otros"},
}

// CountActiveByType counts non-disposed assets per type. Every known type is present.
func CountActiveByType(assets []*Asset) map[AssetType]int {
	counts := make(map[AssetType]int, len(AssetTypes))
	for _, t := range AssetTypes {
		counts[t] = 0
	}
	for _, a := range assets {
		if a.IsDisposed() {
			continue
		}
		counts[a.Type]++
	}
	return counts
}

// SummaryCards lays the counts out as the seven dashboard cards
func SummaryCards(counts map[AssetType]int) []TypeCount {
	cards := make([]TypeCount, 0, len(summaryCards))
	for _, c := range summaryCards {
		cards = append(cards, TypeCount{Type: c.Type, Label: c.Label, Count: counts[c.Type]})
	}
	return cards
}
