package entities

// NameSource tags where a cached barcode name came from: a household id for a
// local override, or the reserved Open Food Facts tag for the shared lookup.
type NameSource string

const SourceOpenFoodFacts NameSource = "ext:openfoodfacts"

func HouseholdSource(householdID string) NameSource {
	return NameSource(householdID)
}

func (s NameSource) IsExternal() bool {
	return s == SourceOpenFoodFacts
}

// BarcodeName is one (name, source) pair of the shared barcode cache. At most
// one row exists per (code, source). An external row with an empty name
// records that the open-data lookup was already tried and found nothing.
type BarcodeName struct {
	Code   string `gorm:"primaryKey;size:64" json:"code"`
	Source string `gorm:"primaryKey;size:64" json:"source"`
	Name   string `json:"name"`

	Timestamp
}

func (b *BarcodeName) NameSource() NameSource {
	return NameSource(b.Source)
}
