package domain

// SeasonCode identifies one of the two cropping seasons within a crop year.
type SeasonCode string

const (
	SeasonKharif SeasonCode = "KHARIF"
	SeasonRabi   SeasonCode = "RABI"
)

// ValidSeasonCodes enumerates the closed set of season codes.
var ValidSeasonCodes = map[SeasonCode]bool{
	SeasonKharif: true,
	SeasonRabi:   true,
}

// Valid reports whether the season code is a member of the closed enumeration.
func (s SeasonCode) Valid() bool {
	return ValidSeasonCodes[s]
}

// BagSize identifies one of the three standard sack weights used for pricing.
type BagSize string

const (
	Bag40  BagSize = "KG_40"
	Bag75  BagSize = "KG_75"
	Bag100 BagSize = "KG_100"
)

// BagSizes lists all bag sizes ordered by nominal weight.
var BagSizes = []BagSize{Bag40, Bag75, Bag100}

// BagSizeLabels maps bag sizes to their human-readable labels.
var BagSizeLabels = map[BagSize]string{
	Bag40:  "40kg",
	Bag75:  "75kg",
	Bag100: "100kg",
}

// Valid reports whether the bag size is a member of the closed enumeration.
func (b BagSize) Valid() bool {
	_, ok := BagSizeLabels[b]
	return ok
}

// Label returns the human-readable label for the bag size.
func (b BagSize) Label() string {
	return BagSizeLabels[b]
}

// UserRole defines the role hierarchy within an organization.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
)

// LocationLevel identifies a tier of the geographic hierarchy.
type LocationLevel string

const (
	LevelState    LocationLevel = "state"
	LevelDistrict LocationLevel = "district"
	LevelMandal   LocationLevel = "mandal"
	LevelVillage  LocationLevel = "village"
)

// ResetConfirmToken is the literal text an operator must type before a
// season-rate reset is allowed to reach the network.
const ResetConfirmToken = "RESET"
