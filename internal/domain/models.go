package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a rice-mill operator's back office.
type Organization struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Slug       string    `db:"slug" json:"slug"`
	AdminEmail string    `db:"admin_email" json:"admin_email"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated back-office user belonging to an organization.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           UserRole  `db:"role" json:"role"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// CropYear represents a named agricultural year, e.g. "2024-25".
// Crop years are immutable once created and are selected by StartYear,
// their natural business key, never by ID.
type CropYear struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	StartYear int       `db:"start_year" json:"start_year"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RiceType represents a procurable paddy type. Only active rice types
// participate in the pricing matrix.
type RiceType struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RiceVariety represents a named variety of a rice type.
type RiceVariety struct {
	ID         uuid.UUID `db:"id" json:"id"`
	RiceTypeID uuid.UUID `db:"rice_type_id" json:"rice_type_id"`
	Name       string    `db:"name" json:"name"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ByProduct represents a milling by-product (bran, husk, broken rice) kept
// as master data alongside rice types.
type ByProduct struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Location is one node of the state → district → mandal → village hierarchy.
// ParentID is nil for states. Villages flagged as procurement centers are
// where paddy is physically bought.
type Location struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	Level               LocationLevel `db:"level" json:"level"`
	ParentID            *uuid.UUID    `db:"parent_id" json:"parent_id"`
	Name                string        `db:"name" json:"name"`
	IsProcurementCenter bool          `db:"is_procurement_center" json:"is_procurement_center"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

// RiceTypeRef is the rice-type projection carried inside a season bag rate.
type RiceTypeRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SeasonBagRate is the canonical in-memory pricing entry: one per
// (crop-year start year, season, rice type), with one nullable rate per bag
// size. The 100kg rate is the single source of truth; the 75kg and 40kg
// rates are always derived from it, never independently entered.
type SeasonBagRate struct {
	CropYearStartYear int                  `json:"cropYearStartYear"`
	SeasonCode        SeasonCode           `json:"seasonCode"`
	RiceType          RiceTypeRef          `json:"riceType"`
	Rates             map[BagSize]*float64 `json:"rates"`
}

// Key returns the unique matrix key for the entry.
func (r SeasonBagRate) Key() string {
	return string(r.SeasonCode) + "/" + r.RiceType.Code
}

// SeasonBagRateRow is the persisted form of one pricing entry.
type SeasonBagRateRow struct {
	ID                uuid.UUID  `db:"id"`
	OrganizationID    uuid.UUID  `db:"organization_id"`
	CropYearStartYear int        `db:"crop_year_start_year"`
	SeasonCode        SeasonCode `db:"season_code"`
	RiceTypeCode      string     `db:"rice_type_code"`
	Rate40            *float64   `db:"rate_40"`
	Rate75            *float64   `db:"rate_75"`
	Rate100           *float64   `db:"rate_100"`
	UpdatedBy         uuid.UUID  `db:"updated_by"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}
