package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOrgInactive         = errors.New("organization is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists for this organization")
	ErrDuplicateOrgSlug    = errors.New("organization slug already exists")
	ErrDuplicateCode       = errors.New("code already exists")
	ErrDuplicateCropYear   = errors.New("crop year already exists")
	ErrInvalidSeasonCode   = errors.New("invalid season code")
	ErrInvalidBagSize      = errors.New("invalid bag size")
	ErrInvalidRate         = errors.New("rate must be a non-negative number")
	ErrResetNotConfirmed   = errors.New("reset confirmation token missing or incorrect")
	ErrNoActiveRiceTypes   = errors.New("no active rice types configured")
	ErrCropYearNotFound    = errors.New("crop year not found")
	ErrInvalidParent       = errors.New("parent location missing or at the wrong level")
	ErrLocationHasChildren = errors.New("location still has child locations")
)
