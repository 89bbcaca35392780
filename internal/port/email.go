package port

import "context"

// ResetNotice describes a completed season-rate reset for the audit email.
type ResetNotice struct {
	OrgName          string
	CropYearLabel    string
	SeasonCode       string
	RowsZeroed       int
	PerformedByEmail string
}

// EmailSender defines the contract for sending back-office emails.
type EmailSender interface {
	SendRateResetNotice(ctx context.Context, toEmail string, notice ResetNotice) error
}
