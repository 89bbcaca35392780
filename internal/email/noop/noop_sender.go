package noop

import (
	"context"
	"log"

	"millgate/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs reset notices to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRateResetNotice(_ context.Context, toEmail string, notice port.ResetNotice) error {
	log.Printf("[NOOP EMAIL] Rate reset notice for %s: %s %s at %s, %d rows zeroed by %s",
		toEmail, notice.CropYearLabel, notice.SeasonCode, notice.OrgName, notice.RowsZeroed, notice.PerformedByEmail)
	return nil
}
