package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"millgate/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendRateResetNotice(ctx context.Context, toEmail string, notice port.ResetNotice) error {
	subject := fmt.Sprintf("Season bag rates reset: %s %s", notice.CropYearLabel, notice.SeasonCode)
	htmlBody := buildResetNoticeHTML(notice)
	textBody := fmt.Sprintf(
		"All season bag rates for %s %s at %s were reset to zero.\n\nRows zeroed: %d\nPerformed by: %s\n\nIf this was not expected, review the pricing screen before the next procurement run.",
		notice.CropYearLabel, notice.SeasonCode, notice.OrgName, notice.RowsZeroed, notice.PerformedByEmail)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildResetNoticeHTML(notice port.ResetNotice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Season bag rates were reset</h2>
  <p>All bag rates for <strong>%s %s</strong> at %s were reset to zero.</p>
  <ul>
    <li>Rows zeroed: %d</li>
    <li>Performed by: %s</li>
  </ul>
  <p>If this was not expected, review the pricing screen before the next procurement run.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Millgate - Rice Mill Procurement Back Office</p>
</body>
</html>`, notice.CropYearLabel, notice.SeasonCode, notice.OrgName, notice.RowsZeroed, notice.PerformedByEmail)
}
