package service

import (
	"context"
	"fmt"

	"fundledger-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type sendGridNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string) Notifier {
	return &sendGridNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridNotifier) SendOTP(ctx context.Context, email, code string) error {
	subject := "Your withdrawal verification code"
	plainText := fmt.Sprintf("Your one-time verification code is %s. It expires in 10 minutes.", code)
	return s.send(email, subject, plainText)
}

func (s *sendGridNotifier) SendWithdrawalApproved(ctx context.Context, email string, amount decimal.Decimal, reason string) error {
	subject := "Withdrawal approved"
	plainText := fmt.Sprintf("Your withdrawal request of %s has been approved.", amount.StringFixed(2))
	if reason != "" {
		plainText += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, subject, plainText)
}

func (s *sendGridNotifier) SendInvite(ctx context.Context, email, code, url string) error {
	subject := "You have been invited"
	plainText := fmt.Sprintf("You have been invited to join a contribution group.\n\nInvite code: %s\n\nAccept here: %s", code, url)
	return s.send(email, subject, plainText)
}

func (s *sendGridNotifier) SendYearSummary(ctx context.Context, email string, year int, result domain.CarryForwardResult) error {
	subject := fmt.Sprintf("Your %d contribution summary", year)
	plainText := fmt.Sprintf(
		"Contribution summary for %d:\n\nTotal contributed: %s\nMonths cleared: %d\nCarry-forward: %s",
		year, result.TotalContributed.StringFixed(2), result.MonthsCleared, result.CarryForward.StringFixed(2))
	return s.send(email, subject, plainText)
}

func (s *sendGridNotifier) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
