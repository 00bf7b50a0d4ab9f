package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type otpRepository struct {
	db *sql.DB
}

func NewOTPRepository(db *sql.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *domain.WithdrawalOTP) error {
	query := `INSERT INTO withdrawal_otps (withdrawal_id, user_id, code, expires_on, is_used, created_on)
	          VALUES ($1, $2, $3, $4, false, $5) RETURNING id`
	return querier(ctx, r.db).QueryRowContext(ctx, query,
		otp.WithdrawalID, otp.UserID, otp.Code, otp.ExpiresOn, time.Now()).Scan(&otp.ID)
}

func (r *otpRepository) GetUnused(ctx context.Context, withdrawalID, userID int32) (*domain.WithdrawalOTP, error) {
	otp := &domain.WithdrawalOTP{}
	query := `SELECT id, withdrawal_id, user_id, code, expires_on, is_used, created_on
	          FROM withdrawal_otps WHERE withdrawal_id = $1 AND user_id = $2 AND is_used = false
	          ORDER BY created_on DESC LIMIT 1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, withdrawalID, userID).
		Scan(&otp.ID, &otp.WithdrawalID, &otp.UserID, &otp.Code, &otp.ExpiresOn, &otp.IsUsed, &otp.CreatedOn)
	if err != nil {
		return nil, notFound(err, "no valid OTP")
	}
	return otp, nil
}

func (r *otpRepository) MarkUsed(ctx context.Context, otpID int32) error {
	query := `UPDATE withdrawal_otps SET is_used = true WHERE id = $1`
	_, err := querier(ctx, r.db).ExecContext(ctx, query, otpID)
	return err
}

func (r *otpRepository) InvalidateAll(ctx context.Context, withdrawalID, userID int32) error {
	query := `UPDATE withdrawal_otps SET is_used = true WHERE withdrawal_id = $1 AND user_id = $2 AND is_used = false`
	_, err := querier(ctx, r.db).ExecContext(ctx, query, withdrawalID, userID)
	return err
}
