package jobs

import (
	"context"
	"time"

	"fundledger-backend/internal/config"
	"fundledger-backend/internal/logger"
	"fundledger-backend/internal/repository/postgres"
	"fundledger-backend/internal/service"
)

// Services bundles the services the jobs depend on.
type Services struct {
	CarryForward service.CarryForwardService
	Notifier     service.Notifier
}

// JobRunner executes the scheduled maintenance jobs. Core correctness never
// depends on them: OTP expiry is checked at verification time and invite
// expiry at redemption time; these jobs only tidy up and report.
type JobRunner struct {
	store    *postgres.Store
	services *Services
	cfg      *config.Config
}

func NewJobRunner(store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{store: store, services: services, cfg: cfg}
}

func (j *JobRunner) Config() *config.Config {
	return j.cfg
}

// DeactivateExpiredInvites flips is_active off for invite links past their
// expiry, enforcing the invariant that expired links read as inactive.
func (j *JobRunner) DeactivateExpiredInvites() {
	ctx := context.Background()
	count, err := j.store.DeactivateExpired(ctx, time.Now())
	if err != nil {
		logger.Error("failed to deactivate expired invites", "error", err)
		return
	}
	logger.Info("deactivated expired invite links", "count", count)
}

// SendYearEndSummaries mails each member their carry-forward summary for the
// year that just closed. Runs early January.
func (j *JobRunner) SendYearEndSummaries() {
	ctx := context.Background()
	year := time.Now().Year() - 1

	departments, err := j.store.ListAll(ctx)
	if err != nil {
		logger.Error("failed to list departments for year-end summaries", "error", err)
		return
	}

	var sent int
	for _, dept := range departments {
		results, err := j.services.CarryForward.DepartmentYearSummary(ctx, dept.ID, year)
		if err != nil {
			logger.Error("failed to compute year summary", "department_id", dept.ID, "error", err)
			continue
		}
		for _, res := range results {
			user, err := j.store.UserRepository.GetByID(ctx, res.UserID)
			if err != nil {
				logger.Warn("skipping summary for unknown user", "user_id", res.UserID, "error", err)
				continue
			}
			if err := j.services.Notifier.SendYearSummary(ctx, user.Email, year, res); err != nil {
				logger.Warn("failed to send year summary", "user_id", res.UserID, "error", err)
				continue
			}
			sent++
		}
	}
	logger.Info("sent year-end contribution summaries", "year", year, "count", sent)
}

// RunAllNightlyJobs runs every nightly job in sequence.
func (j *JobRunner) RunAllNightlyJobs() {
	j.DeactivateExpiredInvites()
}
