package report

import (
	"context"

	"github.com/fintrack/backend/internal/application/activity"
	"github.com/fintrack/backend/internal/application/certificate"
	"github.com/fintrack/backend/internal/application/reminder"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecentActivityLimit bounds the activity shown on the dashboard
const RecentActivityLimit = 10

// UpcomingReminders lists the open reminders due soon
type UpcomingReminders interface {
	Upcoming(ctx context.Context, userID uuid.UUID) ([]reminder.ReminderResponse, error)
}

// DangerousWithdrawals lists the withdrawals close to their due date
type DangerousWithdrawals interface {
	DangerousWithdrawals(ctx context.Context, userID uuid.UUID) ([]certificate.WithdrawalResponse, error)
}

// RecentActivity lists the latest activity entries
type RecentActivity interface {
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]activity.EntryResponse, error)
}

// DashboardService assembles the landing page
type DashboardService struct {
	reports     *ReportService
	reminders   UpcomingReminders
	withdrawals DangerousWithdrawals
	activity    RecentActivity
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(reports *ReportService, reminders UpcomingReminders, withdrawals DangerousWithdrawals, activity RecentActivity) *DashboardService {
	return &DashboardService{
		reports:     reports,
		reminders:   reminders,
		withdrawals: withdrawals,
		activity:    activity,
	}
}

// Get returns this month's stats with the reminders, withdrawals and activity
// that need attention
func (s *DashboardService) Get(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	resp := &DashboardResponse{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.reports.Stats(gctx, userID, RangeQuery{Range: shared.RangeThisMonth})
		if err != nil {
			return err
		}
		resp.Stats = *stats
		return nil
	})
	g.Go(func() error {
		var err error
		resp.UpcomingReminders, err = s.reminders.Upcoming(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		resp.DangerousWithdrawals, err = s.withdrawals.DangerousWithdrawals(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		resp.RecentActivity, err = s.activity.Recent(gctx, userID, RecentActivityLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
