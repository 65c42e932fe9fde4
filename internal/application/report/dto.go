package report

import (
	"github.com/fintrack/backend/internal/application/activity"
	"github.com/fintrack/backend/internal/application/certificate"
	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/application/reminder"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RangeQuery selects a named report range: thisMonth (default), lastMonth,
// thisYear, or anything else for all time
type RangeQuery struct {
	Range string `form:"range" binding:"omitempty,max=20"`
}

// YearQuery selects the year of the monthly comparison. Zero means the current year.
type YearQuery struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// OverviewResponse totals the money flows of a range
type OverviewResponse struct {
	Range          string          `json:"range"`
	From           *common.Date    `json:"from"`
	To             *common.Date    `json:"to"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	TotalSalaries  decimal.Decimal `json:"total_salaries"`
	TotalFreelance decimal.Decimal `json:"total_freelance"`
	Net            decimal.Decimal `json:"net"`
}

// CategoryTotalResponse is one row of the expenses-by-category report
type CategoryTotalResponse struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// MonthlyComparisonResponse compares expenses and salaries month by month
type MonthlyComparisonResponse struct {
	Year     int           `json:"year"`
	Expenses report.Months `json:"expenses"`
	Salaries report.Months `json:"salaries"`
}

// SavingsBreakdownResponse splits the savings fund by source
type SavingsBreakdownResponse struct {
	Certificates decimal.Decimal `json:"certificates"`
	Goals        decimal.Decimal `json:"goals"`
	Gold         decimal.Decimal `json:"gold"`
}

// StatsResponse is the headline statistics of a range
type StatsResponse struct {
	Range            string                   `json:"range"`
	From             *common.Date             `json:"from"`
	To               *common.Date             `json:"to"`
	Revenue          decimal.Decimal          `json:"revenue"`
	TotalSalaries    decimal.Decimal          `json:"total_salaries"`
	Expenses         decimal.Decimal          `json:"expenses"`
	Balance          decimal.Decimal          `json:"balance"`
	SavingsFund      decimal.Decimal          `json:"savings_fund"`
	SavingsBreakdown SavingsBreakdownResponse `json:"savings_breakdown"`
}

// DashboardResponse is the landing page summary
type DashboardResponse struct {
	Stats                StatsResponse                    `json:"stats"`
	UpcomingReminders    []reminder.ReminderResponse      `json:"upcoming_reminders"`
	DangerousWithdrawals []certificate.WithdrawalResponse `json:"dangerous_withdrawals"`
	RecentActivity       []activity.EntryResponse         `json:"recent_activity"`
}

// RecommendationsResponse is the advice for the current month
type RecommendationsResponse struct {
	Income          decimal.Decimal         `json:"income"`
	Expenses        decimal.Decimal         `json:"expenses"`
	SavingsRate     decimal.Decimal         `json:"savings_rate"`
	Recommendations []report.Recommendation `json:"recommendations"`
}
