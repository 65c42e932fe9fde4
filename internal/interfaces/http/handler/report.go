package handler

import (
	reportapp "github.com/fintrack/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the reports, the dashboard and the optimisation
// recommendations
type ReportHandler struct {
	BaseHandler
	reportService    *reportapp.ReportService
	dashboardService *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(base BaseHandler, reportService *reportapp.ReportService, dashboardService *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:      base,
		reportService:    reportService,
		dashboardService: dashboardService,
	}
}

// Overview godoc
// @Summary      Money flow overview
// @Description  Totals of expenses, salaries and freelance revenue. range is thisMonth (default), lastMonth, thisYear or anything else for all time.
// @Tags         reports
// @Produce      json
// @Param        range query string false "Report range" default(thisMonth)
// @Success      200 {object} dto.Response{data=reportapp.OverviewResponse}
// @Security     BearerAuth
// @Router       /reports/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q reportapp.RangeQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.reportService.Overview(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExpensesByCategory godoc
// @Summary      Expenses per category
// @Description  Ordered by total descending
// @Tags         reports
// @Produce      json
// @Param        range query string false "Report range" default(thisMonth)
// @Success      200 {object} dto.Response{data=[]reportapp.CategoryTotalResponse}
// @Security     BearerAuth
// @Router       /reports/expenses-by-category [get]
func (h *ReportHandler) ExpensesByCategory(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q reportapp.RangeQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.reportService.ExpensesByCategory(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MonthlyComparison godoc
// @Summary      Monthly expenses and salaries
// @Description  All twelve months are present, zero-filled
// @Tags         reports
// @Produce      json
// @Param        year query int false "Year (default: current)"
// @Success      200 {object} dto.Response{data=reportapp.MonthlyComparisonResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/monthly-comparison [get]
func (h *ReportHandler) MonthlyComparison(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q reportapp.YearQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.reportService.MonthlyComparison(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Stats godoc
// @Summary      Balance and savings fund
// @Tags         reports
// @Produce      json
// @Param        range query string false "Report range" default(thisMonth)
// @Success      200 {object} dto.Response{data=reportapp.StatsResponse}
// @Security     BearerAuth
// @Router       /reports/stats [get]
func (h *ReportHandler) Stats(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q reportapp.RangeQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.reportService.Stats(c.Request.Context(), userID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Dashboard godoc
// @Summary      Dashboard
// @Description  This month's stats with upcoming reminders, dangerous withdrawals and recent activity
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=reportapp.DashboardResponse}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.dashboardService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Recommendations godoc
// @Summary      Optimisation recommendations
// @Description  Savings rate of the current month and the rules it trips
// @Tags         optimization
// @Produce      json
// @Success      200 {object} dto.Response{data=reportapp.RecommendationsResponse}
// @Security     BearerAuth
// @Router       /optimization/recommendations [get]
func (h *ReportHandler) Recommendations(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.reportService.Recommendations(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
