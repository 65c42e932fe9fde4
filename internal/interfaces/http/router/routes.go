package router

import (
	"github.com/fintrack/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the handlers mounted under the versioned API
type Handlers struct {
	Auth         *handler.AuthHandler
	Expense      *handler.ExpenseHandler
	Salary       *handler.SalaryHandler
	Category     *handler.CategoryHandler
	Goal         *handler.GoalHandler
	Recurring    *handler.RecurringHandler
	Certificate  *handler.CertificateHandler
	Gold         *handler.GoldHandler
	Freelance    *handler.FreelanceHandler
	WhatsApp     *handler.WhatsAppHandler
	Reminder     *handler.ReminderHandler
	Notification *handler.NotificationHandler
	Activity     *handler.ActivityHandler
	Setting      *handler.SettingHandler
	Report       *handler.ReportHandler
	Email        *handler.EmailHandler
	Backup       *handler.BackupHandler
	System       *handler.SystemHandler
}

// FinanceRoutes returns the route groups of the finance API. authLimit, when
// non-nil, is applied to the /auth group only.
func FinanceRoutes(h Handlers, authLimit gin.HandlerFunc) []*Group {
	auth := NewGroup("/auth")
	if authLimit != nil {
		auth.Use(authLimit)
	}
	auth.POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me)

	user := NewGroup("").
		GET("/user", h.Auth.Me)

	expenses := NewGroup("/expenses").
		GET("", h.Expense.List).
		POST("", h.Expense.Create).
		GET("/:id", h.Expense.GetByID).
		PUT("/:id", h.Expense.Update).
		DELETE("/:id", h.Expense.Delete)

	salaries := NewGroup("/salaries").
		GET("", h.Salary.List).
		POST("", h.Salary.Create).
		GET("/:id", h.Salary.GetByID).
		PUT("/:id", h.Salary.Update).
		DELETE("/:id", h.Salary.Delete)

	groups := []*Group{auth, user, expenses, salaries}

	for _, prefix := range []string{"/expense-categories", "/categories"} {
		groups = append(groups, NewGroup(prefix).
			GET("", h.Category.List).
			POST("", h.Category.Create).
			DELETE("/:id", h.Category.Delete))
	}

	goals := NewGroup("/goals").
		GET("", h.Goal.List).
		POST("", h.Goal.Create).
		GET("/:id", h.Goal.GetByID).
		PUT("/:id", h.Goal.Update).
		POST("/:id/add-amount", h.Goal.AddAmount).
		DELETE("/:id", h.Goal.Delete)

	recurring := NewGroup("/recurring").
		POST("/generate", h.Recurring.Generate)

	certificates := NewGroup("/certificates").
		GET("", h.Certificate.List).
		POST("", h.Certificate.Create).
		GET("/:id", h.Certificate.GetByID).
		PUT("/:id", h.Certificate.Update).
		DELETE("/:id", h.Certificate.Delete).
		GET("/:id/withdrawals", h.Certificate.ListWithdrawals).
		POST("/:id/withdrawals", h.Certificate.CreateWithdrawal)

	certificateWithdrawals := NewGroup("/certificate-withdrawals").
		GET("/:id", h.Certificate.GetWithdrawal).
		DELETE("/:id", h.Certificate.DeleteWithdrawal).
		POST("/:id/repay", h.Certificate.Repay)

	withdrawals := NewGroup("/withdrawals").
		POST("/:id/repay", h.Certificate.Repay).
		POST("/:id/pay-installment", h.Certificate.PayInstallment)

	gold := NewGroup("/gold")
	gold.Sub("/purchases").
		GET("", h.Gold.ListPurchases).
		POST("", h.Gold.CreatePurchase).
		GET("/:id", h.Gold.GetPurchase).
		PUT("/:id", h.Gold.UpdatePurchase).
		DELETE("/:id", h.Gold.DeletePurchase)
	gold.Sub("/sales").
		GET("", h.Gold.ListSales).
		POST("", h.Gold.CreateSale).
		GET("/:id", h.Gold.GetSale).
		DELETE("/:id", h.Gold.DeleteSale)
	gold.GET("/summary", h.Gold.Summary)

	freelance := NewGroup("/freelance")
	freelance.Sub("/revenues").
		GET("", h.Freelance.ListRevenues).
		POST("", h.Freelance.CreateRevenue).
		GET("/:id", h.Freelance.GetRevenue).
		PUT("/:id", h.Freelance.UpdateRevenue).
		DELETE("/:id", h.Freelance.DeleteRevenue)
	freelance.Sub("/payments").
		GET("", h.Freelance.ListPayments).
		POST("", h.Freelance.CreatePayment).
		GET("/:id", h.Freelance.GetPayment).
		DELETE("/:id", h.Freelance.DeletePayment)

	whatsapp := NewGroup("/whatsapp/subscriptions").
		GET("", h.WhatsApp.List).
		POST("", h.WhatsApp.Create).
		GET("/:id", h.WhatsApp.GetByID).
		PUT("/:id", h.WhatsApp.Update).
		DELETE("/:id", h.WhatsApp.Delete)

	reminders := NewGroup("/reminders").
		GET("", h.Reminder.List).
		POST("", h.Reminder.Create).
		GET("/:id", h.Reminder.GetByID).
		PUT("/:id", h.Reminder.Update).
		POST("/:id/done", h.Reminder.ToggleDone).
		DELETE("/:id", h.Reminder.Delete)

	notifications := NewGroup("/notifications").
		GET("", h.Notification.List).
		POST("", h.Notification.Create).
		GET("/:id", h.Notification.GetByID).
		DELETE("/:id", h.Notification.Delete)

	activity := NewGroup("/activity").
		GET("", h.Activity.List).
		POST("", h.Activity.Create)

	activityLog := NewGroup("/activity-log").
		GET("", h.Activity.List).
		POST("", h.Activity.Create).
		DELETE("", h.Activity.Clear).
		DELETE("/:id", h.Activity.Delete)

	settings := NewGroup("/settings").
		GET("", h.Setting.GetAll).
		POST("", h.Setting.Upsert).
		GET("/:key", h.Setting.Get).
		DELETE("/:key", h.Setting.Delete)

	reports := NewGroup("/reports").
		GET("/overview", h.Report.Overview).
		GET("/expenses-by-category", h.Report.ExpensesByCategory).
		GET("/monthly-comparison", h.Report.MonthlyComparison).
		GET("/stats", h.Report.Stats)

	insights := NewGroup("").
		GET("/dashboard", h.Report.Dashboard).
		GET("/optimization/recommendations", h.Report.Recommendations)

	emails := NewGroup("/emails").
		POST("/send", h.Email.Send)

	backups := NewGroup("/backups").
		GET("/latest", h.Backup.Latest).
		POST("/export", h.Backup.Export).
		POST("/import", h.Backup.Import).
		GET("/:id", h.Backup.Get).
		DELETE("/:id", h.Backup.Delete)

	system := NewGroup("").
		GET("/health", h.System.Health).
		GET("/system/info", h.System.Info)

	return append(groups,
		goals, recurring,
		certificates, certificateWithdrawals, withdrawals,
		gold, freelance, whatsapp,
		reminders, notifications, activity, activityLog, settings,
		reports, insights, emails, backups, system,
	)
}
