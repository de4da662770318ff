package handlers

import (
	"github.com/jvintimilla/logia-api/internal/services"
	"github.com/jvintimilla/logia-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	User          *UserHandler
	Member        *MemberHandler
	Dues          *DuesHandler
	Extraordinary *ExtraordinaryHandler
	Degree        *DegreeHandler
	Expense       *ExpenseHandler
	Dashboard     *DashboardHandler
	Report        *ReportHandler
	Setting       *SettingHandler
	Notification  *NotificationHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(),
		Auth:          NewAuthHandler(svcs.Auth),
		User:          NewUserHandler(svcs.User),
		Member:        NewMemberHandler(svcs.Member, svcs.Report, store),
		Dues:          NewDuesHandler(svcs.Dues),
		Extraordinary: NewExtraordinaryHandler(svcs.Extraordinary),
		Degree:        NewDegreeHandler(svcs.Degree),
		Expense:       NewExpenseHandler(svcs.Expense),
		Dashboard:     NewDashboardHandler(svcs.Dashboard, svcs.Export),
		Report:        NewReportHandler(svcs.Report),
		Setting:       NewSettingHandler(svcs.Setting),
		Notification:  NewNotificationHandler(svcs.Notification),
	}
}
