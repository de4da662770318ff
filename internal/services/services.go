package services

import (
	"github.com/jvintimilla/logia-api/internal/config"
	"github.com/jvintimilla/logia-api/internal/jobs"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth          *AuthService
	User          *UserService
	Member        *MemberService
	Dues          *DuesService
	Extraordinary *ExtraordinaryService
	Degree        *DegreeService
	Expense       *ExpenseService
	Setting       *SettingService
	Dashboard     *DashboardService
	Export        *ExportService
	Report        *ReportService
	Receipt       *ReceiptService
	Notification  *NotificationService
	Email         *EmailService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	defaults := &models.Setting{
		InstitutionName: cfg.InstitutionName,
		MonthlyFeeBase:  cfg.MonthlyFeeBase,
		TreasurerTitle:  "Tesorero",
		VenerableTitle:  "Venerable Maestro",
	}

	emailSvc := NewEmailService(cfg)
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	imageSvc := NewImageService(store)
	receiptSvc := NewReceiptService(repos.Sequence, NewImageLoader(store))
	dashboardSvc := NewDashboardService(repos.Member, repos.Monthly, repos.Extraordinary, repos.DegreeFee, repos.Expense, repos.Setting, defaults)

	return &Services{
		Auth:          NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:          NewUserService(repos.User, worker, emailSvc),
		Member:        NewMemberService(repos.Member, imageSvc),
		Dues:          NewDuesService(repos.Monthly, repos.Member, repos.Setting, receiptSvc, emailSvc, notificationSvc, worker, store, defaults),
		Extraordinary: NewExtraordinaryService(repos.Extraordinary, repos.Member, repos.Setting, receiptSvc, emailSvc, notificationSvc, worker, defaults),
		Degree:        NewDegreeService(repos.DegreeFee, repos.Member, repos.Setting, receiptSvc, emailSvc, worker, defaults),
		Expense:       NewExpenseService(repos.Expense, store),
		Setting:       NewSettingService(repos.Setting, store, defaults),
		Dashboard:     dashboardSvc,
		Export:        NewExportService(dashboardSvc),
		Report:        NewReportService(repos.Member, repos.Monthly, repos.Extraordinary, repos.DegreeFee, repos.Expense, repos.Setting, defaults),
		Receipt:       receiptSvc,
		Notification:  notificationSvc,
		Email:         emailSvc,
	}
}
