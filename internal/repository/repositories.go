package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Member        MemberRepository
	Monthly       MonthlyPaymentRepository
	Extraordinary ExtraordinaryRepository
	DegreeFee     DegreeFeeRepository
	Expense       ExpenseRepository
	Sequence      SequenceRepository
	Setting       SettingRepository
	User          UserRepository
	Notification  NotificationRepository
	RefreshToken  RefreshTokenRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Member:        NewMemberRepository(db),
		Monthly:       NewMonthlyPaymentRepository(db),
		Extraordinary: NewExtraordinaryRepository(db),
		DegreeFee:     NewDegreeFeeRepository(db),
		Expense:       NewExpenseRepository(db),
		Sequence:      NewSequenceRepository(db),
		Setting:       NewSettingRepository(db),
		User:          NewUserRepository(db),
		Notification:  NewNotificationRepository(db),
		RefreshToken:  NewRefreshTokenRepository(db),
	}
}
