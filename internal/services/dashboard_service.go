package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
)

// FiscalYearInfo describes the lodge year, which runs July through June
type FiscalYearInfo struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

// CurrentFiscalYear returns the lodge year containing now
func CurrentFiscalYear(now time.Time) FiscalYearInfo {
	start := now.Year()
	if now.Month() < time.July {
		start--
	}
	return FiscalYearInfo{StartYear: start, EndYear: start + 1}
}

// YearFor returns the calendar year a month falls in within this lodge year
func (fy FiscalYearInfo) YearFor(month int) int {
	if month >= 7 {
		return fy.StartYear
	}
	return fy.EndYear
}

// Contains reports whether the given period belongs to this lodge year
func (fy FiscalYearInfo) Contains(month, year int) bool {
	return month >= 1 && month <= 12 && fy.YearFor(month) == year
}

// FiscalMonth is a calendar period within a lodge year
type FiscalMonth struct {
	Month int
	Year  int
}

// Months returns the twelve periods of the lodge year, July first
func (fy FiscalYearInfo) Months() []FiscalMonth {
	months := make([]FiscalMonth, 0, len(fiscalMonths))
	for _, fm := range fiscalMonths {
		months = append(months, FiscalMonth{Month: fm.Month, Year: fy.YearFor(fm.Month)})
	}
	return months
}

// fiscalMonths in display order, July first
var fiscalMonths = []struct {
	Month int
	Label string
}{
	{7, "Jul"}, {8, "Ago"}, {9, "Sep"}, {10, "Oct"}, {11, "Nov"}, {12, "Dic"},
	{1, "Ene"}, {2, "Feb"}, {3, "Mar"}, {4, "Abr"}, {5, "May"}, {6, "Jun"},
}

// DashboardService computes the treasury dashboard: KPI cards, the fiscal
// year monthly flow, income distribution, expenses by category, and today's
// birthdays. All aggregation happens in memory over full-table reads; the
// ledgers of a single lodge stay small enough for that.
type DashboardService struct {
	memberRepo   repository.MemberRepository
	monthlyRepo  repository.MonthlyPaymentRepository
	extraRepo    repository.ExtraordinaryRepository
	degreeRepo   repository.DegreeFeeRepository
	expenseRepo  repository.ExpenseRepository
	settingsRepo repository.SettingRepository
	defaults     *models.Setting
}

func NewDashboardService(
	memberRepo repository.MemberRepository,
	monthlyRepo repository.MonthlyPaymentRepository,
	extraRepo repository.ExtraordinaryRepository,
	degreeRepo repository.DegreeFeeRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingRepository,
	defaults *models.Setting,
) *DashboardService {
	return &DashboardService{
		memberRepo:   memberRepo,
		monthlyRepo:  monthlyRepo,
		extraRepo:    extraRepo,
		degreeRepo:   degreeRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GetOverview computes the KPI cards for the current fiscal year
func (s *DashboardService) GetOverview(ctx context.Context) (*models.DashboardOverview, error) {
	fy := CurrentFiscalYear(time.Now())

	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	monthlyPayments, err := s.monthlyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	extraPayments, err := s.extraRepo.FindAllPayments(ctx)
	if err != nil {
		return nil, err
	}

	fees, err := s.extraRepo.FindAllFees(ctx)
	if err != nil {
		return nil, err
	}

	degreeTotal, err := s.degreeRepo.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	expenseTotal, err := s.expenseRepo.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return nil, err
	}

	treasuryIncome := 0.0
	for _, p := range monthlyPayments {
		if p.CountsAsIncome() {
			treasuryIncome += p.Amount
		}
	}

	extraIncome := 0.0
	for _, p := range extraPayments {
		extraIncome += p.AmountPaid
	}

	totalIncome := treasuryIncome + extraIncome + degreeTotal

	activeMembers := filterActive(members)

	overview := &models.DashboardOverview{
		TreasuryIncome:       round2(treasuryIncome),
		ExtraordinaryIncome:  round2(extraIncome),
		DegreeFeeIncome:      round2(degreeTotal),
		TotalIncome:          round2(totalIncome),
		TotalExpenses:        round2(expenseTotal),
		Balance:              round2(totalIncome - expenseTotal),
		ActiveMembers:        len(activeMembers),
		MembersInArrears:     countMembersInArrears(activeMembers, monthlyPayments, settings.MonthlyFeeBase, fy),
		PendingExtraordinary: countPendingExtraordinary(activeMembers, fees, extraPayments),
		FiscalYearStart:      fy.StartYear,
		FiscalYearEnd:        fy.EndYear,
	}
	return overview, nil
}

// GetMonthlyFlow returns one point per fiscal month (July through June) with
// treasury income, extraordinary income, expenses, and the net balance.
func (s *DashboardService) GetMonthlyFlow(ctx context.Context) ([]models.MonthlyFlowPoint, error) {
	fy := CurrentFiscalYear(time.Now())

	monthlyPayments, err := s.monthlyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	extraPayments, err := s.extraRepo.FindAllPayments(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]models.MonthlyFlowPoint, 0, len(fiscalMonths))
	for idx, fm := range fiscalMonths {
		year := fy.StartYear
		if idx >= 6 {
			year = fy.EndYear
		}

		treasury := 0.0
		for _, p := range monthlyPayments {
			if p.Month == fm.Month && p.Year == year && p.CountsAsIncome() {
				treasury += p.Amount
			}
		}

		extra := 0.0
		for _, p := range extraPayments {
			if p.PaymentDate == nil {
				continue
			}
			if int(p.PaymentDate.Month()) == fm.Month && p.PaymentDate.Year() == year {
				extra += p.AmountPaid
			}
		}

		spent := 0.0
		for _, e := range expenses {
			if int(e.ExpenseDate.Month()) == fm.Month && e.ExpenseDate.Year() == year {
				spent += e.Amount
			}
		}

		points = append(points, models.MonthlyFlowPoint{
			Label:         fm.Label,
			Month:         fm.Month,
			Year:          year,
			Treasury:      round2(treasury),
			Extraordinary: round2(extra),
			Expenses:      round2(spent),
			Balance:       round2(treasury + extra - spent),
		})
	}
	return points, nil
}

// GetIncomeDistribution returns the income pie buckets, skipping empty ones
func (s *DashboardService) GetIncomeDistribution(ctx context.Context) ([]models.IncomeSlice, error) {
	overview, err := s.GetOverview(ctx)
	if err != nil {
		return nil, err
	}

	slices := []models.IncomeSlice{}
	if overview.TreasuryIncome > 0 {
		slices = append(slices, models.IncomeSlice{Name: "Tesorería", Value: overview.TreasuryIncome})
	}
	if overview.ExtraordinaryIncome > 0 {
		slices = append(slices, models.IncomeSlice{Name: "Cuotas Ext.", Value: overview.ExtraordinaryIncome})
	}
	if overview.DegreeFeeIncome > 0 {
		slices = append(slices, models.IncomeSlice{Name: "Der. Grado", Value: overview.DegreeFeeIncome})
	}
	return slices, nil
}

// GetExpensesByCategory aggregates all expenses per category, largest first
func (s *DashboardService) GetExpensesByCategory(ctx context.Context) ([]models.CategoryTotal, error) {
	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]float64{}
	for _, e := range expenses {
		byCategory[e.CategoryOrDefault()] += e.Amount
	}

	totals := make([]models.CategoryTotal, 0, len(byCategory))
	for name, value := range byCategory {
		totals = append(totals, models.CategoryTotal{Name: name, Value: round2(value)})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Value != totals[j].Value {
			return totals[i].Value > totals[j].Value
		}
		return totals[i].Name < totals[j].Name
	})
	return totals, nil
}

// GetBirthdayMembers returns active members whose birthday falls today
func (s *DashboardService) GetBirthdayMembers(ctx context.Context) ([]models.Member, error) {
	members, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	birthdays := []models.Member{}
	for _, m := range members {
		if m.IsBirthdayToday(now) {
			birthdays = append(birthdays, m)
		}
	}
	return birthdays, nil
}

// countMembersInArrears counts active members with at least one fiscal month
// missing a payment or paid below the base fee. Early-payment benefit months
// always count as covered.
func countMembersInArrears(active []models.Member, payments []models.MonthlyPayment, feeBase float64, fy FiscalYearInfo) int {
	type period struct {
		member uint
		month  int
		year   int
	}
	index := make(map[period]*models.MonthlyPayment, len(payments))
	for i := range payments {
		p := &payments[i]
		index[period{p.MemberID, p.Month, p.Year}] = p
	}

	count := 0
	for _, m := range active {
		for idx, fm := range fiscalMonths {
			year := fy.StartYear
			if idx >= 6 {
				year = fy.EndYear
			}

			p, ok := index[period{m.ID, fm.Month, year}]
			if !ok || !p.CoversFee(feeBase) {
				count++
				break
			}
		}
	}
	return count
}

// countPendingExtraordinary counts (fee, active member) pairs without any
// recorded payment
func countPendingExtraordinary(active []models.Member, fees []models.ExtraordinaryFee, payments []models.ExtraordinaryPayment) int {
	type pair struct {
		fee    uint
		member uint
	}
	paid := make(map[pair]bool, len(payments))
	for _, p := range payments {
		paid[pair{p.FeeID, p.MemberID}] = true
	}

	count := 0
	for _, fee := range fees {
		for _, m := range active {
			if !paid[pair{fee.ID, m.ID}] {
				count++
			}
		}
	}
	return count
}

func filterActive(members []models.Member) []models.Member {
	active := make([]models.Member, 0, len(members))
	for _, m := range members {
		if m.IsActive() {
			active = append(active, m)
		}
	}
	return active
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
