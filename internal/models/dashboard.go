package models

// DashboardOverview represents the KPI cards of the treasury dashboard.
// Income splits across the three ledger modules; treasury income excludes
// pronto_pago_benefit rows.
type DashboardOverview struct {
	TreasuryIncome       float64 `json:"treasury_income"`
	ExtraordinaryIncome  float64 `json:"extraordinary_income"`
	DegreeFeeIncome      float64 `json:"degree_fee_income"`
	TotalIncome          float64 `json:"total_income"`
	TotalExpenses        float64 `json:"total_expenses"`
	Balance              float64 `json:"balance"`
	ActiveMembers        int     `json:"active_members"`
	MembersInArrears     int     `json:"members_in_arrears"`
	PendingExtraordinary int     `json:"pending_extraordinary"`
	FiscalYearStart      int     `json:"fiscal_year_start"`
	FiscalYearEnd        int     `json:"fiscal_year_end"`
}

// MonthlyFlowPoint is one fiscal month in the income-vs-expenses chart
type MonthlyFlowPoint struct {
	Label         string  `json:"name"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	Treasury      float64 `json:"tesoreria"`
	Extraordinary float64 `json:"extraordinarias"`
	Expenses      float64 `json:"gastos"`
	Balance       float64 `json:"balance"`
}

// IncomeSlice is one bucket of the income distribution chart.
// Zero buckets are omitted entirely.
type IncomeSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryTotal is one bar of the expenses-by-category chart,
// sorted by descending value.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
