package expenseService

import (
	"SpendScan/internal/api/expense"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"regexp"
	"sort"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// BuildSummary aggregates expenses that fall inside [windowStart, windowEnd).
// Expenses outside the window are ignored. The daily series holds one entry
// per day of month that has records, ascending. The weekly series buckets by
// day of month, seven days per bucket, so "Week 5" holds days 29 through 31.
// The top category is the one with the largest total; ties resolve to the
// lexicographically smallest category name.
func BuildSummary(expenses []entity.Expense, windowStart time.Time, windowEnd time.Time) expense.SummaryResponse {
	summary := expense.SummaryResponse{
		CategoryTotals: []expense.CategoryTotal{},
		DailySeries:    []expense.DayTotal{},
		WeeklySeries:   []expense.WeeklyTotal{},
		WindowStart:    windowStart.Format(expenseDateLayout),
		WindowEnd:      windowEnd.Format(expenseDateLayout),
	}

	categoryTotals := make(map[string]float64)
	dayTotals := make(map[int]float64)
	weekTotals := make(map[int]float64)

	for _, exp := range expenses {
		if exp.Date.Before(windowStart) || !exp.Date.Before(windowEnd) {
			continue
		}

		summary.TotalSpent += exp.Amount
		summary.ExpenseCount++
		if exp.Amount > summary.LargestExpense {
			summary.LargestExpense = exp.Amount
		}

		categoryTotals[exp.Category] += exp.Amount

		day := exp.Date.Day()
		dayTotals[day] += exp.Amount
		weekTotals[((day-1)/7)+1] += exp.Amount
	}

	if summary.ExpenseCount > 0 {
		summary.AverageExpense = summary.TotalSpent / float64(summary.ExpenseCount)
	}

	for category, amount := range categoryTotals {
		summary.CategoryTotals = append(summary.CategoryTotals, expense.CategoryTotal{
			Category: category,
			Amount:   amount,
		})
	}

	sort.Slice(summary.CategoryTotals, func(i, j int) bool {
		if summary.CategoryTotals[i].Amount != summary.CategoryTotals[j].Amount {
			return summary.CategoryTotals[i].Amount > summary.CategoryTotals[j].Amount
		}
		return summary.CategoryTotals[i].Category < summary.CategoryTotals[j].Category
	})

	if len(summary.CategoryTotals) > 0 {
		summary.TopCategory = summary.CategoryTotals[0].Category
	}

	days := make([]int, 0, len(dayTotals))
	for day := range dayTotals {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		summary.DailySeries = append(summary.DailySeries, expense.DayTotal{
			Day:    day,
			Amount: dayTotals[day],
		})
	}

	weeks := make([]int, 0, len(weekTotals))
	for week := range weekTotals {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	for _, week := range weeks {
		summary.WeeklySeries = append(summary.WeeklySeries, expense.WeeklyTotal{
			Week:   fmt.Sprintf("Week %d", week),
			Amount: weekTotals[week],
		})
	}

	return summary
}

// MonthWindow returns the [start, end) window covering the given month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *expenseService) GetCurrentMonthSummary(ctx context.Context, userID string) (expense.SummaryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	now := time.Now().UTC()
	windowStart, windowEnd := MonthWindow(now.Year(), now.Month())

	summary, err := s.buildWindowSummary(ctx, userID, windowStart, windowEnd)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build current month summary")
		return expense.SummaryResponse{}, err
	}

	return summary, nil
}

func (s *expenseService) GetMonthlyReport(ctx context.Context, userID string, month string) (expense.MonthlyReportResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !monthPattern.MatchString(month) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"month":      month,
		}).Warn("Invalid month format")
		return expense.MonthlyReportResponse{}, expense.ErrInvalidMonth
	}

	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return expense.MonthlyReportResponse{}, expense.ErrInvalidMonth
	}

	windowStart, windowEnd := MonthWindow(parsed.Year(), parsed.Month())

	summary, err := s.buildWindowSummary(ctx, userID, windowStart, windowEnd)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"month":      month,
			"error":      err.Error(),
		}).Error("Failed to build monthly report")
		return expense.MonthlyReportResponse{}, err
	}

	return expense.MonthlyReportResponse{
		Month:   month,
		Summary: summary,
	}, nil
}

func (s *expenseService) buildWindowSummary(ctx context.Context, userID string, windowStart time.Time, windowEnd time.Time) (expense.SummaryResponse, error) {
	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		return expense.SummaryResponse{}, err
	}

	expenses, err := repo.Expense.GetExpensesByWindow(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return expense.SummaryResponse{}, err
	}

	return BuildSummary(expenses, windowStart, windowEnd), nil
}
