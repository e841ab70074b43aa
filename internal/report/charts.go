package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

const graphWidth = 50

func bar(value, max decimal.Decimal) string {
	if !max.IsPositive() {
		return ""
	}
	n := int(value.Mul(decimal.NewFromInt(graphWidth)).Div(max).IntPart())
	if n < 0 {
		n = 0
	}
	if n > graphWidth {
		n = graphWidth
	}
	return strings.Repeat("=", n)
}

// SpendingTrends draws a bar per month of total credit (spending) amounts,
// scaled to the heaviest month.
func SpendingTrends(w io.Writer, txs []domain.Transaction) {
	fmt.Fprintln(w, "\n=== Spending Trends ===")
	monthly := map[string]decimal.Decimal{}
	for _, t := range txs {
		if t.Type != domain.TxTypeCredit {
			continue
		}
		key := t.Date.Format("2006-01")
		monthly[key] = monthly[key].Add(t.Amount)
	}
	if len(monthly) == 0 {
		fmt.Fprintln(w, "No spending recorded.")
		return
	}
	months := make([]string, 0, len(monthly))
	max := domain.Zero()
	for m, v := range monthly {
		months = append(months, m)
		if v.GreaterThan(max) {
			max = v
		}
	}
	sort.Strings(months)
	for _, m := range months {
		fmt.Fprintf(w, "%s |%-*s| $%s\n", m, graphWidth, bar(monthly[m], max), domain.FormatMoney(monthly[m]))
	}
}

// SpendingDistribution groups credit amounts by description and shows each
// group's share of total spending.
func SpendingDistribution(w io.Writer, txs []domain.Transaction) {
	fmt.Fprintln(w, "\n=== Spending Distribution ===")
	byCategory := map[string]decimal.Decimal{}
	total := domain.Zero()
	for _, t := range txs {
		if t.Type != domain.TxTypeCredit {
			continue
		}
		byCategory[t.Description] = byCategory[t.Description].Add(t.Amount)
		total = total.Add(t.Amount)
	}
	if !total.IsPositive() {
		fmt.Fprintln(w, "No spending recorded.")
		return
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	// Largest share first, name as tiebreak for stable output.
	sort.Slice(categories, func(i, j int) bool {
		a, b := byCategory[categories[i]], byCategory[categories[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return categories[i] < categories[j]
	})
	hundred := decimal.NewFromInt(100)
	for _, c := range categories {
		amount := byCategory[c]
		pct := amount.Mul(hundred).DivRound(total, 2)
		fmt.Fprintf(w, "%-15s |%-*s| %s%% ($%s)\n", c, graphWidth, bar(amount, total), pct.StringFixed(1), domain.FormatMoney(amount))
	}
}

// SavingsGrowth projects twelve months of savings growth from the current
// pot, assuming a steady 1000.00 of monthly debits at the configured
// percentage.
func SavingsGrowth(w io.Writer, currentSavings decimal.Decimal, savingsPercentage int) {
	fmt.Fprintln(w, "\n=== Savings Growth Projection ===")
	monthlyDebit := decimal.NewFromInt(1000)
	increase := monthlyDebit.Mul(decimal.NewFromInt(int64(savingsPercentage))).Div(decimal.NewFromInt(100))
	scale := monthlyDebit.Mul(decimal.NewFromInt(12))
	savings := currentSavings
	for month := 1; month <= 12; month++ {
		savings = savings.Add(increase)
		fmt.Fprintf(w, "Month %-2d |%-*s| $%s\n", month, graphWidth, bar(savings, scale), domain.FormatMoney(savings))
	}
}

// LoanProgress draws how much of the loan's total repayment has been paid
// off.
func LoanProgress(w io.Writer, loan *domain.Loan) {
	if loan == nil || loan.Status == domain.LoanStatusRepaid {
		fmt.Fprintln(w, "\nNo active loan to display.")
		return
	}
	fmt.Fprintln(w, "\n=== Loan Repayment Progress ===")
	hundred := decimal.NewFromInt(100)
	total := loan.PrincipalAmount.Mul(decimal.NewFromInt(1).Add(loan.InterestRate.Div(hundred)))
	paid := total.Sub(loan.OutstandingBalance)
	pct := paid.Mul(hundred).DivRound(total, 2)
	fmt.Fprintf(w, "Progress |%-*s| %s%%\n", graphWidth, bar(paid, total), pct.StringFixed(1))
	fmt.Fprintf(w, "Paid: $%s | Remaining: $%s | Total: $%s\n",
		domain.FormatMoney(paid), domain.FormatMoney(loan.OutstandingBalance), domain.FormatMoney(total))
}
