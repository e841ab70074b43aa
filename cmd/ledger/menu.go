package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
	"github.com/akxxtz/lesger2/internal/ledger"
	"github.com/akxxtz/lesger2/internal/rates"
	"github.com/akxxtz/lesger2/internal/report"
)

// menu is the interactive front end: a synchronous prompt loop that turns
// choices into engine calls and prints results. All state lives in the
// service; the menu only holds the current session.
type menu struct {
	svc        *ledger.Service
	in         *bufio.Reader
	out        io.Writer
	ratesPath  string
	reportsDir string
}

func (m *menu) run() {
	for {
		fmt.Fprintln(m.out, "\n== Ledger System ==")
		fmt.Fprintln(m.out, "1. Login")
		fmt.Fprintln(m.out, "2. Register")
		fmt.Fprintln(m.out, "0. Exit")
		fmt.Fprint(m.out, ">")
		switch m.readLine() {
		case "1":
			if sess := m.login(); sess != nil {
				m.session(sess)
			}
		case "2":
			m.register()
		case "0":
			fmt.Fprintln(m.out, "Thank you for using \"Ledger System\"")
			return
		default:
			fmt.Fprintln(m.out, "Invalid option!")
		}
	}
}

func (m *menu) register() {
	fmt.Fprintln(m.out, "== Please fill in the form ==")
	fmt.Fprint(m.out, "Name: ")
	name := m.readLine()
	fmt.Fprint(m.out, "Email: ")
	email := m.readLine()
	fmt.Fprint(m.out, "Password: ")
	password := m.readLine()

	if _, err := m.svc.Register(name, email, password); err != nil {
		fmt.Fprintln(m.out, "Registration failed:", errText(err))
		return
	}
	fmt.Fprintln(m.out, "Register Successful!!!")
}

func (m *menu) login() *ledger.Session {
	fmt.Fprintln(m.out, "== Please enter your email and password ==")
	fmt.Fprint(m.out, "Email: ")
	email := m.readLine()
	fmt.Fprint(m.out, "Password: ")
	password := m.readLine()

	sess, err := m.svc.Login(email, password)
	if err != nil {
		fmt.Fprintln(m.out, "Login failed!")
		return nil
	}
	fmt.Fprintln(m.out, "Login Successful!!!")
	if sess.Sweep != nil {
		fmt.Fprintf(m.out, "Monthly savings of $%s transferred to balance!\n", domain.FormatMoney(sess.Sweep.Amount))
	}
	m.printReminders(sess.Account.UserID)
	return sess
}

func (m *menu) printReminders(userID int) {
	for _, r := range m.svc.LoanReminders(userID) {
		switch r.Kind {
		case ledger.ReminderOverdue:
			fmt.Fprintln(m.out, "\n!!! LOAN OVERDUE ALERT !!!")
			fmt.Fprintf(m.out, "Your loan of $%s is overdue! Please make a payment immediately.\n",
				domain.FormatMoney(r.Loan.OutstandingBalance))
			fmt.Fprintln(m.out, "You cannot make new transactions until the loan is paid.")
		case ledger.ReminderDueSoon:
			fmt.Fprintln(m.out, "\n=== LOAN PAYMENT REMINDER ===")
			fmt.Fprintf(m.out, "Your loan payment of $%s is due in %d days!\n",
				domain.FormatMoney(r.Loan.OutstandingBalance), r.DaysRemaining)
			fmt.Fprintf(m.out, "Suggested monthly payment: $%s\n", domain.FormatMoney(r.SuggestedPayment))
		}
	}
}

func (m *menu) session(sess *ledger.Session) {
	acct := sess.Account
	for {
		fmt.Fprintf(m.out, "\n== Welcome, %s ==\n", acct.Name)
		fmt.Fprintf(m.out, "Balance: %s\n", domain.FormatMoney(acct.Balance))
		fmt.Fprintf(m.out, "Savings: %s\n", domain.FormatMoney(acct.Savings))
		fmt.Fprintf(m.out, "Loan: %s\n", domain.FormatMoney(acct.OutstandingLoan))
		fmt.Fprintln(m.out, "== Transaction ==")
		fmt.Fprintln(m.out, "1. Debit")
		fmt.Fprintln(m.out, "2. Credit")
		fmt.Fprintln(m.out, "3. History")
		fmt.Fprintln(m.out, "4. Savings")
		fmt.Fprintln(m.out, "5. Credit Loan")
		fmt.Fprintln(m.out, "6. Deposit Interest Predictor")
		fmt.Fprintln(m.out, "7. View Analytics")
		fmt.Fprintln(m.out, "8. Logout")
		fmt.Fprint(m.out, ">")
		switch m.readLine() {
		case "1":
			m.recordTransaction(acct, domain.TxTypeDebit, "Debit")
		case "2":
			m.recordTransaction(acct, domain.TxTypeCredit, "Credit")
		case "3":
			m.history(acct)
		case "4":
			m.savings(acct)
		case "5":
			m.loan(acct)
		case "6":
			m.depositInterest(acct)
		case "7":
			m.analytics(acct)
		case "8":
			return
		default:
			fmt.Fprintln(m.out, "Invalid option!")
		}
	}
}

func (m *menu) recordTransaction(acct *domain.Account, txType, title string) {
	fmt.Fprintf(m.out, "== %s ==\n", title)
	fmt.Fprint(m.out, "Enter amount: ")
	amount := m.readLine()
	fmt.Fprint(m.out, "Enter description: ")
	description := m.readLine()

	if _, err := m.svc.RecordTransaction(acct, txType, amount, description); err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanOverdue):
			fmt.Fprintln(m.out, "Cannot perform transactions! You have an overdue loan!")
		default:
			fmt.Fprintln(m.out, errText(err))
		}
		return
	}
	fmt.Fprintf(m.out, "%s Successfully Recorded!!!\n", title)
}

func (m *menu) history(acct *domain.Account) {
	fmt.Fprintln(m.out, "\n== History Options ==")
	fmt.Fprintln(m.out, "1. View All History")
	fmt.Fprintln(m.out, "2. Filter and Sort")
	fmt.Fprint(m.out, "Choice: ")
	switch m.readLine() {
	case "1":
		m.viewHistory(acct)
	case "2":
		m.filteredHistory(acct)
	default:
		fmt.Fprintln(m.out, "Invalid option!")
	}
}

func (m *menu) viewHistory(acct *domain.Account) {
	fmt.Fprintln(m.out, "== History ==")
	lines := report.BuildStatement(m.svc.UserTransactions(acct.UserID))
	report.RenderStatement(m.out, lines)
	path, err := report.ExportStatement(m.reportsDir, acct.UserID, lines)
	if err != nil {
		fmt.Fprintln(m.out, "Error exporting history!")
		return
	}
	fmt.Fprintln(m.out, "File Exported!", path)
}

func (m *menu) filteredHistory(acct *domain.Account) {
	fmt.Fprintln(m.out, "\n== History Filters ==")
	fmt.Fprintln(m.out, "1. Filter by Date Range")
	fmt.Fprintln(m.out, "2. Filter by Transaction Type")
	fmt.Fprintln(m.out, "3. Filter by Amount Range")
	fmt.Fprintln(m.out, "4. Sort by Date")
	fmt.Fprintln(m.out, "5. Sort by Amount")
	fmt.Fprintln(m.out, "6. View All")
	fmt.Fprint(m.out, "Choose option: ")
	txs := m.svc.UserTransactions(acct.UserID)

	switch m.readLine() {
	case "1":
		fmt.Fprintln(m.out, "\nEnter date range (YYYY-MM-DD):")
		fmt.Fprint(m.out, "Start date: ")
		from, err1 := time.Parse(domain.DateLayout, m.readLine())
		fmt.Fprint(m.out, "End date: ")
		to, err2 := time.Parse(domain.DateLayout, m.readLine())
		if err1 != nil || err2 != nil {
			fmt.Fprintln(m.out, "Invalid date format!")
			return
		}
		txs = report.FilterByDateRange(txs, from, to)
	case "2":
		fmt.Fprintln(m.out, "\nSelect type:")
		fmt.Fprintln(m.out, "1. Debit")
		fmt.Fprintln(m.out, "2. Credit")
		fmt.Fprint(m.out, "Choice: ")
		txType := domain.TxTypeCredit
		if m.readLine() == "1" {
			txType = domain.TxTypeDebit
		}
		txs = report.FilterByType(txs, txType)
	case "3":
		fmt.Fprint(m.out, "\nMinimum amount: ")
		min, err1 := decimal.NewFromString(m.readLine())
		fmt.Fprint(m.out, "Maximum amount: ")
		max, err2 := decimal.NewFromString(m.readLine())
		if err1 != nil || err2 != nil {
			fmt.Fprintln(m.out, "Invalid amount!")
			return
		}
		txs = report.FilterByAmountRange(txs, min, max)
	case "4":
		fmt.Fprintln(m.out, "\n1. Newest First")
		fmt.Fprintln(m.out, "2. Oldest First")
		fmt.Fprint(m.out, "Choice: ")
		txs = report.SortByDate(txs, m.readLine() == "1")
	case "5":
		fmt.Fprintln(m.out, "\n1. Highest First")
		fmt.Fprintln(m.out, "2. Lowest First")
		fmt.Fprint(m.out, "Choice: ")
		txs = report.SortByAmount(txs, m.readLine() == "1")
	case "6":
	default:
		fmt.Fprintln(m.out, "Invalid option!")
		return
	}

	if len(txs) == 0 {
		fmt.Fprintln(m.out, "\nNo transactions found!")
		return
	}
	report.RenderStatement(m.out, report.BuildStatement(txs))
}

func (m *menu) savings(acct *domain.Account) {
	fmt.Fprintln(m.out, "== Savings ==")
	fmt.Fprint(m.out, "Are you sure you want to activate it? (Y/N) : ")
	if !strings.EqualFold(m.readLine(), "y") {
		return
	}
	fmt.Fprint(m.out, "Please enter the percentage you wish to deduct from the next debit: ")
	percentage, err := strconv.Atoi(m.readLine())
	if err != nil {
		fmt.Fprintln(m.out, "Invalid percentage!")
		return
	}
	if err := m.svc.ConfigureSavings(acct, percentage); err != nil {
		fmt.Fprintln(m.out, errText(err))
		return
	}
	fmt.Fprintln(m.out, "Savings Settings added successfully!!!")
}

func (m *menu) loan(acct *domain.Account) {
	fmt.Fprintln(m.out, "== Credit Loan ==")
	fmt.Fprintln(m.out, "1. Apply for Loan")
	fmt.Fprintln(m.out, "2. Repay Loan")
	fmt.Fprint(m.out, ">")
	switch m.readLine() {
	case "1":
		m.applyForLoan(acct)
	case "2":
		m.repayLoan(acct)
	default:
		fmt.Fprintln(m.out, "Invalid choice!")
	}
}

func (m *menu) applyForLoan(acct *domain.Account) {
	if _, ok := m.svc.ActiveLoan(acct.UserID); ok {
		fmt.Fprintln(m.out, "You already have an active loan!")
		return
	}
	fmt.Fprintln(m.out, "== Apply for Loan ==")
	fmt.Fprint(m.out, "Enter principal amount: ")
	principal, err := decimal.NewFromString(m.readLine())
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}
	fmt.Fprint(m.out, "Enter interest rate (%): ")
	rate, err := decimal.NewFromString(m.readLine())
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}
	fmt.Fprint(m.out, "Enter repayment period (months): ")
	months, err := strconv.Atoi(m.readLine())
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return
	}
	if !principal.IsPositive() || !rate.IsPositive() || months <= 0 {
		fmt.Fprintln(m.out, "Amount, rate and period must all be positive!")
		return
	}

	terms := ledger.QuoteLoan(principal, rate, months)
	fmt.Fprintln(m.out, "\nLoan Summary:")
	fmt.Fprintf(m.out, "Principal Amount: $%s\n", domain.FormatMoney(terms.Principal))
	fmt.Fprintf(m.out, "Total Interest: $%s\n", domain.FormatMoney(terms.TotalInterest))
	fmt.Fprintf(m.out, "Total Repayment: $%s\n", domain.FormatMoney(terms.TotalRepayment))
	fmt.Fprintf(m.out, "Monthly Payment: $%s\n", domain.FormatMoney(terms.MonthlyPayment))

	fmt.Fprint(m.out, "\nConfirm loan application? (Y/N): ")
	if !strings.EqualFold(m.readLine(), "y") {
		return
	}
	if _, err := m.svc.ApplyForLoan(acct, principal, rate, months); err != nil {
		fmt.Fprintln(m.out, errText(err))
		return
	}
	fmt.Fprintln(m.out, "Loan application successful!")
}

func (m *menu) repayLoan(acct *domain.Account) {
	loan, ok := m.svc.ActiveLoan(acct.UserID)
	if !ok {
		fmt.Fprintln(m.out, "You don't have any active loans!")
		return
	}
	fmt.Fprintln(m.out, "== Repay Loan ==")
	fmt.Fprintf(m.out, "Outstanding balance: $%s\n", domain.FormatMoney(loan.OutstandingBalance))
	fmt.Fprint(m.out, "Enter repayment amount: ")
	amount, err := decimal.NewFromString(m.readLine())
	if err != nil {
		fmt.Fprintln(m.out, "Invalid amount!")
		return
	}
	if err := m.svc.RepayLoan(acct, loan, amount); err != nil {
		fmt.Fprintln(m.out, errText(err))
		return
	}
	if loan.Status == domain.LoanStatusRepaid {
		fmt.Fprintln(m.out, "Loan fully repaid!")
	} else {
		fmt.Fprintf(m.out, "Remaining balance: $%s\n", domain.FormatMoney(loan.OutstandingBalance))
	}
	fmt.Fprintln(m.out, "Repayment recorded successfully!")
}

func (m *menu) depositInterest(acct *domain.Account) {
	table, err := rates.Load(m.ratesPath)
	if err != nil {
		fmt.Fprintln(m.out, errText(err))
		return
	}
	fmt.Fprintln(m.out, "== Deposit Interest Predictor ==")
	fmt.Fprintln(m.out, "Available Banks:")
	for _, name := range sortedKeys(table.Banks) {
		fmt.Fprintf(m.out, "%s: %.2f%%\n", name, table.Banks[name])
	}
	fmt.Fprint(m.out, "Enter bank name: ")
	interest, err := table.MonthlyInterest(acct.Balance, m.readLine())
	if err != nil {
		fmt.Fprintln(m.out, "Invalid bank name!")
		return
	}
	fmt.Fprintf(m.out, "Predicted monthly interest: $%s\n", domain.FormatMoney(interest))
}

func (m *menu) analytics(acct *domain.Account) {
	for {
		fmt.Fprintln(m.out, "\n== Analytics ==")
		fmt.Fprintln(m.out, "1. View Spending Trends")
		fmt.Fprintln(m.out, "2. View Spending Distribution")
		fmt.Fprintln(m.out, "3. View Savings Growth")
		fmt.Fprintln(m.out, "4. View Loan Progress")
		fmt.Fprintln(m.out, "5. Back to Main Menu")
		fmt.Fprint(m.out, "Choice: ")
		switch m.readLine() {
		case "1":
			report.SpendingTrends(m.out, m.svc.UserTransactions(acct.UserID))
		case "2":
			report.SpendingDistribution(m.out, m.svc.UserTransactions(acct.UserID))
		case "3":
			report.SavingsGrowth(m.out, acct.Savings, acct.SavingsPercentage)
		case "4":
			loan, _ := m.svc.ActiveLoan(acct.UserID)
			report.LoanProgress(m.out, loan)
		case "5":
			return
		default:
			fmt.Fprintln(m.out, "Invalid option!")
		}
	}
}

func (m *menu) readLine() string {
	s, _ := m.in.ReadString('\n')
	return strings.TrimSpace(s)
}

// errText strips the leading call-site prefix from engine errors for
// display.
func errText(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
