// Package ledger implements the accounting engine: transaction recording
// with balance derivation, the savings diversion and monthly sweep, and the
// loan lifecycle with overdue gating. All durable state lives in the store;
// the Service keeps hydrated in-memory copies of the logs and the per-user
// account projections.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akxxtz/lesger2/internal/auth"
	"github.com/akxxtz/lesger2/internal/domain"
	"github.com/akxxtz/lesger2/internal/store"
)

// WarningDays is how many days before a loan's due date reminders start.
const WarningDays = 5

// Service is the single entry point for every account operation. It is built
// for one process with one active session at a time; there is no cross-call
// locking discipline beyond the store's own.
type Service struct {
	store *store.Store
	log   zerolog.Logger

	// now is the clock; tests replace it to pin dates.
	now func() time.Time

	accounts     map[string]*domain.Account // keyed by email
	transactions []domain.Transaction
	settings     []domain.SavingsSetting
	loans        []domain.Loan
}

// NewService hydrates a Service from the store's logs. This runs once at
// startup; afterwards the in-memory copies are kept in sync with every
// successful write.
func NewService(st *store.Store, log zerolog.Logger) (*Service, error) {
	s := &Service{
		store:    st,
		log:      log,
		now:      time.Now,
		accounts: make(map[string]*domain.Account),
	}
	users, err := st.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("NewService: %w", err)
	}
	today := domain.DateOnly(s.now())
	for _, u := range users {
		s.accounts[u.Email] = domain.NewAccount(u, today)
	}
	if s.transactions, err = st.ListTransactions(); err != nil {
		return nil, fmt.Errorf("NewService: %w", err)
	}
	if s.settings, err = st.ListSavingsSettings(); err != nil {
		return nil, fmt.Errorf("NewService: %w", err)
	}
	if s.loans, err = st.ListLoans(); err != nil {
		return nil, fmt.Errorf("NewService: %w", err)
	}
	log.Info().
		Int("users", len(users)).
		Int("transactions", len(s.transactions)).
		Int("loans", len(s.loans)).
		Msg("ledger hydrated")
	return s, nil
}

// Session is one authenticated user's working context, created at login and
// passed to every subsequent call that acts on the account.
type Session struct {
	ID      string
	Account *domain.Account

	// Sweep is the synthetic savings transfer appended during this login,
	// if a month boundary was crossed.
	Sweep *domain.Transaction
}

// Register creates a new user after validating the email format, the
// password policy and email uniqueness. The email is stored trimmed of
// surrounding whitespace. The user row is persisted before the account
// projection is added.
func (s *Service) Register(name, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if err := auth.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if _, exists := s.accounts[email]; exists {
		return nil, fmt.Errorf("Register: email already registered: %w", domain.ErrConflict)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	u := domain.User{
		UserID:       s.store.NextUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.AppendUser(u); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	acct := domain.NewAccount(u, domain.DateOnly(s.now()))
	s.accounts[email] = acct
	s.log.Info().Int("user_id", u.UserID).Str("email", email).Msg("user registered")
	return acct, nil
}

// Login authenticates a user and returns a fresh session. Before anything
// else the month-boundary savings sweep runs, then the projection is rebuilt
// from the logs: balance from the transaction history, savings settings from
// the latest settings row, outstanding loan from the active loan row.
func (s *Service) Login(email, password string) (*Session, error) {
	acct, ok := s.accounts[strings.TrimSpace(email)]
	if !ok {
		return nil, fmt.Errorf("Login: invalid email or password: %w", domain.ErrNotFound)
	}
	if err := auth.VerifyPassword(acct.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("Login: invalid email or password: %w", domain.ErrNotFound)
	}

	sweep, err := s.sweepIfNewMonth(acct)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	s.refreshProjection(acct)

	sess := &Session{ID: uuid.NewString(), Account: acct, Sweep: sweep}
	s.log.Info().
		Str("session_id", sess.ID).
		Int("user_id", acct.UserID).
		Str("balance", domain.FormatMoney(acct.Balance)).
		Msg("session started")
	return sess, nil
}

// refreshProjection rebuilds the mutable projection fields from the hydrated
// logs. The balance is the signed sum of the user's transactions (debits
// add, credits subtract) minus whatever currently sits in the savings pot.
// Synthetic sweep rows are skipped: the pot already accounts for swept
// amounts, so summing them too would count the same money twice.
func (s *Service) refreshProjection(acct *domain.Account) {
	balance := domain.Zero()
	for _, t := range s.transactions {
		if t.UserID != acct.UserID || t.Description == SweepDescription {
			continue
		}
		if t.Type == domain.TxTypeDebit {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	acct.Balance = domain.RoundMoney(balance.Sub(acct.Savings))

	// Latest settings row wins; older rows are retained history only.
	acct.SavingsActive = false
	acct.SavingsPercentage = 0
	for _, st := range s.settings {
		if st.UserID == acct.UserID {
			acct.SavingsActive = st.Status == domain.SavingsStatusActive
			acct.SavingsPercentage = st.Percentage
		}
	}

	acct.OutstandingLoan = domain.Zero()
	if l, ok := s.ActiveLoan(acct.UserID); ok {
		acct.OutstandingLoan = l.OutstandingBalance
	}
}

// Account looks up a registered account projection by email.
func (s *Service) Account(email string) (*domain.Account, bool) {
	acct, ok := s.accounts[email]
	return acct, ok
}

func (s *Service) today() time.Time {
	return domain.DateOnly(s.now())
}
