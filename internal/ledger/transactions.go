package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// Transactions posts ledger events through the posting rules.
type Transactions struct {
	*deps
	debts *DebtTracker

	// now is swapped in tests.
	now func() time.Time
}

// PostInput is a transaction as requested by a caller.
type PostInput struct {
	Type        models.TransactionType
	AccountID   string
	ToAccountID string

	// Amount is the primary-side amount. It is derived for debt_collection.
	Amount decimal.Decimal

	// ToAmount is optional for transfers and is the debt-side amount of a
	// debt_collection. It is derived for debt_payment.
	ToAmount *decimal.Decimal

	CategoryID  string
	Date        time.Time
	Description string
	Tags        []string
}

// Post validates in against the posting rules of its kind and stores it.
// Debt kinds re-evaluate the payoff state of the debt in the same unit.
func (t *Transactions) Post(ctx context.Context, in PostInput) (*models.Transaction, error) {
	var (
		tx      *models.Transaction
		paidOff *models.Account
	)
	err := t.store.InTx(ctx, func(st storage.Store) error {
		var err error
		tx, err = t.build(ctx, st, in, "")
		if err != nil {
			return err
		}
		if err := st.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		paidOff, err = t.settle(ctx, st, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.recorder.TransactionPosted(tx.Type)
	t.logger.Info("Transaction posted",
		"transaction_id", tx.ID,
		"type", tx.Type,
		"account_id", tx.AccountID,
		"amount", tx.Amount.String(),
	)
	t.announcePaidOff(paidOff)
	return tx, nil
}

// Update replaces a transaction: the old row and tags are removed, any debt
// it touched is recalculated, and the new fields are posted under the same id
// and posting order. The type of a transaction never changes.
func (t *Transactions) Update(ctx context.Context, id string, in PostInput) (*models.Transaction, error) {
	var (
		tx      *models.Transaction
		paidOff *models.Account
	)
	err := t.store.InTx(ctx, func(st storage.Store) error {
		old, err := st.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		if in.Type == "" {
			in.Type = old.Type
		}
		if in.Type != old.Type {
			return models.Rejected("cannot change transaction type from %s to %s", old.Type, in.Type)
		}

		if err := st.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		if old.Type.IsDebtKind() {
			if _, err := t.debts.recalculate(ctx, st, old.ToAccountID); err != nil {
				return err
			}
		}

		// A settled debt still accepts edits of its own payments.
		var reposted string
		if old.Type.IsDebtKind() {
			reposted = old.ToAccountID
		}
		tx, err = t.build(ctx, st, in, reposted)
		if err != nil {
			return err
		}
		tx.ID = old.ID
		tx.CreatedAt = old.CreatedAt
		tx.Seq = old.Seq
		if err := st.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		paidOff, err = t.settle(ctx, st, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("Transaction updated", "transaction_id", tx.ID, "type", tx.Type)
	t.announcePaidOff(paidOff)
	return tx, nil
}

// Delete removes a transaction and recalculates any debt it touched.
func (t *Transactions) Delete(ctx context.Context, id string) error {
	err := t.store.InTx(ctx, func(st storage.Store) error {
		old, err := st.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		if err := st.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		if old.Type.IsDebtKind() {
			_, err = t.debts.recalculate(ctx, st, old.ToAccountID)
		}
		return err
	})
	if err != nil {
		return err
	}
	t.logger.Info("Transaction deleted", "transaction_id", id)
	return nil
}

// Get returns one transaction.
func (t *Transactions) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return t.store.GetTransaction(ctx, id)
}

// List returns transactions matching filter, ordered by date then creation.
func (t *Transactions) List(ctx context.Context, filter storage.TransactionFilter) ([]models.Transaction, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, models.Invalid("to", "must not be before from")
	}
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))
	return t.store.ListTransactions(ctx, filter)
}

// build resolves the accounts and category of in and applies the posting rules.
// The debt named by reposted is treated as open.
func (t *Transactions) build(ctx context.Context, st storage.Store, in PostInput, reposted string) (*models.Transaction, error) {
	if !in.Type.Valid() {
		return nil, models.Invalid("type", "unknown transaction type %q", in.Type)
	}
	if in.AccountID == "" {
		return nil, models.Invalid("account_id", "required")
	}

	from, err := resolveSide(ctx, st, in.AccountID, "account_id")
	if err != nil {
		return nil, err
	}
	req := calculator.PostingRequest{
		Type:     in.Type,
		From:     *from,
		Amount:   in.Amount,
		ToAmount: in.ToAmount,
	}
	if in.ToAccountID != "" {
		if req.To, err = resolveSide(ctx, st, in.ToAccountID, "to_account_id"); err != nil {
			return nil, err
		}
		if in.ToAccountID == reposted && req.To.Account.IsDebt() {
			details := *req.To.Account.Debt
			details.IsPaidOff = false
			req.To.Account.Debt = &details
		}
	}
	if in.CategoryID != "" {
		category, err := st.GetCategory(ctx, in.CategoryID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.Invalid("category_id", "unknown category %q", in.CategoryID)
		}
		if err != nil {
			return nil, err
		}
		req.Category = category
	}

	posting, err := calculator.ApplyPostingRules(req)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = t.clock()
	}
	tx := &models.Transaction{
		Type:         in.Type,
		AccountID:    in.AccountID,
		Amount:       posting.Amount,
		ToAmount:     posting.ToAmount,
		ExchangeRate: posting.ExchangeRate,
		CategoryID:   in.CategoryID,
		Date:         calculator.Day(date),
		Description:  strings.TrimSpace(in.Description),
		Tags:         normalizeTags(in.Tags),
	}
	if req.To != nil {
		tx.ToAccountID = in.ToAccountID
	}
	return tx, nil
}

// settle runs the payoff check for debt kinds. It returns the debt when the
// posting settled it.
func (t *Transactions) settle(ctx context.Context, st storage.Store, tx *models.Transaction) (*models.Account, error) {
	if !tx.Type.IsDebtKind() {
		return nil, nil
	}
	return t.debts.checkAndMarkAsPaidOff(ctx, st, tx.ToAccountID)
}

func (t *Transactions) announcePaidOff(debt *models.Account) {
	if debt == nil {
		return
	}
	t.recorder.DebtPaidOff(debt.Debt.DebtType)
	t.logger.Info("Debt paid off", "debt_id", debt.ID, "name", debt.Name)
}

func (t *Transactions) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func resolveSide(ctx context.Context, st storage.Store, id, field string) (*calculator.Side, error) {
	account, err := st.GetAccount(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.Invalid(field, "unknown account %q", id)
	}
	if err != nil {
		return nil, err
	}
	currency, err := st.GetCurrency(ctx, account.CurrencyID)
	if err != nil {
		return nil, err
	}
	return &calculator.Side{Account: *account, Currency: *currency}, nil
}

// normalizeTags trims, lowercases and de-duplicates tags.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
