package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/application/usecase/category"
	"github.com/finance-tracker/coach/internal/application/usecase/goal"
	"github.com/finance-tracker/coach/internal/application/usecase/progression"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
	"github.com/finance-tracker/coach/internal/integration/persistence"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
	"github.com/finance-tracker/coach/test/integration/mock"
)

var march15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

type failingContributor struct{ err error }

func (f failingContributor) ContributeTransaction(context.Context, *entity.Transaction) (*adapter.ContributionResult, error) {
	return nil, f.err
}

type ledgerFixture struct {
	db           *mock.Db
	txnRepo      adapter.TransactionRepository
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
	resolver     *CategoryResolver
	contributor  *goal.ContributeToGoalUseCase
	awarder      *progression.AwardXPUseCase
	onboard      *progression.OnboardProfileUseCase
	commit       *CommitTransactionUseCase
	update       *UpdateTransactionUseCase
	remove       *RemoveTransactionUseCase
	list         *ListTransactionsUseCase
	totals       *GetTotalsUseCase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()
	db := mock.NewTestDb(t, model.Registry())

	f := &ledgerFixture{
		db:           db,
		txnRepo:      persistence.NewTransactionRepository(db.DbConn),
		goalRepo:     persistence.NewGoalRepository(db.DbConn),
		categoryRepo: persistence.NewCategoryRepository(db.DbConn),
	}
	if _, err := category.NewSeedCategoriesUseCase(f.categoryRepo).Execute(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	profileRepo := persistence.NewProfileRepository(db.DbConn)
	strategy := valueobject.BandedLevels{}
	f.resolver = NewCategoryResolver(f.categoryRepo, category.NewSuggestionEngine(nil))
	f.contributor = goal.NewContributeToGoalUseCase(f.goalRepo, nil)
	f.awarder = progression.NewAwardXPUseCase(profileRepo, strategy, valueobject.DefaultActionCatalog(), nil)
	f.onboard = progression.NewOnboardProfileUseCase(profileRepo, strategy)
	f.commit = NewCommitTransactionUseCase(f.txnRepo, f.goalRepo, f.resolver, f.contributor, f.awarder)
	f.update = NewUpdateTransactionUseCase(f.txnRepo, f.resolver)
	f.remove = NewRemoveTransactionUseCase(f.txnRepo)
	f.list = NewListTransactionsUseCase(f.txnRepo, f.categoryRepo)
	f.totals = NewGetTotalsUseCase(f.txnRepo)
	return f
}

func (f *ledgerFixture) user(t *testing.T) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	if _, err := f.onboard.Execute(context.Background(), progression.OnboardProfileInput{UserID: userID, FullName: "Meera"}); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	return userID
}

func (f *ledgerFixture) category(t *testing.T, name string, categoryType entity.CategoryType) *entity.Category {
	t.Helper()
	cat, err := f.categoryRepo.FindByName(context.Background(), name, categoryType)
	if err != nil {
		t.Fatalf("category %q: %v", name, err)
	}
	return cat
}

func (f *ledgerFixture) goal(t *testing.T, userID uuid.UUID, target int64) *goal.GoalOutput {
	t.Helper()
	out, err := goal.NewCreateGoalUseCase(f.goalRepo).Execute(context.Background(), goal.CreateGoalInput{
		UserID:       userID,
		Title:        "Emergency fund",
		TargetAmount: decimal.NewFromInt(target),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return out.Goal
}

func (f *ledgerFixture) count(t *testing.T) int64 {
	t.Helper()
	n, err := f.db.Count("transactions")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func income(userID uuid.UUID, amount int64) CommitTransactionInput {
	return CommitTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(amount),
		Date:        march15,
		Description: "Salary",
	}
}

func TestCommitTransaction_Categories(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	userID := f.user(t)

	t.Run("explicit category", func(t *testing.T) {
		shopping := f.category(t, "Shopping", entity.CategoryTypeExpense)
		out, err := f.commit.Execute(ctx, CommitTransactionInput{
			UserID:      userID,
			Type:        entity.TransactionTypeExpense,
			Amount:      decimal.RequireFromString("499.99"),
			CategoryID:  &shopping.ID,
			Date:        time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
			Description: "Headphones",
		})
		if err != nil {
			t.Fatal(err)
		}
		if out.Transaction.CategoryID != shopping.ID || out.Transaction.Category.Name != "Shopping" {
			t.Errorf("category = %+v", out.Transaction.Category)
		}
		if !out.Transaction.Date.Equal(march15) {
			t.Errorf("date = %v, want truncated %v", out.Transaction.Date, march15)
		}
		if out.Transaction.Source != entity.TransactionSourceManual {
			t.Errorf("source = %q", out.Transaction.Source)
		}
		if !out.XPAwarded || out.AwardError != nil {
			t.Errorf("expected xp award, got awarded=%v err=%v", out.XPAwarded, out.AwardError)
		}
	})

	t.Run("suggested from description", func(t *testing.T) {
		out, err := f.commit.Execute(ctx, CommitTransactionInput{
			UserID:      userID,
			Type:        entity.TransactionTypeExpense,
			Amount:      decimal.NewFromInt(350),
			Date:        march15,
			Description: "Dinner at Zomato tonight",
		})
		if err != nil {
			t.Fatal(err)
		}
		if out.Transaction.Category.Name != "Food & Dining" {
			t.Errorf("category = %q, want Food & Dining", out.Transaction.Category.Name)
		}
	})

	t.Run("falls back to Other of the type", func(t *testing.T) {
		out, err := f.commit.Execute(ctx, CommitTransactionInput{
			UserID:      userID,
			Type:        entity.TransactionTypeIncome,
			Amount:      decimal.NewFromInt(100),
			Date:        march15,
			Description: "xk",
		})
		if err != nil {
			t.Fatal(err)
		}
		if out.Transaction.Category.Name != entity.OtherCategoryName || out.Transaction.Category.Type != entity.CategoryTypeIncome {
			t.Errorf("category = %+v, want income Other", out.Transaction.Category)
		}
	})
}

func TestCommitTransaction_Validation(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	userID := f.user(t)
	salary := f.category(t, "Salary", entity.CategoryTypeIncome)
	unknown := uuid.New()
	goalID := uuid.New()

	expense := func(mutate func(*CommitTransactionInput)) CommitTransactionInput {
		in := CommitTransactionInput{
			UserID:      userID,
			Type:        entity.TransactionTypeExpense,
			Amount:      decimal.NewFromInt(10),
			Date:        march15,
			Description: "Coffee",
		}
		mutate(&in)
		return in
	}

	tests := []struct {
		name    string
		input   CommitTransactionInput
		wantErr error
	}{
		{name: "missing user", input: expense(func(in *CommitTransactionInput) { in.UserID = uuid.Nil }), wantErr: domainerror.ErrMissingUserID},
		{name: "unknown type", input: expense(func(in *CommitTransactionInput) { in.Type = "transfer" }), wantErr: domainerror.ErrInvalidTransactionType},
		{name: "zero amount", input: expense(func(in *CommitTransactionInput) { in.Amount = decimal.Zero }), wantErr: domainerror.ErrInvalidTransactionAmount},
		{name: "negative amount", input: expense(func(in *CommitTransactionInput) { in.Amount = decimal.NewFromInt(-5) }), wantErr: domainerror.ErrInvalidTransactionAmount},
		{name: "sub-cent amount", input: expense(func(in *CommitTransactionInput) { in.Amount = decimal.RequireFromString("1.005") }), wantErr: domainerror.ErrInvalidTransactionAmount},
		{name: "zero date", input: expense(func(in *CommitTransactionInput) { in.Date = time.Time{} }), wantErr: domainerror.ErrInvalidTransactionDate},
		{name: "long description", input: expense(func(in *CommitTransactionInput) { in.Description = strings.Repeat("a", 256) }), wantErr: domainerror.ErrDescriptionTooLong},
		{name: "goal on expense", input: expense(func(in *CommitTransactionInput) { in.GoalID = &goalID }), wantErr: domainerror.ErrGoalOnExpense},
		{name: "unknown category", input: expense(func(in *CommitTransactionInput) { in.CategoryID = &unknown }), wantErr: domainerror.ErrCategoryNotFoundForTransaction},
		{name: "category of the other type", input: expense(func(in *CommitTransactionInput) { in.CategoryID = &salary.ID }), wantErr: domainerror.ErrCategoryTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.commit.Execute(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if out != nil {
				t.Error("no output expected on validation failure")
			}
			if domainerror.KindOf(err) != domainerror.KindValidation {
				t.Errorf("KindOf = %q, want validation", domainerror.KindOf(err))
			}
		})
	}

	if n := f.count(t); n != 0 {
		t.Errorf("%d transactions stored after rejected commits", n)
	}
}

func TestCommitTransaction_GoalLinked(t *testing.T) {
	ctx := context.Background()

	t.Run("contributes and achieves", func(t *testing.T) {
		f := newLedgerFixture(t)
		userID := f.user(t)
		g := f.goal(t, userID, 1000)

		in := income(userID, 400)
		in.GoalID = &g.ID
		out, err := f.commit.Execute(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		if !out.GoalApplied || out.GoalAchieved {
			t.Errorf("first contribution: applied=%v achieved=%v", out.GoalApplied, out.GoalAchieved)
		}

		in = income(userID, 600)
		in.GoalID = &g.ID
		out, err = f.commit.Execute(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		if !out.GoalAchieved {
			t.Error("expected goal to be achieved")
		}

		stored, err := f.goalRepo.FindByID(ctx, g.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !stored.CurrentAmount.Equal(decimal.NewFromInt(1000)) || stored.Status != entity.GoalStatusAchieved {
			t.Errorf("goal = %s %s", stored.CurrentAmount, stored.Status)
		}
	})

	t.Run("inactive goal is rejected before writing", func(t *testing.T) {
		f := newLedgerFixture(t)
		userID := f.user(t)
		g := f.goal(t, userID, 1000)
		if err := goal.NewCancelGoalUseCase(f.goalRepo).Execute(ctx, goal.CancelGoalInput{UserID: userID, GoalID: g.ID}); err != nil {
			t.Fatal(err)
		}

		in := income(userID, 100)
		in.GoalID = &g.ID
		_, err := f.commit.Execute(ctx, in)
		if domainerror.KindOf(err) != domainerror.KindInvalidState {
			t.Fatalf("KindOf(%v) = %q, want invalid_state", err, domainerror.KindOf(err))
		}
		if n := f.count(t); n != 0 {
			t.Errorf("%d transactions stored", n)
		}
	})

	t.Run("goal of another user is not found", func(t *testing.T) {
		f := newLedgerFixture(t)
		g := f.goal(t, f.user(t), 1000)

		in := income(f.user(t), 100)
		in.GoalID = &g.ID
		_, err := f.commit.Execute(ctx, in)
		if domainerror.KindOf(err) != domainerror.KindNotFound {
			t.Fatalf("KindOf(%v) = %q, want not_found", err, domainerror.KindOf(err))
		}
	})

	t.Run("contribution failure is partial and retryable", func(t *testing.T) {
		f := newLedgerFixture(t)
		userID := f.user(t)
		g := f.goal(t, userID, 1000)

		flaky := NewCommitTransactionUseCase(f.txnRepo, f.goalRepo, f.resolver, failingContributor{err: errors.New("connection reset")}, f.awarder)
		in := income(userID, 250)
		in.GoalID = &g.ID
		out, err := flaky.Execute(ctx, in)

		var partial *domainerror.PartialFailureError
		if !errors.As(err, &partial) {
			t.Fatalf("expected PartialFailureError, got %v", err)
		}
		if out == nil || partial.Transaction.ID != out.Transaction.ID || partial.GoalID != g.ID {
			t.Fatalf("partial failure must carry the committed transaction, got out=%+v partial=%+v", out, partial)
		}
		if n := f.count(t); n != 1 {
			t.Fatalf("transactions stored = %d, want 1", n)
		}

		retry := goal.NewRetryContributionUseCase(f.txnRepo, f.contributor)
		first, err := retry.Execute(ctx, goal.RetryContributionInput{UserID: userID, TransactionID: out.Transaction.ID})
		if err != nil {
			t.Fatal(err)
		}
		if !first.Applied || !first.Goal.CurrentAmount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("retry: applied=%v current=%s", first.Applied, first.Goal.CurrentAmount)
		}

		second, err := retry.Execute(ctx, goal.RetryContributionInput{UserID: userID, TransactionID: out.Transaction.ID})
		if err != nil {
			t.Fatal(err)
		}
		if second.Applied || !second.Goal.CurrentAmount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("second retry must be a no-op: applied=%v current=%s", second.Applied, second.Goal.CurrentAmount)
		}
		if n := f.count(t); n != 1 {
			t.Errorf("retry must not insert transactions, got %d", n)
		}
	})
}

func TestCommitTransaction_AwardFailureKeepsCommit(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	// No onboarding: the award finds no profile.
	out, err := f.commit.Execute(ctx, income(uuid.New(), 100))
	if err != nil {
		t.Fatalf("commit must succeed, got %v", err)
	}
	if out.XPAwarded || !errors.Is(out.AwardError, domainerror.ErrProfileNotFound) {
		t.Errorf("awarded=%v awardErr=%v", out.XPAwarded, out.AwardError)
	}
	if n := f.count(t); n != 1 {
		t.Errorf("transactions stored = %d, want 1", n)
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	userID := f.user(t)
	shopping := f.category(t, "Shopping", entity.CategoryTypeExpense)
	salary := f.category(t, "Salary", entity.CategoryTypeIncome)

	committed, err := f.commit.Execute(ctx, CommitTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(80),
		CategoryID:  &shopping.ID,
		Date:        march15,
		Description: "Shoes",
	})
	if err != nil {
		t.Fatal(err)
	}
	id := committed.Transaction.ID

	t.Run("category of another type leaves the row unmodified", func(t *testing.T) {
		newAmount := decimal.NewFromInt(90)
		_, err := f.update.Execute(ctx, UpdateTransactionInput{UserID: userID, TransactionID: id, Amount: &newAmount, CategoryID: &salary.ID})
		if !errors.Is(err, domainerror.ErrCategoryTypeMismatch) {
			t.Fatalf("expected ErrCategoryTypeMismatch, got %v", err)
		}

		stored, err := f.txnRepo.FindByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if stored.CategoryID != shopping.ID || !stored.Amount.Equal(decimal.NewFromInt(80)) {
			t.Errorf("stored row changed: category=%s amount=%s", stored.CategoryID, stored.Amount)
		}
	})

	t.Run("patch applies", func(t *testing.T) {
		amount := decimal.RequireFromString("85.50")
		description := "Running shoes"
		date := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
		out, err := f.update.Execute(ctx, UpdateTransactionInput{UserID: userID, TransactionID: id, Amount: &amount, Description: &description, Date: &date})
		if err != nil {
			t.Fatal(err)
		}
		if !out.Transaction.Amount.Equal(amount) || out.Transaction.Description != description {
			t.Errorf("output = %+v", out.Transaction)
		}

		stored, err := f.txnRepo.FindByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if !stored.Date.Equal(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)) || stored.Description != description {
			t.Errorf("stored = %+v", stored)
		}
	})

	t.Run("empty patch", func(t *testing.T) {
		_, err := f.update.Execute(ctx, UpdateTransactionInput{UserID: userID, TransactionID: id})
		if !errors.Is(err, domainerror.ErrMissingTransactionData) {
			t.Errorf("expected ErrMissingTransactionData, got %v", err)
		}
	})

	t.Run("other user's transaction is not found", func(t *testing.T) {
		description := "mine now"
		_, err := f.update.Execute(ctx, UpdateTransactionInput{UserID: uuid.New(), TransactionID: id, Description: &description})
		if domainerror.KindOf(err) != domainerror.KindNotFound {
			t.Errorf("KindOf(%v) = %q, want not_found", err, domainerror.KindOf(err))
		}
	})

	t.Run("goal-linked amount is frozen", func(t *testing.T) {
		g := f.goal(t, userID, 5000)
		in := income(userID, 300)
		in.GoalID = &g.ID
		linked, err := f.commit.Execute(ctx, in)
		if err != nil {
			t.Fatal(err)
		}

		amount := decimal.NewFromInt(3000)
		_, err = f.update.Execute(ctx, UpdateTransactionInput{UserID: userID, TransactionID: linked.Transaction.ID, Amount: &amount})
		if !errors.Is(err, domainerror.ErrGoalLinkedTransaction) {
			t.Fatalf("expected ErrGoalLinkedTransaction, got %v", err)
		}

		description := "March salary"
		if _, err := f.update.Execute(ctx, UpdateTransactionInput{UserID: userID, TransactionID: linked.Transaction.ID, Description: &description}); err != nil {
			t.Errorf("description edit on linked income must be allowed: %v", err)
		}
	})
}

func TestRemoveTransaction(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	userID := f.user(t)

	plain, err := f.commit.Execute(ctx, income(userID, 100))
	if err != nil {
		t.Fatal(err)
	}
	g := f.goal(t, userID, 1000)
	in := income(userID, 200)
	in.GoalID = &g.ID
	linked, err := f.commit.Execute(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		userID   uuid.UUID
		id       uuid.UUID
		wantKind domainerror.Kind
	}{
		{name: "goal-linked income", userID: userID, id: linked.Transaction.ID, wantKind: domainerror.KindInvalidState},
		{name: "other user", userID: uuid.New(), id: plain.Transaction.ID, wantKind: domainerror.KindNotFound},
		{name: "unknown id", userID: userID, id: uuid.New(), wantKind: domainerror.KindNotFound},
		{name: "plain income", userID: userID, id: plain.Transaction.ID, wantKind: ""},
		{name: "already removed", userID: userID, id: plain.Transaction.ID, wantKind: domainerror.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.remove.Execute(ctx, RemoveTransactionInput{UserID: tt.userID, TransactionID: tt.id})
			if got := domainerror.KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf(%v) = %q, want %q", err, got, tt.wantKind)
			}
		})
	}

	stored, err := f.goalRepo.FindByID(ctx, g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.CurrentAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("goal amount = %s, want 200", stored.CurrentAmount)
	}
}

func TestListAndTotals(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	userID := f.user(t)

	entries := []CommitTransactionInput{
		income(userID, 5000),
		{UserID: userID, Type: entity.TransactionTypeExpense, Amount: decimal.RequireFromString("120.25"), Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), Description: "Uber to airport"},
		{UserID: userID, Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(60), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Description: "Pharmacy"},
	}
	for _, in := range entries {
		if _, err := f.commit.Execute(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.commit.Execute(ctx, income(uuid.New(), 999)); err != nil {
		t.Fatal(err)
	}

	list, err := f.list.Execute(ctx, ListTransactionsInput{UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	if list.Pagination.Total != 3 || len(list.Transactions) != 3 {
		t.Fatalf("total=%d len=%d, want 3", list.Pagination.Total, len(list.Transactions))
	}
	wantOrder := []string{"Uber to airport", "Salary", "Pharmacy"}
	for i, want := range wantOrder {
		if list.Transactions[i].Description != want {
			t.Errorf("position %d = %q, want %q", i, list.Transactions[i].Description, want)
		}
	}
	if list.Transactions[0].Category == nil || list.Transactions[0].Category.Name != "Transportation" {
		t.Errorf("first category = %+v", list.Transactions[0].Category)
	}

	page, err := f.list.Execute(ctx, ListTransactionsInput{UserID: userID, Page: 2, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Transactions) != 1 || page.Pagination.TotalPages != 2 {
		t.Errorf("page 2: len=%d totalPages=%d", len(page.Transactions), page.Pagination.TotalPages)
	}

	totals, err := f.totals.Execute(ctx, GetTotalsInput{UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	if !totals.Totals.Income.Equal(decimal.NewFromInt(5000)) ||
		!totals.Totals.Expense.Equal(decimal.RequireFromString("180.25")) ||
		!totals.Totals.Balance.Equal(decimal.RequireFromString("4819.75")) {
		t.Errorf("totals = %+v", totals.Totals)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "10", want: "10"},
		{raw: " 45.50 ", want: "45.5"},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.234", wantErr: true},
		{raw: "10000000000000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidTransactionAmount", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
