package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
	"github.com/finance-tracker/coach/test/integration/mock"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return mock.NewTestDb(t, model.Registry()).DbConn
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))

	for _, c := range entity.DefaultCategories() {
		require.NoError(t, repo.Create(ctx, c))
	}

	t.Run("FindByName is case-insensitive and scoped by type", func(t *testing.T) {
		expenseOther, err := repo.FindByName(ctx, "  other ", entity.CategoryTypeExpense)
		require.NoError(t, err)
		incomeOther, err := repo.FindByName(ctx, "OTHER", entity.CategoryTypeIncome)
		require.NoError(t, err)

		assert.Equal(t, entity.CategoryTypeExpense, expenseOther.Type)
		assert.Equal(t, entity.CategoryTypeIncome, incomeOther.Type)
		assert.NotEqual(t, expenseOther.ID, incomeOther.ID)
	})

	t.Run("FindByName missing returns sentinel", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Salary", entity.CategoryTypeExpense)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})

	t.Run("FindByType orders by name", func(t *testing.T) {
		income, err := repo.FindByType(ctx, entity.CategoryTypeIncome)
		require.NoError(t, err)

		names := make([]string, len(income))
		for i, c := range income {
			names[i] = c.Name
		}
		assert.Equal(t, []string{"Freelance", "Gifts", "Investments", "Other", "Salary"}, names)
	})

	t.Run("FindByID round-trips", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 13)

		found, err := repo.FindByID(ctx, all[0].ID)
		require.NoError(t, err)
		assert.Equal(t, all[0].Name, found.Name)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})

	t.Run("name is unique within a type", func(t *testing.T) {
		err := repo.Create(ctx, entity.NewCategory("Salary", entity.CategoryTypeIncome, "", ""))
		assert.Error(t, err)
	})
}

func TestTransactionRepository_ListAndTotals(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	userID := uuid.New()
	otherUser := uuid.New()
	categoryID := uuid.New()

	older := entity.NewTransaction(userID, entity.TransactionTypeIncome, decimal.NewFromInt(3000), categoryID, day("2024-03-01"), "March salary", nil, "")
	newer := entity.NewTransaction(userID, entity.TransactionTypeExpense, decimal.RequireFromString("45.50"), categoryID, day("2024-03-10"), "Dinner at cafe", nil, "")
	sameDay := entity.NewTransaction(userID, entity.TransactionTypeExpense, decimal.NewFromInt(20), categoryID, day("2024-03-10"), "Bus pass", nil, "")
	sameDay.CreatedAt = newer.CreatedAt.Add(time.Second)
	foreign := entity.NewTransaction(otherUser, entity.TransactionTypeIncome, decimal.NewFromInt(999), categoryID, day("2024-03-05"), "Not mine", nil, "")

	for _, txn := range []*entity.Transaction{older, newer, sameDay, foreign} {
		require.NoError(t, repo.Create(ctx, txn))
	}

	t.Run("orders by date then creation time, newest first", func(t *testing.T) {
		list, total, err := repo.List(ctx, adapter.TransactionFilter{UserID: userID})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, list, 3)
		assert.Equal(t, sameDay.ID, list[0].ID)
		assert.Equal(t, newer.ID, list[1].ID)
		assert.Equal(t, older.ID, list[2].ID)
	})

	t.Run("filters by type, search and date range", func(t *testing.T) {
		expense := entity.TransactionTypeExpense
		list, _, err := repo.List(ctx, adapter.TransactionFilter{UserID: userID, Type: &expense, Search: "CAFE"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, newer.ID, list[0].ID)

		start, end := day("2024-03-01"), day("2024-03-05")
		list, _, err = repo.List(ctx, adapter.TransactionFilter{UserID: userID, StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, older.ID, list[0].ID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		list, total, err := repo.List(ctx, adapter.TransactionFilter{UserID: userID, Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, list, 1)
		assert.Equal(t, newer.ID, list[0].ID)
	})

	t.Run("sums by type", func(t *testing.T) {
		income, expense, err := repo.SumByType(ctx, userID, nil, nil)
		require.NoError(t, err)
		assert.True(t, income.Equal(decimal.NewFromInt(3000)), "income %s", income)
		assert.True(t, expense.Equal(decimal.RequireFromString("65.50")), "expense %s", expense)

		start := day("2024-03-02")
		income, _, err = repo.SumByType(ctx, userID, &start, nil)
		require.NoError(t, err)
		assert.True(t, income.IsZero(), "income after window start %s", income)
	})

	t.Run("soft delete hides the row", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, sameDay.ID))

		_, err := repo.FindByID(ctx, sameDay.ID)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

		_, total, err := repo.List(ctx, adapter.TransactionFilter{UserID: userID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)

		assert.ErrorIs(t, repo.Delete(ctx, sameDay.ID), domainerror.ErrTransactionNotFound)
	})

	t.Run("update rewrites mutable fields", func(t *testing.T) {
		newer.Amount = decimal.NewFromInt(60)
		newer.Description = "Dinner with friends"
		newer.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(ctx, newer))

		stored, err := repo.FindByID(ctx, newer.ID)
		require.NoError(t, err)
		assert.True(t, stored.Amount.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, "Dinner with friends", stored.Description)
		assert.True(t, stored.Date.Equal(day("2024-03-10")))
	})
}

func TestGoalRepository_Contribute(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestDB(t))
	userID := uuid.New()

	newGoal := func(target int64) *entity.Goal {
		g := entity.NewGoal(userID, "Emergency fund", decimal.NewFromInt(target), nil)
		require.NoError(t, repo.Create(ctx, g))
		return g
	}

	t.Run("increments current amount", func(t *testing.T) {
		g := newGoal(1000)

		result, err := repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(250), nil))
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.False(t, result.JustAchieved)
		assert.True(t, result.Goal.CurrentAmount.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, entity.GoalStatusActive, result.Goal.Status)
	})

	t.Run("same transaction is applied once", func(t *testing.T) {
		g := newGoal(1000)
		txnID := uuid.New()

		_, err := repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(100), &txnID))
		require.NoError(t, err)
		again, err := repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(100), &txnID))
		require.NoError(t, err)

		assert.False(t, again.Applied)
		assert.True(t, again.Goal.CurrentAmount.Equal(decimal.NewFromInt(100)))

		contributions, err := repo.FindContributions(ctx, g.ID)
		require.NoError(t, err)
		assert.Len(t, contributions, 1)
	})

	t.Run("reaching the target achieves the goal once", func(t *testing.T) {
		g := newGoal(300)

		first, err := repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(300), nil))
		require.NoError(t, err)
		assert.True(t, first.JustAchieved)
		assert.Equal(t, entity.GoalStatusAchieved, first.Goal.Status)
		assert.NotNil(t, first.Goal.AchievedAt)

		_, err = repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(10), nil))
		assert.ErrorIs(t, err, domainerror.ErrGoalNotActive)
	})

	t.Run("cancelled goal rejects contribution and keeps amount", func(t *testing.T) {
		g := newGoal(500)
		_, err := repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(50), nil))
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, g.ID, entity.GoalStatusCancelled))

		txnID := uuid.New()
		_, err = repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(75), &txnID))
		assert.ErrorIs(t, err, domainerror.ErrGoalNotActive)

		stored, err := repo.FindByID(ctx, g.ID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(50)), "current %s", stored.CurrentAmount)

		contributions, err := repo.FindContributions(ctx, g.ID)
		require.NoError(t, err)
		assert.Len(t, contributions, 1, "rejected contribution must not be recorded")
	})

	t.Run("missing goal", func(t *testing.T) {
		_, err := repo.Contribute(ctx, entity.NewGoalContribution(uuid.New(), userID, decimal.NewFromInt(5), nil))
		assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
	})

	t.Run("concurrent contributions are not lost", func(t *testing.T) {
		g := newGoal(100000)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Contribute(ctx, entity.NewGoalContribution(g.ID, userID, decimal.NewFromInt(10), nil))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := repo.FindByID(ctx, g.ID)
		require.NoError(t, err)
		assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(200)), "current %s", stored.CurrentAmount)
	})

	t.Run("lists goals by status", func(t *testing.T) {
		active := entity.GoalStatusActive
		goals, err := repo.FindByUserID(ctx, userID, &active)
		require.NoError(t, err)
		for _, g := range goals {
			assert.Equal(t, entity.GoalStatusActive, g.Status)
		}

		all, err := repo.FindByUserID(ctx, userID, nil)
		require.NoError(t, err)
		assert.Greater(t, len(all), len(goals))
	})
}

func TestProfileRepository_AddXP(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newTestDB(t))
	strategy := valueobject.BandedLevels{}

	newProfile := func() *entity.Profile {
		p := entity.NewProfile(uuid.New(), "Asha", strategy)
		created, err := repo.Create(ctx, p)
		require.NoError(t, err)
		require.True(t, created)
		return p
	}

	t.Run("create is idempotent", func(t *testing.T) {
		p := newProfile()
		created, err := repo.Create(ctx, entity.NewProfile(p.UserID, "Someone else", strategy))
		require.NoError(t, err)
		assert.False(t, created)

		stored, err := repo.FindByUserID(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Asha", stored.FullName)
	})

	t.Run("increments xp and recomputes level", func(t *testing.T) {
		p := newProfile()

		result, err := repo.AddXP(ctx, entity.NewXPAward(p.UserID, "quiz", 120, ""), strategy)
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.EqualValues(t, 0, result.PreviousXP)
		assert.Equal(t, 1, result.PreviousLevel)
		assert.EqualValues(t, 120, result.Profile.XP)
		assert.Equal(t, 2, result.Profile.Level)

		stored, err := repo.FindByUserID(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Level)
	})

	t.Run("source key makes the award idempotent", func(t *testing.T) {
		p := newProfile()

		_, err := repo.AddXP(ctx, entity.NewXPAward(p.UserID, "transaction_logged", 5, "transaction:abc"), strategy)
		require.NoError(t, err)
		again, err := repo.AddXP(ctx, entity.NewXPAward(p.UserID, "transaction_logged", 5, "transaction:abc"), strategy)
		require.NoError(t, err)

		assert.False(t, again.Applied)
		assert.EqualValues(t, 5, again.Profile.XP)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.AddXP(ctx, entity.NewXPAward(uuid.New(), "quiz", 20, ""), strategy)
		assert.ErrorIs(t, err, domainerror.ErrProfileNotFound)
	})

	t.Run("concurrent awards are not lost", func(t *testing.T) {
		p := newProfile()

		var wg sync.WaitGroup
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AddXP(ctx, entity.NewXPAward(p.UserID, "tip", 10, ""), strategy)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := repo.FindByUserID(ctx, p.UserID)
		require.NoError(t, err)
		assert.EqualValues(t, 250, stored.XP)
		assert.Equal(t, strategy.LevelFor(250), stored.Level)
	})
}
