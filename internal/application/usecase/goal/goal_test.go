package goal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/integration/persistence"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
	"github.com/finance-tracker/coach/test/integration/mock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event entity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type goalFixture struct {
	goalRepo   adapter.GoalRepository
	txnRepo    adapter.TransactionRepository
	clock      *mock.Time
	publisher  *recordingPublisher
	create     *CreateGoalUseCase
	contribute *ContributeToGoalUseCase
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()
	db := mock.NewTestDb(t, model.Registry())
	f := &goalFixture{
		goalRepo:  persistence.NewGoalRepository(db.DbConn),
		txnRepo:   persistence.NewTransactionRepository(db.DbConn),
		clock:     mock.NewTimeAt(time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)),
		publisher: &recordingPublisher{},
	}
	f.create = NewCreateGoalUseCase(f.goalRepo)
	f.contribute = NewContributeToGoalUseCase(f.goalRepo, f.publisher)
	return f
}

func (f *goalFixture) newGoal(t *testing.T, userID uuid.UUID, target int64) *GoalOutput {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateGoalInput{
		UserID:       userID,
		Title:        "Vacation",
		TargetAmount: decimal.NewFromInt(target),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return out.Goal
}

func (f *goalFixture) income(t *testing.T, userID uuid.UUID, amount int64, date time.Time) {
	t.Helper()
	txn := entity.NewTransaction(userID, entity.TransactionTypeIncome, decimal.NewFromInt(amount), uuid.New(), date, "income", nil, "")
	if err := f.txnRepo.Create(context.Background(), txn); err != nil {
		t.Fatalf("create income: %v", err)
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	ctx := context.Background()
	f := newGoalFixture(t)
	userID := uuid.New()

	tests := []struct {
		name    string
		input   CreateGoalInput
		wantErr error
	}{
		{name: "blank title", input: CreateGoalInput{UserID: userID, Title: "  ", TargetAmount: decimal.NewFromInt(10)}, wantErr: domainerror.ErrInvalidGoalTitle},
		{name: "long title", input: CreateGoalInput{UserID: userID, Title: strings.Repeat("x", 101), TargetAmount: decimal.NewFromInt(10)}, wantErr: domainerror.ErrInvalidGoalTitle},
		{name: "zero target", input: CreateGoalInput{UserID: userID, Title: "Bike", TargetAmount: decimal.Zero}, wantErr: domainerror.ErrInvalidTargetAmount},
		{name: "sub-cent target", input: CreateGoalInput{UserID: userID, Title: "Bike", TargetAmount: decimal.RequireFromString("12.345")}, wantErr: domainerror.ErrInvalidTargetAmount},
		{name: "target too large", input: CreateGoalInput{UserID: userID, Title: "Bike", TargetAmount: decimal.New(1, 13)}, wantErr: domainerror.ErrInvalidTargetAmount},
		{name: "missing user", input: CreateGoalInput{Title: "Bike", TargetAmount: decimal.NewFromInt(10)}, wantErr: domainerror.ErrMissingGoalFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if domainerror.KindOf(err) != domainerror.KindValidation {
				t.Errorf("KindOf = %q", domainerror.KindOf(err))
			}
		})
	}

	deadline := time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC)
	out, err := f.create.Execute(ctx, CreateGoalInput{UserID: userID, Title: " Bike ", TargetAmount: decimal.NewFromInt(800), Deadline: &deadline})
	if err != nil {
		t.Fatal(err)
	}
	if out.Goal.Title != "Bike" || out.Goal.Status != entity.GoalStatusActive || !out.Goal.CurrentAmount.IsZero() {
		t.Errorf("unexpected goal %+v", out.Goal)
	}
	if !out.Goal.Deadline.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("deadline = %v", out.Goal.Deadline)
	}
}

func TestContributeToGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("reaching target emits goal_achieved", func(t *testing.T) {
		f := newGoalFixture(t)
		userID := uuid.New()
		g := f.newGoal(t, userID, 500)

		first, err := f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.NewFromInt(200)})
		if err != nil {
			t.Fatal(err)
		}
		if first.GoalAchieved || !first.Goal.CurrentAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("first = %+v", first)
		}

		second, err := f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.NewFromInt(300)})
		if err != nil {
			t.Fatal(err)
		}
		if !second.GoalAchieved || second.Goal.Status != entity.GoalStatusAchieved {
			t.Errorf("second = %+v", second.Goal)
		}
		if len(f.publisher.events) != 1 || f.publisher.events[0].Kind != entity.EventKindGoalAchieved {
			t.Fatalf("events = %+v", f.publisher.events)
		}
		if f.publisher.events[0].Payload["goal_id"] != g.ID.String() {
			t.Errorf("payload = %v", f.publisher.events[0].Payload)
		}

		_, err = f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.NewFromInt(1)})
		if domainerror.KindOf(err) != domainerror.KindInvalidState {
			t.Errorf("achieved goal must reject contributions, got %v", err)
		}
	})

	t.Run("cancelled goal fails and keeps its amount", func(t *testing.T) {
		f := newGoalFixture(t)
		userID := uuid.New()
		g := f.newGoal(t, userID, 500)
		if _, err := f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.NewFromInt(120)}); err != nil {
			t.Fatal(err)
		}
		if err := NewCancelGoalUseCase(f.goalRepo).Execute(ctx, CancelGoalInput{UserID: userID, GoalID: g.ID}); err != nil {
			t.Fatal(err)
		}

		_, err := f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.NewFromInt(50)})
		if !errors.Is(err, domainerror.ErrGoalNotActive) || domainerror.KindOf(err) != domainerror.KindInvalidState {
			t.Fatalf("expected invalid state, got %v", err)
		}

		got, err := NewGetGoalUseCase(f.goalRepo).Execute(ctx, GetGoalInput{UserID: userID, GoalID: g.ID})
		if err != nil {
			t.Fatal(err)
		}
		if !got.Goal.CurrentAmount.Equal(decimal.NewFromInt(120)) || got.Goal.Status != entity.GoalStatusCancelled {
			t.Errorf("goal = %s %s", got.Goal.CurrentAmount, got.Goal.Status)
		}

		err = NewCancelGoalUseCase(f.goalRepo).Execute(ctx, CancelGoalInput{UserID: userID, GoalID: g.ID})
		if domainerror.KindOf(err) != domainerror.KindInvalidState {
			t.Errorf("second cancel: %v", err)
		}
	})

	t.Run("rejections", func(t *testing.T) {
		f := newGoalFixture(t)
		userID := uuid.New()
		g := f.newGoal(t, userID, 500)

		tests := []struct {
			name  string
			input ContributeToGoalInput
			kind  domainerror.Kind
		}{
			{name: "zero amount", input: ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.Zero}, kind: domainerror.KindValidation},
			{name: "sub-cent amount", input: ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.RequireFromString("0.001")}, kind: domainerror.KindValidation},
			{name: "amount too large", input: ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.New(1, 13)}, kind: domainerror.KindValidation},
			{name: "unknown goal", input: ContributeToGoalInput{UserID: userID, GoalID: uuid.New(), Amount: decimal.NewFromInt(5)}, kind: domainerror.KindNotFound},
			{name: "other user's goal", input: ContributeToGoalInput{UserID: uuid.New(), GoalID: g.ID, Amount: decimal.NewFromInt(5)}, kind: domainerror.KindNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.contribute.Execute(ctx, tt.input)
				if got := domainerror.KindOf(err); got != tt.kind {
					t.Errorf("KindOf(%v) = %q, want %q", err, got, tt.kind)
				}
			})
		}

		got, err := NewGetGoalUseCase(f.goalRepo).Execute(ctx, GetGoalInput{UserID: userID, GoalID: g.ID})
		if err != nil {
			t.Fatal(err)
		}
		if !got.Goal.CurrentAmount.IsZero() {
			t.Errorf("rejected contributions changed the goal: %s", got.Goal.CurrentAmount)
		}
	})
}

func TestListGoals(t *testing.T) {
	ctx := context.Background()
	f := newGoalFixture(t)
	userID := uuid.New()
	kept := f.newGoal(t, userID, 100)
	dropped := f.newGoal(t, userID, 200)
	f.newGoal(t, uuid.New(), 300)
	if err := NewCancelGoalUseCase(f.goalRepo).Execute(ctx, CancelGoalInput{UserID: userID, GoalID: dropped.ID}); err != nil {
		t.Fatal(err)
	}

	list := NewListGoalsUseCase(f.goalRepo)
	all, err := list.Execute(ctx, ListGoalsInput{UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Goals) != 2 {
		t.Errorf("all goals = %d, want 2", len(all.Goals))
	}

	active := entity.GoalStatusActive
	onlyActive, err := list.Execute(ctx, ListGoalsInput{UserID: userID, Status: &active})
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyActive.Goals) != 1 || onlyActive.Goals[0].ID != kept.ID {
		t.Errorf("active goals = %+v", onlyActive.Goals)
	}

	bogus := entity.GoalStatus("paused")
	if _, err := list.Execute(ctx, ListGoalsInput{UserID: userID, Status: &bogus}); !errors.Is(err, domainerror.ErrInvalidGoalStatus) {
		t.Errorf("expected ErrInvalidGoalStatus, got %v", err)
	}
}

func TestForecastAndOverview(t *testing.T) {
	ctx := context.Background()
	f := newGoalFixture(t)
	userID := uuid.New()

	g := f.newGoal(t, userID, 50000)
	if _, err := f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: g.ID, Amount: decimal.NewFromInt(20000)}); err != nil {
		t.Fatal(err)
	}
	done := f.newGoal(t, userID, 100)
	if _, err := f.contribute.Execute(ctx, ContributeToGoalInput{UserID: userID, GoalID: done.ID, Amount: decimal.NewFromInt(100)}); err != nil {
		t.Fatal(err)
	}

	// Clock is 2024-04-10: the window is [2024-03-12, 2024-04-10].
	f.income(t, userID, 4000, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	f.income(t, userID, 2000, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
	f.income(t, userID, 9000, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	f.income(t, uuid.New(), 9000, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))

	forecast := NewForecastGoalUseCase(f.goalRepo, f.txnRepo, f.clock)
	out, err := forecast.Execute(ctx, ForecastGoalInput{UserID: userID, GoalID: g.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Forecast.MonthlyIncome.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("trailing income = %s, want 6000", out.Forecast.MonthlyIncome)
	}
	if out.Forecast.MonthsRemaining == nil || *out.Forecast.MonthsRemaining != 5 {
		t.Errorf("months = %v, want 5", out.Forecast.MonthsRemaining)
	}

	achieved, err := forecast.Execute(ctx, ForecastGoalInput{UserID: userID, GoalID: done.ID})
	if err != nil {
		t.Fatal(err)
	}
	if achieved.Forecast.Status != entity.ForecastStatusAchieved {
		t.Errorf("status = %q, want achieved", achieved.Forecast.Status)
	}

	// Moving past the window leaves no income.
	f.clock.SetCurrentTime(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	later, err := forecast.Execute(ctx, ForecastGoalInput{UserID: userID, GoalID: g.ID})
	if err != nil {
		t.Fatal(err)
	}
	if later.Forecast.Status != entity.ForecastStatusInsufficientIncome {
		t.Errorf("status = %q, want insufficient_income", later.Forecast.Status)
	}
	f.clock.SetCurrentTime(time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC))

	overview, err := NewGoalOverviewUseCase(f.goalRepo, f.txnRepo, f.clock).Execute(ctx, GoalOverviewInput{UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	if len(overview.Goals) != 1 || overview.Goals[0].Goal.ID != g.ID {
		t.Fatalf("overview goals = %+v", overview.Goals)
	}
	if !overview.TrailingIncome.Equal(decimal.NewFromInt(6000)) || !overview.TotalSaved.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("overview = income %s saved %s", overview.TrailingIncome, overview.TotalSaved)
	}
}
