// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/coach/config"
	"github.com/finance-tracker/coach/internal/infra/dependency"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
	"github.com/finance-tracker/coach/test/integration/mock"
)

// scenarioDate is "today" for every scenario.
var scenarioDate = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

var (
	dbInit sync.Once
	testDB *mock.Db
)

// TestContext holds the state of one scenario.
type TestContext struct {
	server   *httptest.Server
	client   *http.Client
	db       *mock.Db
	clock    *mock.Time
	events   *recordingPublisher
	reader   *stubExtractor
	response *response

	headers map[string]string

	currentUserID     uuid.UUID
	currentGoalID     uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
	raw    []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		dbInit.Do(func() {
			testDB = mock.NewDb("finance_coach_integration", model.Registry())
		})
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDataSteps(ctx)
}

func newTestContext() (*TestContext, error) {
	if err := testDB.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset database: %w", err)
	}

	tc := &TestContext{
		client:  &http.Client{Timeout: 10 * time.Second},
		db:      testDB,
		clock:   mock.NewTimeAt(scenarioDate),
		events:  &recordingPublisher{},
		reader:  &stubExtractor{available: true},
		headers: make(map[string]string),
	}

	cfg := config.Load()
	cfg.Server.Environment = "test"

	injector, err := dependency.NewInjector(cfg, testDB.DbConn, dependency.Collaborators{
		Publisher:   tc.events,
		Extractor:   tc.reader,
		Clock:       tc.clock,
		EventHealth: func() bool { return true },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire dependencies: %w", err)
	}

	if _, err := injector.SeedCategories.Execute(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	tc.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	return tc, nil
}
