package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

func registerDataSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the receipt reader returns:$`, theReceiptReaderReturns)
	ctx.Given(`^the receipt reader is unavailable$`, theReceiptReaderIsUnavailable)
	ctx.Given(`^the receipt reader fails with "([^"]*)"$`, theReceiptReaderFailsWith)
	ctx.Given(`^(\d+) days pass$`, daysPass)

	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^(\d+) "([^"]*)" events? should have been published$`, eventsShouldHaveBeenPublished)
}

// stubExtractor plays the receipt reader.
type stubExtractor struct {
	mu        sync.Mutex
	records   []adapter.ExtractedRecord
	err       error
	available bool
}

func (s *stubExtractor) Extract(ctx context.Context, _ adapter.ReceiptDocument) ([]adapter.ExtractedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubExtractor) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// recordingPublisher keeps every published event in memory.
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

func (p *recordingPublisher) count(kind entity.EventKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, event := range p.events {
		if event.Kind == kind {
			n++
		}
	}
	return n
}

func theReceiptReaderReturns(ctx context.Context, content *godog.DocString) error {
	var records []adapter.ExtractedRecord
	if err := json.Unmarshal([]byte(content.Content), &records); err != nil {
		return fmt.Errorf("invalid receipt records: %w", err)
	}
	reader := GetTestContext(ctx).reader
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.records = records
	return nil
}

func theReceiptReaderIsUnavailable(ctx context.Context) error {
	reader := GetTestContext(ctx).reader
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.available = false
	return nil
}

func theReceiptReaderFailsWith(ctx context.Context, message string) error {
	reader := GetTestContext(ctx).reader
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.err = errors.New(message)
	return nil
}

func daysPass(ctx context.Context, days int) error {
	GetTestContext(ctx).clock.Advance(time.Duration(days) * 24 * time.Hour)
	return nil
}

func eventsShouldHaveBeenPublished(ctx context.Context, count int, kind string) error {
	got := GetTestContext(ctx).events.count(entity.EventKind(kind))
	if got != count {
		return fmt.Errorf("expected %d %q events, got %d", count, kind, got)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	return countRows(GetTestContext(ctx), quantity, table, nil)
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(GetTestContext(ctx).replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return countRows(GetTestContext(ctx), quantity, table, criteria)
}

func countRows(tc *TestContext, quantity int, table string, criteria map[string]any) error {
	entityModel, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := tc.db.DbConn.Session(&gorm.Session{})
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}
