// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a non-deleted transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Update persists the mutable fields of a transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]any{
			"amount":      transaction.Amount,
			"category_id": transaction.CategoryID,
			"date":        transaction.Date,
			"description": transaction.Description,
			"updated_at":  transaction.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// List retrieves transactions matching the filter ordered by date DESC, created_at DESC.
func (r *transactionRepository) List(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	// Get total count
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date DESC, created_at DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var transactionModels []model.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, total, nil
}

// SumByType sums amounts per type for a user. Nil bounds are open.
func (r *transactionRepository) SumByType(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID)
	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	if err := query.Select("type, COALESCE(SUM(amount), 0) as total").Group("type").Scan(&rows).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			income = row.Total
		case entity.TransactionTypeExpense:
			expense = row.Total
		}
	}
	return income, expense, nil
}

func (r *transactionRepository) applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", entity.CalendarDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", entity.CalendarDate(*filter.EndDate))
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.GoalID != nil {
		query = query.Where("goal_id = ?", *filter.GoalID)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}
	return query
}
