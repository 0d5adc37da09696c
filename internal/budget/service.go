package budget

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service defines budget expense operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Expense, error)
	List(ctx context.Context, weddingID uuid.UUID, category *string) ([]models.Expense, error)
	Get(ctx context.Context, weddingID, expenseID uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, weddingID, expenseID uuid.UUID, params UpdateParams) (*models.Expense, error)
	Delete(ctx context.Context, weddingID, expenseID uuid.UUID) error
	Summary(ctx context.Context, weddingID uuid.UUID) (*Summary, error)
}

// CreateParams carries the new-expense payload.
type CreateParams struct {
	WeddingID     uuid.UUID
	Category      string
	Description   *string
	EstimatedCost decimal.Decimal
	ActualCost    decimal.Decimal
	PaymentStatus enums.PaymentStatus
	OwnerUserID   uuid.UUID
}

// UpdateParams carries mutable expense fields. Nil fields are left untouched.
type UpdateParams struct {
	Category      *string
	Description   *string
	EstimatedCost *decimal.Decimal
	ActualCost    *decimal.Decimal
	PaymentStatus *enums.PaymentStatus
}

// CategoryTotals pairs the planned and actual spend of one category.
type CategoryTotals struct {
	Estimated decimal.Decimal `json:"estimated"`
	Actual    decimal.Decimal `json:"actual"`
}

// Summary is the aggregate over all wedding expenses. Totals are decimal
// sums; PercentageUsed is actual/estimated rounded to two places.
type Summary struct {
	Total          decimal.Decimal           `json:"total"`
	Spent          decimal.Decimal           `json:"spent"`
	Remaining      decimal.Decimal           `json:"remaining"`
	PercentageUsed decimal.Decimal           `json:"percentage_used"`
	ByCategory     map[string]CategoryTotals `json:"by_category"`
	PaymentStatus  map[string]int            `json:"payment_status"`
}

type service struct {
	repo Repository
}

// NewService wires budget dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "budget repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Expense, error) {
	if params.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	category := strings.TrimSpace(params.Category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required")
	}
	if params.EstimatedCost.IsNegative() || params.ActualCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "costs cannot be negative")
	}
	status := params.PaymentStatus
	if status == "" {
		status = enums.PaymentPending
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	expense := &models.Expense{
		ID:            uuid.New(),
		WeddingID:     params.WeddingID,
		Category:      category,
		Description:   params.Description,
		EstimatedCost: params.EstimatedCost,
		ActualCost:    params.ActualCost,
		PaymentStatus: status,
		OwnerUserID:   params.OwnerUserID,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
	}
	return expense, nil
}

func (s *service) List(ctx context.Context, weddingID uuid.UUID, category *string) ([]models.Expense, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	expenses, err := s.repo.List(ctx, weddingID, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return expenses, nil
}

func (s *service) Get(ctx context.Context, weddingID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.repo.GetByID(ctx, weddingID, expenseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get expense")
	}
	if expense == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
	}
	return expense, nil
}

func (s *service) Update(ctx context.Context, weddingID, expenseID uuid.UUID, params UpdateParams) (*models.Expense, error) {
	expense, err := s.Get(ctx, weddingID, expenseID)
	if err != nil {
		return nil, err
	}

	if params.Category != nil {
		category := strings.TrimSpace(*params.Category)
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		expense.Category = category
	}
	if params.Description != nil {
		expense.Description = params.Description
	}
	if params.EstimatedCost != nil {
		if params.EstimatedCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated cost cannot be negative")
		}
		expense.EstimatedCost = *params.EstimatedCost
	}
	if params.ActualCost != nil {
		if params.ActualCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "actual cost cannot be negative")
		}
		expense.ActualCost = *params.ActualCost
	}
	if params.PaymentStatus != nil {
		if !params.PaymentStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		expense.PaymentStatus = *params.PaymentStatus
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update expense")
	}
	return expense, nil
}

func (s *service) Delete(ctx context.Context, weddingID, expenseID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, weddingID, expenseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
	}
	return nil
}

// Summary aggregates the wedding's expenses in memory. The row counts per
// wedding stay small enough that fetch-then-aggregate beats pushing the
// grouping into SQL.
func (s *service) Summary(ctx context.Context, weddingID uuid.UUID) (*Summary, error) {
	expenses, err := s.List(ctx, weddingID, nil)
	if err != nil {
		return nil, err
	}
	return Summarize(expenses), nil
}

// Summarize computes the budget aggregate for the provided rows.
func Summarize(expenses []models.Expense) *Summary {
	summary := &Summary{
		Total:         decimal.Zero,
		Spent:         decimal.Zero,
		ByCategory:    map[string]CategoryTotals{},
		PaymentStatus: map[string]int{},
	}

	for _, expense := range expenses {
		summary.Total = summary.Total.Add(expense.EstimatedCost)
		summary.Spent = summary.Spent.Add(expense.ActualCost)

		totals := summary.ByCategory[expense.Category]
		totals.Estimated = totals.Estimated.Add(expense.EstimatedCost)
		totals.Actual = totals.Actual.Add(expense.ActualCost)
		summary.ByCategory[expense.Category] = totals

		summary.PaymentStatus[expense.PaymentStatus.String()]++
	}

	summary.Remaining = summary.Total.Sub(summary.Spent)
	if summary.Total.IsPositive() {
		summary.PercentageUsed = summary.Spent.
			Div(summary.Total).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		summary.PercentageUsed = decimal.Zero
	}
	return summary
}
