package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

var ErrNotFound = errors.New("order not found")

// ValidationError reports order fields rejected before reaching the store.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Problems, "; ")
}

// Repository is the persistence port for orders.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByPaymentStatus(ctx context.Context, paymentStatus string) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// Create persists a new order. The order date defaults to today when the
// caller leaves it unset; status and payment status stay free text.
func (s *Service) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if order.Items == nil {
		order.Items = []domain.OrderLine{}
	}

	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// Update replaces every field except the id and the original order date.
func (s *Service) Update(ctx context.Context, id string, order domain.Order) (*domain.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	order.ID = existing.ID
	order.OrderDate = existing.OrderDate
	if order.Items == nil {
		order.Items = []domain.OrderLine{}
	}

	updated, err := s.repo.Update(ctx, &order)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}

	return &order, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.repo.CountByStatus(ctx, status)
}

func (s *Service) CountByPaymentStatus(ctx context.Context, paymentStatus string) (int64, error) {
	return s.repo.CountByPaymentStatus(ctx, paymentStatus)
}

// Dashboard aggregates the full order collection. Recomputed per call; the
// snapshot is whatever List returns at that moment.
func (s *Service) Dashboard(ctx context.Context) (Summary, error) {
	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(snapshot), nil
}

func validateOrder(order domain.Order) error {
	var problems []string

	if strings.TrimSpace(order.CustomerName) == "" {
		problems = append(problems, "customer_name is required")
	}
	if order.TotalAmount < 0 {
		problems = append(problems, "total_amount must not be negative")
	}
	for _, line := range order.Items {
		if line.Quantity < 0 || line.Price < 0 {
			problems = append(problems, "line items must not have negative quantity or price")
			break
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
