package items

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

var (
	ErrNotFound = errors.New("item not found")
	ErrConflict = errors.New("item with this name and supplier already exists")
)

// ValidationError reports input fields rejected before reaching the store.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid item: " + strings.Join(e.Problems, "; ")
}

// Repository is the persistence port for catalog items.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	SearchByName(ctx context.Context, name string) ([]domain.Item, error)
	ListBySupplier(ctx context.Context, supplier string) ([]domain.Item, error)
	ListByQuantityAtMost(ctx context.Context, threshold int) ([]domain.Item, error)
	ListByQuantity(ctx context.Context, quantity int) ([]domain.Item, error)
	ListLowStock(ctx context.Context) ([]domain.Item, error)
	ListByPriceBetween(ctx context.Context, minPrice, maxPrice int64) ([]domain.Item, error)
	ExistsByNameAndSupplier(ctx context.Context, name, supplier string) (bool, error)
}

// Notifier receives a content-free signal after each committed mutation.
type Notifier interface {
	Publish()
}

// EventPublisher mirrors change signals to an external broker. Optional.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	repo   Repository
	hub    Notifier
	events EventPublisher
	logger *slog.Logger
}

// NewService wires the item core. events may be nil when no broker is
// configured.
func NewService(repo Repository, hub Notifier, events EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		events: events,
		logger: logger,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, item domain.Item) (*domain.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNameAndSupplier(ctx, item.Name, item.Supplier)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, item.ID, domain.ChangeActionCreated)
	return &item, nil
}

// Update replaces every field except the id and creation timestamp.
func (s *Service) Update(ctx context.Context, id string, item domain.Item) (*domain.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, &item)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}

	s.notifyChange(ctx, item.ID, domain.ChangeActionUpdated)
	return &item, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.Item, error) {
	if quantity < 0 {
		return nil, &ValidationError{Problems: []string{"quantity must not be negative"}}
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	existing.Quantity = quantity
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}

	s.notifyChange(ctx, existing.ID, domain.ChangeActionUpdated)
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.notifyChange(ctx, id, domain.ChangeActionDeleted)
	return nil
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]domain.Item, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *Service) ListBySupplier(ctx context.Context, supplier string) ([]domain.Item, error) {
	return s.repo.ListBySupplier(ctx, supplier)
}

func (s *Service) ListByPriceBetween(ctx context.Context, minPrice, maxPrice int64) ([]domain.Item, error) {
	return s.repo.ListByPriceBetween(ctx, minPrice, maxPrice)
}

// LowStock lists items whose quantity is positive but at or below their own
// minimum threshold.
func (s *Service) LowStock(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListLowStock(ctx)
}

// LowStockAtMost lists items at or below a caller-supplied quantity
// threshold, regardless of per-item minimums.
func (s *Service) LowStockAtMost(ctx context.Context, threshold int) ([]domain.Item, error) {
	return s.repo.ListByQuantityAtMost(ctx, threshold)
}

func (s *Service) OutOfStock(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListByQuantity(ctx, 0)
}

func (s *Service) StockOverview(ctx context.Context) (StockOverview, error) {
	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return StockOverview{}, err
	}
	return BuildStockOverview(snapshot), nil
}

// notifyChange runs after a committed mutation. Delivery is best effort:
// failures are logged and never surface to the mutation caller.
func (s *Service) notifyChange(ctx context.Context, itemID, action string) {
	s.hub.Publish()

	if s.events == nil {
		return
	}
	event := domain.InventoryChangedEvent{
		ItemID:    itemID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, itemID, event); err != nil {
		s.logger.Error("failed to publish inventory change event", "error", err, "item_id", itemID, "action", action)
	}
}

func validateItem(item domain.Item) error {
	var problems []string

	if n := len(strings.TrimSpace(item.Name)); n < 2 || n > 100 {
		problems = append(problems, "name must be 2-100 characters")
	}
	if len(item.Description) > 500 {
		problems = append(problems, "description must be at most 500 characters")
	}
	if len(item.Category) > 50 {
		problems = append(problems, "category must be at most 50 characters")
	}
	if item.Quantity < 0 {
		problems = append(problems, "quantity must not be negative")
	}
	if item.MinQuantity < 0 {
		problems = append(problems, "min_quantity must not be negative")
	}
	if item.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if n := len(strings.TrimSpace(item.Supplier)); n < 2 || n > 100 {
		problems = append(problems, "supplier must be 2-100 characters")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
