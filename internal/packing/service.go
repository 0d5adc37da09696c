package packing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service defines packing list operations.
type Service interface {
	CreateList(ctx context.Context, params ListParams) (*models.PackingList, error)
	Lists(ctx context.Context, weddingID uuid.UUID, ownerID *uuid.UUID) ([]ListWithProgress, error)
	GetList(ctx context.Context, weddingID, listID uuid.UUID) (*ListWithProgress, error)
	UpdateList(ctx context.Context, weddingID, listID uuid.UUID, params UpdateListParams) (*models.PackingList, error)
	DeleteList(ctx context.Context, weddingID, listID uuid.UUID) error

	AddItem(ctx context.Context, weddingID, listID uuid.UUID, params ItemParams) (*models.PackingItem, error)
	UpdateItem(ctx context.Context, weddingID, listID, itemID uuid.UUID, params UpdateItemParams) (*models.PackingItem, error)
	TogglePacked(ctx context.Context, weddingID, listID, itemID uuid.UUID) (*models.PackingItem, error)
	DeleteItem(ctx context.Context, weddingID, listID, itemID uuid.UUID) error
}

// ListParams carries the new-list payload.
type ListParams struct {
	WeddingID   uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	Honeymoon   bool
}

// UpdateListParams carries mutable list fields. Nil fields are left
// untouched.
type UpdateListParams struct {
	Title       *string
	Description *string
	Honeymoon   *bool
}

// ItemParams carries the new-item payload.
type ItemParams struct {
	Name     string
	Quantity int
	Notes    *string
}

// UpdateItemParams carries mutable item fields. Nil fields are left
// untouched; the packed flag changes through TogglePacked.
type UpdateItemParams struct {
	Name     *string
	Quantity *int
	Notes    *string
}

// ListWithProgress is a packing list with its items and completion
// percentage (packed items over total, 0 for an empty list).
type ListWithProgress struct {
	List       models.PackingList   `json:"list"`
	Items      []models.PackingItem `json:"items"`
	Completion float64              `json:"completion"`
}

type service struct {
	client *db.Client
	repo   Repository
	now    func() time.Time
}

// NewService wires packing dependencies.
func NewService(client *db.Client, repo Repository) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "packing repository required")
	}
	return &service{client: client, repo: repo, now: time.Now}, nil
}

func (s *service) CreateList(ctx context.Context, params ListParams) (*models.PackingList, error) {
	if params.WeddingID == uuid.Nil || params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id and owner id required")
	}
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "list title required")
	}

	list := &models.PackingList{
		ID:          uuid.New(),
		WeddingID:   params.WeddingID,
		OwnerID:     params.OwnerID,
		Title:       title,
		Description: params.Description,
		Honeymoon:   params.Honeymoon,
	}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create packing list")
	}
	return list, nil
}

func (s *service) Lists(ctx context.Context, weddingID uuid.UUID, ownerID *uuid.UUID) ([]ListWithProgress, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	lists, err := s.repo.Lists(ctx, weddingID, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packing lists")
	}

	out := make([]ListWithProgress, 0, len(lists))
	for _, list := range lists {
		items, err := s.repo.Items(ctx, list.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packing items")
		}
		out = append(out, ListWithProgress{
			List:       list,
			Items:      items,
			Completion: completion(items),
		})
	}
	return out, nil
}

func (s *service) GetList(ctx context.Context, weddingID, listID uuid.UUID) (*ListWithProgress, error) {
	list, err := s.loadList(ctx, weddingID, listID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Items(ctx, list.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packing items")
	}
	return &ListWithProgress{
		List:       *list,
		Items:      items,
		Completion: completion(items),
	}, nil
}

func (s *service) UpdateList(ctx context.Context, weddingID, listID uuid.UUID, params UpdateListParams) (*models.PackingList, error) {
	list, err := s.loadList(ctx, weddingID, listID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "list title cannot be empty")
		}
		list.Title = title
	}
	if params.Description != nil {
		list.Description = params.Description
	}
	if params.Honeymoon != nil {
		list.Honeymoon = *params.Honeymoon
	}

	if err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update packing list")
	}
	return list, nil
}

// DeleteList removes the list and its items in one transaction.
func (s *service) DeleteList(ctx context.Context, weddingID, listID uuid.UUID) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteItemsForList(ctx, listID); err != nil {
			return err
		}
		affected, err := repo.DeleteList(ctx, weddingID, listID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "packing list not found")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete packing list")
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, weddingID, listID uuid.UUID, params ItemParams) (*models.PackingItem, error) {
	if _, err := s.loadList(ctx, weddingID, listID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name required")
	}
	quantity := params.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := &models.PackingItem{
		ID:       uuid.New(),
		ListID:   listID,
		Name:     name,
		Quantity: quantity,
		Notes:    params.Notes,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add packing item")
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, weddingID, listID, itemID uuid.UUID, params UpdateItemParams) (*models.PackingItem, error) {
	item, err := s.loadItem(ctx, weddingID, listID, itemID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name cannot be empty")
		}
		item.Name = name
	}
	if params.Quantity != nil {
		if *params.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		item.Quantity = *params.Quantity
	}
	if params.Notes != nil {
		item.Notes = params.Notes
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update packing item")
	}
	return item, nil
}

// TogglePacked flips the packed flag, stamping packed_at when packing and
// clearing it when unpacking.
func (s *service) TogglePacked(ctx context.Context, weddingID, listID, itemID uuid.UUID) (*models.PackingItem, error) {
	item, err := s.loadItem(ctx, weddingID, listID, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsPacked {
		item.IsPacked = false
		item.PackedAt = nil
	} else {
		packedAt := s.now().UTC()
		item.IsPacked = true
		item.PackedAt = &packedAt
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle packing item")
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, weddingID, listID, itemID uuid.UUID) error {
	if _, err := s.loadList(ctx, weddingID, listID); err != nil {
		return err
	}
	affected, err := s.repo.DeleteItem(ctx, listID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete packing item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "packing item not found")
	}
	return nil
}

func (s *service) loadList(ctx context.Context, weddingID, listID uuid.UUID) (*models.PackingList, error) {
	list, err := s.repo.GetList(ctx, weddingID, listID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get packing list")
	}
	if list == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "packing list not found")
	}
	return list, nil
}

func (s *service) loadItem(ctx context.Context, weddingID, listID, itemID uuid.UUID) (*models.PackingItem, error) {
	if _, err := s.loadList(ctx, weddingID, listID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, listID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get packing item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "packing item not found")
	}
	return item, nil
}

func completion(items []models.PackingItem) float64 {
	if len(items) == 0 {
		return 0
	}
	packed := 0
	for _, item := range items {
		if item.IsPacked {
			packed++
		}
	}
	return float64(packed) / float64(len(items)) * 100
}
