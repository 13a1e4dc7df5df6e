package shoppinglist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/pkg/household"
	"gorm.io/gorm"
)

type (
	ShoppingListService interface {
		GetOpenItems(ctx context.Context, householdID, userID string) ([]domain.ShoppingItemResponse, error)
		AddItem(ctx context.Context, req domain.AddShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateShoppingItemRequest, userID string) error
		MarkCompleted(ctx context.Context, itemID, userID string) error
		DeleteItem(ctx context.Context, itemID, userID string) error
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
		householdService       household.HouseholdService
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository, householdService household.HouseholdService) ShoppingListService {
	return &shoppingListService{
		shoppingListRepository: shoppingListRepository,
		householdService:       householdService,
	}
}

// GetOpenItems returns the household's list minus completed items; completed
// items are kept only as history and never shown.
func (s *shoppingListService) GetOpenItems(ctx context.Context, householdID, userID string) ([]domain.ShoppingItemResponse, error) {
	if err := s.authorize(ctx, userID, householdID); err != nil {
		return nil, err
	}

	items, err := s.shoppingListRepository.GetOpenItems(ctx, householdID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ShoppingItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, itemToResponse(item))
	}
	return response, nil
}

func (s *shoppingListService) AddItem(ctx context.Context, req domain.AddShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error) {
	if err := s.authorize(ctx, userID, req.HouseholdID); err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	householdUUID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return domain.ShoppingItemResponse{}, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShoppingItemResponse{}, domain.ErrParseUUID
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item := &entities.ShoppingListItem{
		ID:             uuid.New(),
		ProductName:    req.ProductName,
		HouseholdID:    householdUUID,
		AddedBy:        userUUID,
		AddedTimestamp: time.Now().UnixMilli(),
		Note:           req.Note,
		Quantity:       quantity,
	}
	if err := s.shoppingListRepository.SaveItem(ctx, item); err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	return itemToResponse(item), nil
}

func (s *shoppingListService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateShoppingItemRequest, userID string) error {
	item, err := s.getAuthorizedItem(ctx, itemID, userID)
	if err != nil {
		return err
	}

	if req.ProductName != "" {
		item.ProductName = req.ProductName
	}
	if req.Quantity != 0 {
		item.Quantity = req.Quantity
	}
	if req.Note != "" {
		item.Note = req.Note
	}

	return s.shoppingListRepository.SaveItem(ctx, item)
}

func (s *shoppingListService) MarkCompleted(ctx context.Context, itemID, userID string) error {
	item, err := s.getAuthorizedItem(ctx, itemID, userID)
	if err != nil {
		return err
	}

	if item.Completed {
		return nil
	}

	item.Completed = true
	item.CompletedTimestamp = time.Now().UnixMilli()
	return s.shoppingListRepository.SaveItem(ctx, item)
}

func (s *shoppingListService) DeleteItem(ctx context.Context, itemID, userID string) error {
	if _, err := s.getAuthorizedItem(ctx, itemID, userID); err != nil {
		return err
	}
	return s.shoppingListRepository.DeleteItem(ctx, itemID)
}

func (s *shoppingListService) getAuthorizedItem(ctx context.Context, itemID, userID string) (*entities.ShoppingListItem, error) {
	item, err := s.shoppingListRepository.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingListItemNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, userID, item.HouseholdID.String()); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) authorize(ctx context.Context, userID, householdID string) error {
	ok, err := s.householdService.UserHasHousehold(ctx, userID, householdID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotParticipant
	}
	return nil
}

func itemToResponse(item *entities.ShoppingListItem) domain.ShoppingItemResponse {
	return domain.ShoppingItemResponse{
		ID:                 item.ID.String(),
		ProductName:        item.ProductName,
		HouseholdID:        item.HouseholdID.String(),
		AddedBy:            item.AddedBy.String(),
		AddedTimestamp:     item.AddedTimestamp,
		Completed:          item.Completed,
		CompletedTimestamp: item.CompletedTimestamp,
		Note:               item.Note,
		Quantity:           item.Quantity,
	}
}
