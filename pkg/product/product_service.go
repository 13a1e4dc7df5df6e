package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/internal/utils/storage"
	"github.com/pantry-guardian/backend/pkg/household"
	"gorm.io/gorm"
)

type (
	// ReminderScheduler schedules an expiry reminder for the user who added
	// a product. Implemented by the notification service; nil disables
	// scheduling.
	ReminderScheduler interface {
		ScheduleProductReminder(ctx context.Context, userID string, product *entities.Product)
	}

	ProductService interface {
		GetHouseholdProducts(ctx context.Context, householdID, userID string) ([]domain.ProductResponse, error)
		AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest, userID string) error
		MarkAsWasted(ctx context.Context, productID, userID string) error
		DeleteProduct(ctx context.Context, productID, userID string) error
		UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) (string, error)
	}

	productService struct {
		productRepository ProductRepository
		householdService  household.HouseholdService
		s3                storage.AwsS3
		reminders         ReminderScheduler
	}
)

func NewProductService(productRepository ProductRepository, householdService household.HouseholdService, s3 storage.AwsS3, reminders ReminderScheduler) ProductService {
	return &productService{
		productRepository: productRepository,
		householdService:  householdService,
		s3:                s3,
		reminders:         reminders,
	}
}

func (s *productService) GetHouseholdProducts(ctx context.Context, householdID, userID string) ([]domain.ProductResponse, error) {
	if err := s.authorize(ctx, userID, householdID); err != nil {
		return nil, err
	}

	products, err := s.productRepository.GetHouseholdProducts(ctx, householdID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, productToResponse(product))
	}
	return response, nil
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error) {
	if err := s.authorize(ctx, userID, req.HouseholdID); err != nil {
		return domain.ProductResponse{}, err
	}

	householdUUID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	expires, err := parseExpirationDate(req.ExpirationDate)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	product := &entities.Product{
		ID:          uuid.New(),
		Barcode:     req.Barcode,
		Category:    req.Category,
		Created:     time.Now().UnixMilli(),
		Expires:     expires,
		Location:    req.Location,
		ProductName: req.ProductName,
		HouseholdID: householdUUID,
		Note:        req.Note,
	}

	if err := s.productRepository.SaveProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	if s.reminders != nil && product.DoesExpire() {
		s.reminders.ScheduleProductReminder(ctx, userID, product)
	}

	return productToResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest, userID string) error {
	product, err := s.getAuthorizedProduct(ctx, productID, userID)
	if err != nil {
		return err
	}

	if req.ProductName != "" {
		product.ProductName = req.ProductName
	}
	if req.Barcode != "" {
		product.Barcode = req.Barcode
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Location != "" {
		product.Location = req.Location
	}
	if req.Note != "" {
		product.Note = req.Note
	}
	if req.ExpirationDate != "" {
		expires, err := parseExpirationDate(req.ExpirationDate)
		if err != nil {
			return err
		}
		product.Expires = expires
	}

	return s.productRepository.SaveProduct(ctx, product)
}

func (s *productService) MarkAsWasted(ctx context.Context, productID, userID string) error {
	product, err := s.getAuthorizedProduct(ctx, productID, userID)
	if err != nil {
		return err
	}

	if product.Wasted {
		return nil
	}

	product.Wasted = true
	product.WastedTimestamp = time.Now().UnixMilli()
	return s.productRepository.SaveProduct(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, productID, userID string) error {
	product, err := s.getAuthorizedProduct(ctx, productID, userID)
	if err != nil {
		return err
	}

	// Release the stored image before the row disappears.
	if product.ImageURL != "" && s.s3 != nil {
		if objectKey := s.s3.GetObjectKeyFromLink(product.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.productRepository.DeleteProduct(ctx, productID)
}

func (s *productService) UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) (string, error) {
	product, err := s.getAuthorizedProduct(ctx, req.ProductID, userID)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("product-%s", product.ID.String())
	var objectKey string
	var uploadErr error

	if product.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
	}

	if uploadErr != nil {
		return "", uploadErr
	}

	product.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.productRepository.SaveProduct(ctx, product); err != nil {
		return "", err
	}

	return product.ImageURL, nil
}

func (s *productService) getAuthorizedProduct(ctx context.Context, productID, userID string) (*entities.Product, error) {
	product, err := s.productRepository.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, userID, product.HouseholdID.String()); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) authorize(ctx context.Context, userID, householdID string) error {
	ok, err := s.householdService.UserHasHousehold(ctx, userID, householdID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotParticipant
	}
	return nil
}

// parseExpirationDate turns an optional YYYY-MM-DD date into epoch millis,
// with 0 meaning the product does not expire.
func parseExpirationDate(date string) (int64, error) {
	if date == "" {
		return 0, nil
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, domain.ErrInvalidExpirationDate
	}
	return parsed.UnixMilli(), nil
}

func productToResponse(p *entities.Product) domain.ProductResponse {
	return domain.ProductResponse{
		ID:              p.ID.String(),
		Barcode:         p.Barcode,
		Category:        p.Category,
		Created:         p.Created,
		Expires:         p.Expires,
		DoesExpire:      p.DoesExpire(),
		IsExpired:       p.IsExpired(),
		Location:        p.Location,
		ProductName:     p.ProductName,
		HouseholdID:     p.HouseholdID.String(),
		Wasted:          p.Wasted,
		WastedTimestamp: p.WastedTimestamp,
		Note:            p.Note,
		ImageURL:        p.ImageURL,
	}
}
