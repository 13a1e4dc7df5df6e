package barcode

import (
	"context"
	"log"

	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/pkg/household"
)

type (
	BarcodeService interface {
		GetProductName(ctx context.Context, code, householdID, userID string) (domain.BarcodeNameResponse, error)
		AddBarcode(ctx context.Context, req domain.AddBarcodeRequest, userID string) error
	}

	barcodeService struct {
		barcodeRepository BarcodeRepository
		householdService  household.HouseholdService
		openFoodFacts     *OpenFoodFactsClient
	}
)

func NewBarcodeService(barcodeRepository BarcodeRepository, householdService household.HouseholdService, openFoodFacts *OpenFoodFactsClient) BarcodeService {
	return &barcodeService{
		barcodeRepository: barcodeRepository,
		householdService:  householdService,
		openFoodFacts:     openFoodFacts,
	}
}

// GetProductName resolves a scanned code to the best available name. A name
// this household recorded always wins; otherwise the shared Open Food Facts
// name is used, fetched once and cached for every household.
func (s *barcodeService) GetProductName(ctx context.Context, code, householdID, userID string) (domain.BarcodeNameResponse, error) {
	if code == "" {
		return domain.BarcodeNameResponse{}, domain.ErrBarcodeRequired
	}

	if err := s.authorize(ctx, userID, householdID); err != nil {
		return domain.BarcodeNameResponse{}, err
	}

	names, err := s.barcodeRepository.GetNames(ctx, code)
	if err != nil {
		return domain.BarcodeNameResponse{}, err
	}

	if len(names) == 0 {
		return s.resolveExternal(ctx, code)
	}

	externalName := ""
	for _, name := range names {
		if name.NameSource() == entities.HouseholdSource(householdID) {
			return domain.BarcodeNameResponse{Code: code, Name: name.Name, IsExternal: false}, nil
		}
		if name.NameSource().IsExternal() {
			externalName = name.Name
		}
	}

	if externalName == "" {
		// Covers the cached "checked, found nothing" entry as well.
		return domain.BarcodeNameResponse{}, domain.ErrBarcodeNameNotFound
	}

	return domain.BarcodeNameResponse{Code: code, Name: externalName, IsExternal: true}, nil
}

// AddBarcode records a household's own name for a code without touching the
// names other households or the external lookup contributed.
func (s *barcodeService) AddBarcode(ctx context.Context, req domain.AddBarcodeRequest, userID string) error {
	if req.Code == "" {
		return domain.ErrBarcodeRequired
	}
	if req.Name == "" {
		return domain.ErrBarcodeNameRequired
	}

	if err := s.authorize(ctx, userID, req.HouseholdID); err != nil {
		return err
	}

	return s.barcodeRepository.SaveName(ctx, &entities.BarcodeName{
		Code:   req.Code,
		Source: string(entities.HouseholdSource(req.HouseholdID)),
		Name:   req.Name,
	})
}

func (s *barcodeService) resolveExternal(ctx context.Context, code string) (domain.BarcodeNameResponse, error) {
	productName, err := s.openFoodFacts.FetchProductName(ctx, code)
	if err != nil {
		// Do not cache lookup failures; the next scan retries.
		return domain.BarcodeNameResponse{}, err
	}

	// Cache even an empty result so the external service is asked only once
	// per code.
	entry := &entities.BarcodeName{
		Code:   code,
		Source: string(entities.SourceOpenFoodFacts),
		Name:   productName,
	}
	if err := s.barcodeRepository.SaveName(ctx, entry); err != nil {
		log.Printf("[%s] unable to cache barcode name: %v", code, err)
	}

	if productName == "" {
		return domain.BarcodeNameResponse{}, domain.ErrBarcodeNameNotFound
	}

	return domain.BarcodeNameResponse{Code: code, Name: productName, IsExternal: true}, nil
}

func (s *barcodeService) authorize(ctx context.Context, userID, householdID string) error {
	ok, err := s.householdService.UserHasHousehold(ctx, userID, householdID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotParticipant
	}
	return nil
}
