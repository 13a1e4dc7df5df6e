package barcode

import (
	"context"

	"github.com/pantry-guardian/backend/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	BarcodeRepository interface {
		GetNames(ctx context.Context, code string) ([]entities.BarcodeName, error)
		SaveName(ctx context.Context, name *entities.BarcodeName) error
	}

	barcodeRepository struct {
		db *gorm.DB
	}
)

func NewBarcodeRepository(db *gorm.DB) BarcodeRepository {
	return &barcodeRepository{db: db}
}

func (r *barcodeRepository) GetNames(ctx context.Context, code string) ([]entities.BarcodeName, error) {
	var names []entities.BarcodeName
	if err := r.db.WithContext(ctx).Where("code = ?", code).Find(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// SaveName upserts one (code, source) pair; a source overwrites only its own
// previous name, never another source's.
func (r *barcodeRepository) SaveName(ctx context.Context, name *entities.BarcodeName) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}, {Name: "source"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(name).Error
}
