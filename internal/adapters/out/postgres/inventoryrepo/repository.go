package inventoryrepo

import (
	"context"
	"errors"

	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add saves a new stock record.
func (r *GormInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing stock record.
func (r *GormInventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("product_id = ?", dto.ProductID).
		Select("*").
		Omit("product_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", record.ProductID().String())
	}

	return nil
}

// Get retrieves the stock record for a product.
func (r *GormInventoryRepository) Get(ctx context.Context, productID kernel.UUID) (*inventory.Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves and locks the records for the given products.
// Rows are locked in ascending product-ID order so two transactions competing
// for overlapping product sets always acquire locks in the same order.
func (r *GormInventoryRepository) GetForUpdate(ctx context.Context, productIDs []kernel.UUID) ([]*inventory.Record, error) {
	if len(productIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("product IDs")
	}

	rawIDs := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("product_id").
		Find(&dtos, "product_id IN ?", rawIDs).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAll retrieves every stock record, sorted by product name.
func (r *GormInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Record, error) {
	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllLowStock retrieves records at or below their reorder threshold.
func (r *GormInventoryRepository) GetAllLowStock(ctx context.Context) ([]*inventory.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&dtos, "current_stock <= reorder_threshold").Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []RecordDTO) ([]*inventory.Record, error) {
	records := make([]*inventory.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
