// Package inventoryrepo persists stock records with GORM.
package inventoryrepo

import (
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO is the database representation of a stock record.
type RecordDTO struct {
	ProductID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	CurrentStock     int
	ReorderThreshold int
}

// TableName overrides GORM's default naming to use "inventory_records".
func (RecordDTO) TableName() string {
	return "inventory_records"
}

func fromDomain(record *inventory.Record) RecordDTO {
	return RecordDTO{
		ProductID:        record.ProductID().Bytes(),
		Name:             record.Name(),
		CurrentStock:     record.CurrentStock(),
		ReorderThreshold: record.ReorderThreshold(),
	}
}

func toDomain(dto RecordDTO) (*inventory.Record, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(productID, dto.Name, dto.CurrentStock, dto.ReorderThreshold)
}
