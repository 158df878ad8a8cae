// Package orderrepo persists order aggregates with GORM. Orders map to an
// orders row plus one order_items row per line item; both are written in the
// surrounding unit of work's transaction.
package orderrepo

import (
	"time"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Customer             string
	Status               int `gorm:"index"`
	Total                int
	DeliveryAddress      string
	DeliveryInstructions string
	AssignedAgent        string `gorm:"index"`
	RejectionReason      string
	PaymentMethod        string
	PaymentStatus        string
	CreatedAt            time.Time
	Items                []ItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line item of an order. Position preserves the submission
// order of the lines.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Quantity  int
	UnitPrice int
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		Customer:             aggregate.Customer(),
		Status:               int(aggregate.Status()),
		Total:                aggregate.Total(),
		DeliveryAddress:      aggregate.DeliveryAddress(),
		DeliveryInstructions: aggregate.DeliveryInstructions(),
		AssignedAgent:        aggregate.AssignedAgent(),
		RejectionReason:      aggregate.RejectionReason(),
		PaymentMethod:        aggregate.PaymentMethod(),
		PaymentStatus:        aggregate.PaymentStatus(),
		CreatedAt:            aggregate.CreatedAt(),
		Items:                itemDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Customer,
		items,
		order.Status(dto.Status),
		dto.Total,
		dto.DeliveryAddress,
		dto.DeliveryInstructions,
		dto.AssignedAgent,
		dto.RejectionReason,
		dto.PaymentMethod,
		dto.PaymentStatus,
		dto.CreatedAt,
	)
}
