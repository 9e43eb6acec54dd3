// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The cost snapshot is embedded in the orders table; stages and document
// references live in child tables keyed by order id.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     string     `gorm:"uniqueIndex"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index"`
	AgentID         *uuid.UUID `gorm:"type:uuid;index"`
	Origin          string
	Destination     string
	ServiceType     string
	Status          string          `gorm:"index"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric"`
	Currency        string
	RawPriceAmount  decimal.Decimal `gorm:"type:numeric"`
	MarginPercent   decimal.Decimal `gorm:"type:numeric"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric"`
	Version         int
	Stages          []StageDTO    `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Documents       []DocumentDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StageDTO represents one workflow stage row of an order.
type StageDTO struct {
	OrderID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence             int       `gorm:"primaryKey"`
	Name                 string
	RequiresConfirmation bool
	AdvancesTo           string
	Status               string
	CompletedAt          *time.Time
}

// TableName specifies the database table name for order stages.
func (StageDTO) TableName() string {
	return "order_stages"
}

// DocumentDTO represents a reference to an externally stored document.
type DocumentDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for order document references.
func (DocumentDTO) TableName() string {
	return "order_documents"
}

// OrderSequenceDTO backs the per-year order number counter.
type OrderSequenceDTO struct {
	Year      int `gorm:"primaryKey"`
	LastValue int
}

// TableName specifies the database table name for order number sequences.
func (OrderSequenceDTO) TableName() string {
	return "order_sequences"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	stages := aggregate.Stages()
	stageDTOs := make([]StageDTO, 0, len(stages))
	for _, stage := range stages {
		advancesTo := ""
		if stage.AdvancesTo() != order.StatusUnknown {
			advancesTo = stage.AdvancesTo().String()
		}

		stageDTOs = append(stageDTOs, StageDTO{
			OrderID:              aggregate.ID().Bytes(),
			Sequence:             stage.Sequence(),
			Name:                 stage.Name(),
			RequiresConfirmation: stage.RequiresClientConfirmation(),
			AdvancesTo:           advancesTo,
			Status:               stage.Status().String(),
			CompletedAt:          stage.CompletedAt(),
		})
	}

	documentIDs := aggregate.DocumentIDs()
	documentDTOs := make([]DocumentDTO, 0, len(documentIDs))
	for _, documentID := range documentIDs {
		documentDTOs = append(documentDTOs, DocumentDTO{
			OrderID:    aggregate.ID().Bytes(),
			DocumentID: documentID.Bytes(),
		})
	}

	cost := aggregate.Cost()
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		ClientID:        aggregate.ClientID().Bytes(),
		AgentID:         agentID,
		Origin:          aggregate.Origin(),
		Destination:     aggregate.Destination(),
		ServiceType:     aggregate.ServiceType().String(),
		Status:          aggregate.Status().String(),
		TotalAmount:     cost.Total().Amount(),
		Currency:        cost.Total().Currency(),
		RawPriceAmount:  cost.RawPrice().Amount(),
		MarginPercent:   cost.MarginPercent(),
		DiscountPercent: cost.DiscountPercent(),
		Version:         aggregate.Version(),
		Stages:          stageDTOs,
		Documents:       documentDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its cost snapshot and stage
// sequence using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	serviceType, err := kernel.ParseServiceType(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	cost, err := costToDomain(dto)
	if err != nil {
		return nil, err
	}

	stages, err := stagesToDomain(dto.Stages)
	if err != nil {
		return nil, err
	}

	documentIDs := make([]kernel.UUID, 0, len(dto.Documents))
	for _, doc := range dto.Documents {
		documentID, docErr := kernel.UUIDFromBytes(doc.DocumentID[:])
		if docErr != nil {
			return nil, docErr
		}
		documentIDs = append(documentIDs, documentID)
	}

	return order.RestoreOrder(id, dto.OrderNumber, clientID, agentID,
		dto.Origin, dto.Destination, serviceType, status, cost, stages, documentIDs, dto.Version)
}

func costToDomain(dto OrderDTO) (order.Cost, error) {
	total, err := kernel.NewMoney(dto.TotalAmount, dto.Currency)
	if err != nil {
		return order.Cost{}, err
	}

	rawPrice, err := kernel.NewMoney(dto.RawPriceAmount, dto.Currency)
	if err != nil {
		return order.Cost{}, err
	}

	return order.NewCost(total, rawPrice, dto.MarginPercent, dto.DiscountPercent)
}

func stagesToDomain(dtos []StageDTO) ([]order.Stage, error) {
	stages := make([]order.Stage, 0, len(dtos))
	for _, dto := range dtos {
		advancesTo := order.StatusUnknown
		if dto.AdvancesTo != "" {
			parsed, err := order.ParseStatus(dto.AdvancesTo)
			if err != nil {
				return nil, err
			}
			advancesTo = parsed
		}

		status, err := order.ParseStageStatus(dto.Status)
		if err != nil {
			return nil, err
		}

		stage, err := order.RestoreStage(dto.Name, dto.Sequence,
			dto.RequiresConfirmation, advancesTo, status, dto.CompletedAt)
		if err != nil {
			return nil, err
		}

		stages = append(stages, stage)
	}

	return stages, nil
}
