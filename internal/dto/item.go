package dto

import "github.com/SscSPs/commission_app/internal/core/domain"

// CreateItemRequest defines a new item line.
type CreateItemRequest struct {
	Type              domain.ItemType `json:"type" binding:"required,oneof=Stock External"`
	ArticleID         *string         `json:"articleID,omitempty" binding:"required_if=Type Stock"`
	CustomName        string          `json:"customName" binding:"required_if=Type External,max=200"`
	ExternalReference string          `json:"externalReference" binding:"max=100"`
	Amount            int             `json:"amount" binding:"required,min=1"`
	Notes             string          `json:"notes"`
	AttachmentData    *string         `json:"attachmentData,omitempty"`
}

// UpdateItemRequest carries optional item edits; nil fields stay unchanged.
type UpdateItemRequest struct {
	Amount            *int    `json:"amount,omitempty" binding:"omitempty,min=1"`
	CustomName        *string `json:"customName,omitempty" binding:"omitempty,max=200"`
	ExternalReference *string `json:"externalReference,omitempty" binding:"omitempty,max=100"`
	Notes             *string `json:"notes,omitempty"`
	AttachmentData    *string `json:"attachmentData,omitempty"`
}

// ItemResponse defines data returned for an item line.
type ItemResponse struct {
	ItemID            string          `json:"itemID"`
	CommissionID      string          `json:"commissionID"`
	Type              domain.ItemType `json:"type"`
	ArticleID         *string         `json:"articleID,omitempty"`
	CustomName        string          `json:"customName,omitempty"`
	ExternalReference string          `json:"externalReference,omitempty"`
	Amount            int             `json:"amount"`
	IsPicked          bool            `json:"isPicked"`
	IsBackorder       bool            `json:"isBackorder"`
	Notes             string          `json:"notes,omitempty"`
	HasAttachment     bool            `json:"hasAttachment"`
}

// ToItemResponse converts domain.CommissionItem to DTO.
func ToItemResponse(i *domain.CommissionItem) ItemResponse {
	return ItemResponse{
		ItemID:            i.ItemID,
		CommissionID:      i.CommissionID,
		Type:              i.Type,
		ArticleID:         i.ArticleID,
		CustomName:        i.CustomName,
		ExternalReference: i.ExternalReference,
		Amount:            i.Amount,
		IsPicked:          i.IsPicked,
		IsBackorder:       i.IsBackorder,
		Notes:             i.Notes,
		HasAttachment:     i.AttachmentData != nil && *i.AttachmentData != "",
	}
}

// ToItemResponses converts a slice of items.
func ToItemResponses(items []domain.CommissionItem) []ItemResponse {
	list := make([]ItemResponse, len(items))
	for i := range items {
		list[i] = ToItemResponse(&items[i])
	}
	return list
}

// ToggleResponse is returned by pick and backorder toggles.
type ToggleResponse struct {
	Commission CommissionResponse `json:"commission"`
	Item       ItemResponse       `json:"item"`
}
