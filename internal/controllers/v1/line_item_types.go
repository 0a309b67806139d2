package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type LineItemEditable struct {
	ExpenseID uuid.UUID       `json:"expenseId" example:"d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"`                                                        // ID of the expense the line belongs to
	Name      string          `json:"name" example:"Glossy White 60x60 box" default:""`                                                                // Name of the purchased item
	Qty       decimal.Decimal `json:"qty" example:"40" minimum:"0.00000001" multipleOf:"0.00000001" default:"0"`                                       // Purchased quantity
	UnitPrice decimal.Decimal `json:"unitPrice" example:"1200" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`        // Price per unit
	TileID    *uuid.UUID      `json:"tileId" example:"ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`                                                           // ID of the tile this purchase delivers. Resolved from the match rules when omitted
}

// model returns the database resource for the API representation of the editable fields
func (editable LineItemEditable) model() models.LineItem {
	return models.LineItem{
		ExpenseID: editable.ExpenseID,
		Name:      editable.Name,
		Qty:       editable.Qty,
		UnitPrice: editable.UnitPrice,
		TileID:    editable.TileID,
	}
}

type LineItemLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/line-items/bd3e59ca-ec17-4f91-b3bd-baa24b48b4bb"`  // The line item itself
	Expense string `json:"expense" example:"https://example.com/api/v1/expenses/d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"` // The expense the line item belongs to
}

type LineItem struct {
	models.DefaultModel
	LineItemEditable
	Links LineItemLinks `json:"links"`
}

// newLineItem returns the API v1 representation of the resource
func newLineItem(c *gin.Context, model models.LineItem) LineItem {
	url := c.GetString(string(models.DBContextURL))

	return LineItem{
		DefaultModel: model.DefaultModel,
		LineItemEditable: LineItemEditable{
			ExpenseID: model.ExpenseID,
			Name:      model.Name,
			Qty:       model.Qty,
			UnitPrice: model.UnitPrice,
			TileID:    model.TileID,
		},
		Links: LineItemLinks{
			Self:    fmt.Sprintf("%s/v1/line-items/%s", url, model.ID),
			Expense: fmt.Sprintf("%s/v1/expenses/%s", url, model.ExpenseID),
		},
	}
}

type LineItemListResponse struct {
	Data       []LineItem  `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LineItemCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []LineItemResponse `json:"data"`                                                          // List of created resources
}

func (t *LineItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, LineItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LineItemResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *LineItem `json:"data"`                                                          // The resource
}

type LineItemQueryFilter struct {
	ExpenseID sw_uuid.UUID `form:"expense"`                    // By expense ID
	TileID    sw_uuid.UUID `form:"tile"`                       // By tile ID
	Name      string       `form:"name" filterField:"false"`   // By name
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first line item returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of line items to return. Defaults to 50.
}

func (f LineItemQueryFilter) model() models.LineItem {
	var tileID *uuid.UUID
	if f.TileID != sw_uuid.Nil {
		tileID = &f.TileID.UUID
	}

	return models.LineItem{
		ExpenseID: f.ExpenseID.UUID,
		TileID:    tileID,
	}
}
