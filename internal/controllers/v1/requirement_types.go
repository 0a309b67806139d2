package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

// Requirement is the API representation of a material requirement.
//
// ShortageQty and Status are projected from the stored quantities when
// the response is built. They are never stored and cannot be set.
type Requirement struct {
	models.Timestamps
	RoomID      uuid.UUID       `json:"roomId" example:"8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"` // ID of the room
	TileID      uuid.UUID       `json:"tileId" example:"ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"` // ID of the tile
	RequiredQty decimal.Decimal `json:"requiredQty" example:"30"`                              // Total quantity the room's zones need
	ReceivedQty decimal.Decimal `json:"receivedQty" example:"25.5"`                            // Quantity delivered so far
	ShortageQty decimal.Decimal `json:"shortageQty" example:"4.5"`                             // Projected outstanding quantity, never below zero
	Status      string          `json:"status" example:"shortage" enums:"fulfilled,shortage"`  // Projected fulfillment status

	Links RequirementLinks `json:"links"`
}

type RequirementLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/requirements/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925/ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"` // The requirement itself
	Room string `json:"room" example:"https://example.com/api/v1/rooms/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"`                                             // The room
	Tile string `json:"tile" example:"https://example.com/api/v1/tiles/ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`                                             // The tile
}

// newRequirement returns the API v1 representation of the resource,
// including the projected shortage.
func newRequirement(c *gin.Context, model models.Requirement) Requirement {
	url := c.GetString(string(models.DBContextURL))
	view := models.RequirementLedger.Project(model)

	return Requirement{
		Timestamps:  model.Timestamps,
		RoomID:      model.RoomID,
		TileID:      model.TileID,
		RequiredQty: model.RequiredQty,
		ReceivedQty: model.ReceivedQty,
		ShortageQty: view.ShortageQty,
		Status:      string(view.Status),
		Links: RequirementLinks{
			Self: fmt.Sprintf("%s/v1/requirements/%s/%s", url, model.RoomID, model.TileID),
			Room: fmt.Sprintf("%s/v1/rooms/%s", url, model.RoomID),
			Tile: fmt.Sprintf("%s/v1/tiles/%s", url, model.TileID),
		},
	}
}

type RequirementListResponse struct {
	Data       []Requirement `json:"data"`                                                          // List of resources
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type RequirementResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Requirement `json:"data"`                                                          // The resource
}

type RequirementQueryFilter struct {
	RoomID sw_uuid.UUID `form:"room"`                       // By room ID
	TileID sw_uuid.UUID `form:"tile"`                       // By tile ID
	SiteID sw_uuid.UUID `form:"site" filterField:"false"`   // By site ID (via the room)
	Status string       `form:"status" filterField:"false"` // By projected status, fulfilled or shortage
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first requirement returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of requirements to return. Defaults to 50.
}

func (f RequirementQueryFilter) model() models.Requirement {
	return models.Requirement{
		RoomID: f.RoomID.UUID,
		TileID: f.TileID.UUID,
	}
}
