package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type ZoneEditable struct {
	RoomID      uuid.UUID       `json:"roomId" example:"8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"`                             // ID of the room the zone belongs to. Immutable after creation
	TileID      *uuid.UUID      `json:"tileId" example:"ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`                             // ID of the tile the zone is laid with. May be null while undecided
	Name        string          `json:"name" example:"floor" default:""`                                                   // Name of the zone, e.g. floor or skirting
	RequiredQty decimal.Decimal `json:"requiredQty" example:"14.5" minimum:"0" multipleOf:"0.00000001" default:"0"`        // Quantity of the tile this zone needs
}

// model returns the database resource for the API representation of the editable fields
func (editable ZoneEditable) model() models.Zone {
	return models.Zone{
		RoomID:      editable.RoomID,
		TileID:      editable.TileID,
		Name:        editable.Name,
		RequiredQty: editable.RequiredQty,
	}
}

type ZoneLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/zones/9a04be4d-15a4-4261-9b9b-2a91ba4f4d62"` // The zone itself
	Room string `json:"room" example:"https://example.com/api/v1/rooms/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"` // The room the zone belongs to
}

type Zone struct {
	models.DefaultModel
	ZoneEditable
	Links ZoneLinks `json:"links"`
}

// newZone returns the API v1 representation of the resource
func newZone(c *gin.Context, model models.Zone) Zone {
	url := c.GetString(string(models.DBContextURL))

	return Zone{
		DefaultModel: model.DefaultModel,
		ZoneEditable: ZoneEditable{
			RoomID:      model.RoomID,
			TileID:      model.TileID,
			Name:        model.Name,
			RequiredQty: model.RequiredQty,
		},
		Links: ZoneLinks{
			Self: fmt.Sprintf("%s/v1/zones/%s", url, model.ID),
			Room: fmt.Sprintf("%s/v1/rooms/%s", url, model.RoomID),
		},
	}
}

type ZoneListResponse struct {
	Data       []Zone      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ZoneCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ZoneResponse `json:"data"`                                                          // List of created resources
}

func (t *ZoneCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ZoneResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ZoneResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Zone   `json:"data"`                                                          // The resource
}

type ZoneQueryFilter struct {
	RoomID sw_uuid.UUID `form:"room"`                       // By room ID
	TileID sw_uuid.UUID `form:"tile"`                       // By tile ID
	Name   string       `form:"name" filterField:"false"`   // By name
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first zone returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of zones to return. Defaults to 50.
}

func (f ZoneQueryFilter) model() models.Zone {
	var tileID *uuid.UUID
	if f.TileID != sw_uuid.Nil {
		tileID = &f.TileID.UUID
	}

	return models.Zone{
		RoomID: f.RoomID.UUID,
		TileID: tileID,
	}
}
