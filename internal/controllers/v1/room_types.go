package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type RoomEditable struct {
	SiteID uuid.UUID       `json:"siteId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                          // ID of the site the room belongs to
	Name   string          `json:"name" example:"Master Bedroom" default:""`                                       // Name of the room, unique per site
	Length decimal.Decimal `json:"length" example:"4.5" minimum:"0" multipleOf:"0.00000001" default:"0"`           // Length in meters
	Width  decimal.Decimal `json:"width" example:"3.2" minimum:"0" multipleOf:"0.00000001" default:"0"`            // Width in meters
	Height decimal.Decimal `json:"height" example:"2.8" minimum:"0" multipleOf:"0.00000001" default:"0"`           // Height in meters
}

// model returns the database resource for the API representation of the editable fields
func (editable RoomEditable) model() models.Room {
	return models.Room{
		SiteID: editable.SiteID,
		Name:   editable.Name,
		Length: editable.Length,
		Width:  editable.Width,
		Height: editable.Height,
	}
}

type RoomLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/rooms/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"`                  // The room itself
	Site         string `json:"site" example:"https://example.com/api/v1/sites/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // The site the room belongs to
	Zones        string `json:"zones" example:"https://example.com/api/v1/zones?room=8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"`            // Zones of the room
	Requirements string `json:"requirements" example:"https://example.com/api/v1/rooms/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925/requirements"` // Material requirements of the room
}

type Room struct {
	models.DefaultModel
	RoomEditable
	Links RoomLinks `json:"links"`
}

// newRoom returns the API v1 representation of the resource
func newRoom(c *gin.Context, model models.Room) Room {
	url := c.GetString(string(models.DBContextURL))

	return Room{
		DefaultModel: model.DefaultModel,
		RoomEditable: RoomEditable{
			SiteID: model.SiteID,
			Name:   model.Name,
			Length: model.Length,
			Width:  model.Width,
			Height: model.Height,
		},
		Links: RoomLinks{
			Self:         fmt.Sprintf("%s/v1/rooms/%s", url, model.ID),
			Site:         fmt.Sprintf("%s/v1/sites/%s", url, model.SiteID),
			Zones:        fmt.Sprintf("%s/v1/zones?room=%s", url, model.ID),
			Requirements: fmt.Sprintf("%s/v1/rooms/%s/requirements", url, model.ID),
		},
	}
}

type RoomListResponse struct {
	Data       []Room      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RoomCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RoomResponse `json:"data"`                                                          // List of created resources
}

func (t *RoomCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, RoomResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RoomResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Room   `json:"data"`                                                          // The resource
}

type RoomQueryFilter struct {
	SiteID sw_uuid.UUID `form:"site"`                       // By site ID
	Name   string       `form:"name" filterField:"false"`   // By name
	Search string       `form:"search" filterField:"false"` // By string in name
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first room returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of rooms to return. Defaults to 50.
}

func (f RoomQueryFilter) model() models.Room {
	return models.Room{
		SiteID: f.SiteID.UUID,
	}
}
