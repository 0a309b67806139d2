package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type ShortageRequestEditable struct {
	SiteID       uuid.UUID             `json:"siteId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                          // ID of the site
	RoomID       uuid.UUID             `json:"roomId" example:"8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"`                          // ID of the room the material is missing in
	TileID       uuid.UUID             `json:"tileId" example:"ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`                          // ID of the missing tile
	RequestedQty decimal.Decimal       `json:"requestedQty" example:"4.5" minimum:"0.00000001" multipleOf:"0.00000001" default:"0"` // Requested quantity
	Status       models.ShortageStatus `json:"status" example:"approved" enums:"pending,approved,rejected,received" default:"pending"` // Workflow status. New requests always start as pending
	ApprovedBy   *uuid.UUID            `json:"approvedBy" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`                      // Profile that decided on the request
	Note         string                `json:"note" example:"Two boxes broke during transport" default:""`                     // Note about the request
}

// model returns the database resource for the API representation of the editable fields
func (editable ShortageRequestEditable) model() models.ShortageRequest {
	return models.ShortageRequest{
		SiteID:       editable.SiteID,
		RoomID:       editable.RoomID,
		TileID:       editable.TileID,
		RequestedQty: editable.RequestedQty,
		Status:       editable.Status,
		ApprovedBy:   editable.ApprovedBy,
		Note:         editable.Note,
	}
}

type ShortageRequestLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/shortage-requests/7e3f0c82-4f37-4a82-8b7d-5d5442d0ab47"`                         // The shortage request itself
	Room        string `json:"room" example:"https://example.com/api/v1/rooms/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925"`                                     // The room
	Requirement string `json:"requirement" example:"https://example.com/api/v1/requirements/8db7bdbb-b4c0-4cd4-a1f8-b1a8fc443925/ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"` // The requirement the receipt credits
}

type ShortageRequest struct {
	models.DefaultModel
	ShortageRequestEditable
	Links ShortageRequestLinks `json:"links"`
}

// newShortageRequest returns the API v1 representation of the resource
func newShortageRequest(c *gin.Context, model models.ShortageRequest) ShortageRequest {
	url := c.GetString(string(models.DBContextURL))

	return ShortageRequest{
		DefaultModel: model.DefaultModel,
		ShortageRequestEditable: ShortageRequestEditable{
			SiteID:       model.SiteID,
			RoomID:       model.RoomID,
			TileID:       model.TileID,
			RequestedQty: model.RequestedQty,
			Status:       model.Status,
			ApprovedBy:   model.ApprovedBy,
			Note:         model.Note,
		},
		Links: ShortageRequestLinks{
			Self:        fmt.Sprintf("%s/v1/shortage-requests/%s", url, model.ID),
			Room:        fmt.Sprintf("%s/v1/rooms/%s", url, model.RoomID),
			Requirement: fmt.Sprintf("%s/v1/requirements/%s/%s", url, model.RoomID, model.TileID),
		},
	}
}

type ShortageRequestListResponse struct {
	Data       []ShortageRequest `json:"data"`                                                          // List of resources
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type ShortageRequestCreateResponse struct {
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ShortageRequestResponse `json:"data"`                                                          // List of created resources
}

func (t *ShortageRequestCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ShortageRequestResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ShortageRequestResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *ShortageRequest `json:"data"`                                                          // The resource
}

type ShortageRequestQueryFilter struct {
	SiteID sw_uuid.UUID `form:"site"`                       // By site ID
	RoomID sw_uuid.UUID `form:"room"`                       // By room ID
	TileID sw_uuid.UUID `form:"tile"`                       // By tile ID
	Status string       `form:"status"`                     // By workflow status
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first shortage request returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of shortage requests to return. Defaults to 50.
}

func (f ShortageRequestQueryFilter) model() models.ShortageRequest {
	return models.ShortageRequest{
		SiteID: f.SiteID.UUID,
		RoomID: f.RoomID.UUID,
		TileID: f.TileID.UUID,
		Status: models.ShortageStatus(f.Status),
	}
}
