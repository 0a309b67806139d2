package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sitewise/backend/internal/models"
)

type TileEditable struct {
	Name string `json:"name" example:"Glossy White 60x60" default:""` // Name of the tile, unique
	Size string `json:"size" example:"60x60" default:""`              // Size label
	Unit string `json:"unit" example:"box" default:""`                // Counting unit, e.g. box or sqm
	Note string `json:"note" example:"Bathroom walls only" default:""` // Note about the tile
}

// model returns the database resource for the API representation of the editable fields
func (editable TileEditable) model() models.Tile {
	return models.Tile{
		Name: editable.Name,
		Size: editable.Size,
		Unit: editable.Unit,
		Note: editable.Note,
	}
}

type TileLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/tiles/ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`                      // The tile itself
	Requirements string `json:"requirements" example:"https://example.com/api/v1/requirements?tile=ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`  // Requirements referencing the tile
	MatchRules   string `json:"matchRules" example:"https://example.com/api/v1/tile-match-rules?tile=ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"` // Match rules resolving to the tile
}

type Tile struct {
	models.DefaultModel
	TileEditable
	Links TileLinks `json:"links"`
}

// newTile returns the API v1 representation of the resource
func newTile(c *gin.Context, model models.Tile) Tile {
	url := c.GetString(string(models.DBContextURL))

	return Tile{
		DefaultModel: model.DefaultModel,
		TileEditable: TileEditable{
			Name: model.Name,
			Size: model.Size,
			Unit: model.Unit,
			Note: model.Note,
		},
		Links: TileLinks{
			Self:         fmt.Sprintf("%s/v1/tiles/%s", url, model.ID),
			Requirements: fmt.Sprintf("%s/v1/requirements?tile=%s", url, model.ID),
			MatchRules:   fmt.Sprintf("%s/v1/tile-match-rules?tile=%s", url, model.ID),
		},
	}
}

type TileListResponse struct {
	Data       []Tile      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TileCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TileResponse `json:"data"`                                                          // List of created resources
}

func (t *TileCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TileResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TileResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Tile   `json:"data"`                                                          // The resource
}

type TileQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Size   string `form:"size"`                       // By size label
	Unit   string `form:"unit"`                       // By unit
	Note   string `form:"note" filterField:"false"`   // By the note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first tile returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of tiles to return. Defaults to 50.
}

func (f TileQueryFilter) model() models.Tile {
	return models.Tile{
		Size: f.Size,
		Unit: f.Unit,
	}
}
