package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type TileMatchRuleEditable struct {
	Priority uint      `json:"priority" example:"1" default:"0"`                      // The priority of the match rule. Lower number means higher priority
	Match    string    `json:"match" example:"Glossy White*" default:""`              // The glob pattern matched against line item names
	TileID   uuid.UUID `json:"tileId" example:"ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"` // The tile a matching line item resolves to
}

// model returns the database resource for the API representation of the editable fields
func (editable TileMatchRuleEditable) model() models.TileMatchRule {
	return models.TileMatchRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		TileID:   editable.TileID,
	}
}

type TileMatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/tile-match-rules/5bb47a6f-ecde-4860-b8b0-0ce442b9a6bb"` // The match rule itself
	Tile string `json:"tile" example:"https://example.com/api/v1/tiles/ec0ff9a4-a3c6-4e28-8e01-6ee0fba67e2f"`            // The tile the rule resolves to
}

type TileMatchRule struct {
	models.DefaultModel
	TileMatchRuleEditable
	Links TileMatchRuleLinks `json:"links"`
}

// newTileMatchRule returns the API v1 representation of the resource
func newTileMatchRule(c *gin.Context, model models.TileMatchRule) TileMatchRule {
	url := c.GetString(string(models.DBContextURL))

	return TileMatchRule{
		DefaultModel: model.DefaultModel,
		TileMatchRuleEditable: TileMatchRuleEditable{
			Priority: model.Priority,
			Match:    model.Match,
			TileID:   model.TileID,
		},
		Links: TileMatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/tile-match-rules/%s", url, model.ID),
			Tile: fmt.Sprintf("%s/v1/tiles/%s", url, model.TileID),
		},
	}
}

type TileMatchRuleListResponse struct {
	Data       []TileMatchRule `json:"data"`                                                          // List of resources
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type TileMatchRuleCreateResponse struct {
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TileMatchRuleResponse `json:"data"`                                                          // List of created resources
}

func (t *TileMatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TileMatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TileMatchRuleResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *TileMatchRule `json:"data"`                                                          // The resource
}

type TileMatchRuleQueryFilter struct {
	Priority uint         `form:"priority"`                   // By priority
	Match    string       `form:"match" filterField:"false"`  // By match pattern
	TileID   sw_uuid.UUID `form:"tile"`                       // By tile ID
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

func (f TileMatchRuleQueryFilter) model() models.TileMatchRule {
	return models.TileMatchRule{
		Priority: f.Priority,
		TileID:   f.TileID.UUID,
	}
}
