package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sitewise/backend/internal/models"
)

type SiteEditable struct {
	Name    string `json:"name" example:"Hillside Residence" default:""`    // Name of the site
	Address string `json:"address" example:"12 Hillside Road" default:""`   // Address of the site
	Note    string `json:"note" example:"Two floors, handover in May" default:""` // Note about the site
}

// model returns the database resource for the API representation of the editable fields
func (editable SiteEditable) model() models.Site {
	return models.Site{
		Name:    editable.Name,
		Address: editable.Address,
		Note:    editable.Note,
	}
}

type SiteLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/sites/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`             // The site itself
	Rooms    string `json:"rooms" example:"https://example.com/api/v1/rooms?site=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`       // Rooms of the site
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?site=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Expenses of the site
}

type Site struct {
	models.DefaultModel
	SiteEditable
	Links SiteLinks `json:"links"`
}

// newSite returns the API v1 representation of the resource
func newSite(c *gin.Context, model models.Site) Site {
	url := c.GetString(string(models.DBContextURL))

	return Site{
		DefaultModel: model.DefaultModel,
		SiteEditable: SiteEditable{
			Name:    model.Name,
			Address: model.Address,
			Note:    model.Note,
		},
		Links: SiteLinks{
			Self:     fmt.Sprintf("%s/v1/sites/%s", url, model.ID),
			Rooms:    fmt.Sprintf("%s/v1/rooms?site=%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?site=%s", url, model.ID),
		},
	}
}

type SiteListResponse struct {
	Data       []Site      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SiteCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SiteResponse `json:"data"`                                                          // List of created resources
}

func (t *SiteCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, SiteResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SiteResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Site   `json:"data"`                                                          // The resource
}

type SiteQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By the note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first site returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of sites to return. Defaults to 50.
}
