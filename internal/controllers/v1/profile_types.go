package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sitewise/backend/internal/models"
)

type ProfileEditable struct {
	Name string             `json:"name" example:"Ramesh" default:""`        // Name of the profile
	Role models.ProfileRole `json:"role" example:"manager" default:"worker"` // Role of the profile, one of owner, manager, worker
}

// model returns the database resource for the API representation of the editable fields
func (editable ProfileEditable) model() models.Profile {
	return models.Profile{
		Name: editable.Name,
		Role: editable.Role,
	}
}

type ProfileLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/profiles/af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"` // The profile itself
}

type Profile struct {
	models.DefaultModel
	ProfileEditable
	Links ProfileLinks `json:"links"`
}

// newProfile returns the API v1 representation of the resource
func newProfile(c *gin.Context, model models.Profile) Profile {
	url := c.GetString(string(models.DBContextURL))

	return Profile{
		DefaultModel: model.DefaultModel,
		ProfileEditable: ProfileEditable{
			Name: model.Name,
			Role: model.Role,
		},
		Links: ProfileLinks{
			Self: fmt.Sprintf("%s/v1/profiles/%s", url, model.ID),
		},
	}
}

type ProfileListResponse struct {
	Data       []Profile   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProfileCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ProfileResponse `json:"data"`                                                          // List of created resources
}

func (t *ProfileCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ProfileResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProfileResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Profile `json:"data"`                                                          // The resource
}

type ProfileQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Role   string `form:"role"`                       // By role
	Search string `form:"search" filterField:"false"` // By string in name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first profile returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of profiles to return. Defaults to 50.
}

func (f ProfileQueryFilter) model() models.Profile {
	return models.Profile{
		Role: models.ProfileRole(f.Role),
	}
}
