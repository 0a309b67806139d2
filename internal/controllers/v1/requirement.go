package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

func RegisterRequirementRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRequirements)
		r.GET("", GetRequirements)
	}
	{
		r.OPTIONS("/:roomId/:tileId", OptionsRequirementDetail)
		r.GET("/:roomId/:tileId", GetRequirement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Requirements
// @Success		204
// @Router			/v1/requirements [options]
func OptionsRequirements(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Requirements
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			roomId	path		string	true	"ID of the room"
// @Param			tileId	path		string	true	"ID of the tile"
// @Router			/v1/requirements/{roomId}/{tileId} [options]
func OptionsRequirementDetail(c *gin.Context) {
	var uri URIRequirement
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Requirement{}, "room_id = ? AND tile_id = ?", uri.RoomID.UUID, uri.TileID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get requirements
// @Description	Returns a list of material requirements with the projected shortage. Requirements are maintained by the backend; they cannot be written directly.
// @Tags			Requirements
// @Produce		json
// @Success		200	{object}	RequirementListResponse
// @Failure		400	{object}	RequirementListResponse
// @Failure		500	{object}	RequirementListResponse
// @Router			/v1/requirements [get]
// @Param			room	query	string	false	"Filter by room ID"
// @Param			tile	query	string	false	"Filter by tile ID"
// @Param			site	query	string	false	"Filter by site ID"
// @Param			status	query	string	false	"Filter by projected status, fulfilled or shortage"
// @Param			offset	query	uint	false	"The offset of the first requirement returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of requirements to return. Defaults to 50."
func GetRequirements(c *gin.Context) {
	var filter RequirementQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RequirementListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("requirements.created_at ASC").
		Where(&where, queryFields...)

	if filter.SiteID != sw_uuid.Nil {
		q = q.
			Joins("JOIN rooms ON rooms.id = requirements.room_id").
			Where("rooms.site_id = ?", filter.SiteID.UUID)
	}

	var requirements []models.Requirement
	err := q.Find(&requirements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RequirementListResponse{
			Error: &s,
		})
		return
	}

	// The status is projected, not stored, so the filter and the
	// pagination are applied after projecting. Quantity comparisons stay
	// on decimals in Go.
	data := make([]Requirement, 0, len(requirements))
	for _, requirement := range requirements {
		apiResource := newRequirement(c, requirement)
		if filter.Status != "" && apiResource.Status != filter.Status {
			continue
		}

		data = append(data, apiResource)
	}

	total := int64(len(data))

	if int(filter.Offset) < len(data) {
		data = data[filter.Offset:]
	} else {
		data = []Requirement{}
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && len(data) > limit {
		data = data[:limit]
	}

	c.JSON(http.StatusOK, RequirementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get requirement
// @Description	Returns the material requirement for one room and tile with the projected shortage
// @Tags			Requirements
// @Produce		json
// @Success		200		{object}	RequirementResponse
// @Failure		400		{object}	RequirementResponse
// @Failure		404		{object}	RequirementResponse
// @Failure		500		{object}	RequirementResponse
// @Param			roomId	path		string	true	"ID of the room"
// @Param			tileId	path		string	true	"ID of the tile"
// @Router			/v1/requirements/{roomId}/{tileId} [get]
func GetRequirement(c *gin.Context) {
	var uri URIRequirement
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &e,
		})
		return
	}

	var requirement models.Requirement
	err = models.DB.First(&requirement, "room_id = ? AND tile_id = ?", uri.RoomID.UUID, uri.TileID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementResponse{
			Error: &e,
		})
		return
	}

	apiResource := newRequirement(c, requirement)
	c.JSON(http.StatusOK, RequirementResponse{Data: &apiResource})
}
