package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
)

func RegisterZoneRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsZones)
		r.GET("", GetZones)
		r.POST("", CreateZones)
	}
	{
		r.OPTIONS("/:id", OptionsZoneDetail)
		r.GET("/:id", GetZone)
		r.PATCH("/:id", UpdateZone)
		r.DELETE("/:id", DeleteZone)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Zones
// @Success		204
// @Router			/v1/zones [options]
func OptionsZones(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Zones
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/zones/{id} [options]
func OptionsZoneDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Zone{})
}

// @Summary		Create zones
// @Description	Creates new zones. Zones with a tile update the room's material requirement in the same transaction.
// @Tags			Zones
// @Produce		json
// @Success		201		{object}	ZoneCreateResponse
// @Failure		400		{object}	ZoneCreateResponse
// @Failure		404		{object}	ZoneCreateResponse
// @Failure		500		{object}	ZoneCreateResponse
// @Param			zones	body		[]ZoneEditable	true	"Zones"
// @Router			/v1/zones [post]
func CreateZones(c *gin.Context) {
	var zones []ZoneEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &zones)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ZoneCreateResponse{}

	for _, create := range zones {
		zone := create.model()

		// The zone write and the requirement recomputation commit or
		// fail together
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&zone).Error
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newZone(c, zone)
		r.Data = append(r.Data, ZoneResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get zones
// @Description	Returns a list of zones
// @Tags			Zones
// @Produce		json
// @Success		200	{object}	ZoneListResponse
// @Failure		400	{object}	ZoneListResponse
// @Failure		500	{object}	ZoneListResponse
// @Router			/v1/zones [get]
// @Param			room	query	string	false	"Filter by room ID"
// @Param			tile	query	string	false	"Filter by tile ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first zone returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of zones to return. Defaults to 50."
func GetZones(c *gin.Context) {
	var filter ZoneQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ZoneListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("zones.created_at ASC").
		Where(&where, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 zones and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var zones []models.Zone
	err := q.Find(&zones).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ZoneListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Zone, 0, len(zones))
	for _, zone := range zones {
		data = append(data, newZone(c, zone))
	}

	c.JSON(http.StatusOK, ZoneListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get zone
// @Description	Returns a specific zone
// @Tags			Zones
// @Produce		json
// @Success		200	{object}	ZoneResponse
// @Failure		400	{object}	ZoneResponse
// @Failure		404	{object}	ZoneResponse
// @Failure		500	{object}	ZoneResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/zones/{id} [get]
func GetZone(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	var zone models.Zone
	err = models.DB.First(&zone, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	apiResource := newZone(c, zone)
	c.JSON(http.StatusOK, ZoneResponse{Data: &apiResource})
}

// @Summary		Update zone
// @Description	Updates an existing zone. Only values to be updated need to be specified. Quantity and tile changes update the room's material requirement in the same transaction.
// @Tags			Zones
// @Accept			json
// @Produce		json
// @Success		200		{object}	ZoneResponse
// @Failure		400		{object}	ZoneResponse
// @Failure		404		{object}	ZoneResponse
// @Failure		500		{object}	ZoneResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			zone	body		ZoneEditable	true	"Zone"
// @Router			/v1/zones/{id} [patch]
func UpdateZone(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	var zone models.Zone
	err = models.DB.First(&zone, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ZoneEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data ZoneEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&zone).Select("", updateFields...).Updates(data.model()).Error
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ZoneResponse{
			Error: &e,
		})
		return
	}

	apiResource := newZone(c, zone)
	c.JSON(http.StatusOK, ZoneResponse{Data: &apiResource})
}

// @Summary		Delete zone
// @Description	Deletes a zone and updates the room's material requirement in the same transaction
// @Tags			Zones
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/zones/{id} [delete]
func DeleteZone(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var zone models.Zone
	err = models.DB.First(&zone, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&zone).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
