package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
	"github.com/sitewise/backend/internal/notify"
)

func RegisterShortageRequestRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsShortageRequests)
		r.GET("", GetShortageRequests)
		r.POST("", CreateShortageRequests)
	}
	{
		r.OPTIONS("/:id", OptionsShortageRequestDetail)
		r.GET("/:id", GetShortageRequest)
		r.PATCH("/:id", UpdateShortageRequest)
		r.DELETE("/:id", DeleteShortageRequest)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ShortageRequests
// @Success		204
// @Router			/v1/shortage-requests [options]
func OptionsShortageRequests(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ShortageRequests
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shortage-requests/{id} [options]
func OptionsShortageRequestDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ShortageRequest{})
}

// @Summary		Create shortage requests
// @Description	Creates new shortage requests. New requests always start as pending; the site owners are notified.
// @Tags			ShortageRequests
// @Produce		json
// @Success		201					{object}	ShortageRequestCreateResponse
// @Failure		400					{object}	ShortageRequestCreateResponse
// @Failure		404					{object}	ShortageRequestCreateResponse
// @Failure		500					{object}	ShortageRequestCreateResponse
// @Param			shortageRequests	body		[]ShortageRequestEditable	true	"ShortageRequests"
// @Router			/v1/shortage-requests [post]
func CreateShortageRequests(c *gin.Context) {
	var shortageRequests []ShortageRequestEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &shortageRequests)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ShortageRequestCreateResponse{}

	for _, create := range shortageRequests {
		shortageRequest := create.model()

		// The workflow starts at pending, whatever the request says
		shortageRequest.Status = ""
		shortageRequest.ApprovedBy = nil

		err = models.DB.Create(&shortageRequest).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		id := shortageRequest.ID
		notify.Default.Send(models.DB, models.RoleOwner,
			"Material shortage reported",
			fmt.Sprintf("A shortage of %s was reported", shortageRequest.RequestedQty),
			models.NotificationTypeShortageRequested, &id)

		apiResource := newShortageRequest(c, shortageRequest)
		r.Data = append(r.Data, ShortageRequestResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get shortage requests
// @Description	Returns a list of shortage requests
// @Tags			ShortageRequests
// @Produce		json
// @Success		200	{object}	ShortageRequestListResponse
// @Failure		400	{object}	ShortageRequestListResponse
// @Failure		500	{object}	ShortageRequestListResponse
// @Router			/v1/shortage-requests [get]
// @Param			site	query	string	false	"Filter by site ID"
// @Param			room	query	string	false	"Filter by room ID"
// @Param			tile	query	string	false	"Filter by tile ID"
// @Param			status	query	string	false	"Filter by workflow status"
// @Param			offset	query	uint	false	"The offset of the first shortage request returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of shortage requests to return. Defaults to 50."
func GetShortageRequests(c *gin.Context) {
	var filter ShortageRequestQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ShortageRequestListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("shortage_requests.created_at ASC").
		Where(&where, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 shortage requests and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var shortageRequests []models.ShortageRequest
	err := q.Find(&shortageRequests).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShortageRequestListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]ShortageRequest, 0, len(shortageRequests))
	for _, shortageRequest := range shortageRequests {
		data = append(data, newShortageRequest(c, shortageRequest))
	}

	c.JSON(http.StatusOK, ShortageRequestListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get shortage request
// @Description	Returns a specific shortage request
// @Tags			ShortageRequests
// @Produce		json
// @Success		200	{object}	ShortageRequestResponse
// @Failure		400	{object}	ShortageRequestResponse
// @Failure		404	{object}	ShortageRequestResponse
// @Failure		500	{object}	ShortageRequestResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shortage-requests/{id} [get]
func GetShortageRequest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	var shortageRequest models.ShortageRequest
	err = models.DB.First(&shortageRequest, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	apiResource := newShortageRequest(c, shortageRequest)
	c.JSON(http.StatusOK, ShortageRequestResponse{Data: &apiResource})
}

// @Summary		Update shortage request
// @Description	Updates an existing shortage request. Only values to be updated need to be specified. Status changes follow the workflow pending to approved or rejected, approved to received; the flip to received credits the requested quantity to the room's requirement in the same transaction.
// @Tags			ShortageRequests
// @Accept			json
// @Produce		json
// @Success		200				{object}	ShortageRequestResponse
// @Failure		400				{object}	ShortageRequestResponse
// @Failure		404				{object}	ShortageRequestResponse
// @Failure		500				{object}	ShortageRequestResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shortageRequest	body		ShortageRequestEditable	true	"ShortageRequest"
// @Router			/v1/shortage-requests/{id} [patch]
func UpdateShortageRequest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	var shortageRequest models.ShortageRequest
	err = models.DB.First(&shortageRequest, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ShortageRequestEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data ShortageRequestEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	// The status change and, for the flip to received, the requirement
	// credit commit or fail together
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&shortageRequest).Select("", updateFields...).Updates(data.model()).Error
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShortageRequestResponse{
			Error: &e,
		})
		return
	}

	statusChanged := false
	for _, field := range updateFields {
		if field == "Status" {
			statusChanged = true
		}
	}

	// A decision is advisory information for the site managers
	if statusChanged {
		id := shortageRequest.ID
		notify.Default.Send(models.DB, models.RoleManager,
			"Shortage request decided",
			fmt.Sprintf("The shortage request is now %s", shortageRequest.Status),
			models.NotificationTypeShortageDecided, &id)
	}

	apiResource := newShortageRequest(c, shortageRequest)
	c.JSON(http.StatusOK, ShortageRequestResponse{Data: &apiResource})
}

// @Summary		Delete shortage request
// @Description	Deletes a shortage request. Requests that were already received keep their credited quantity.
// @Tags			ShortageRequests
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shortage-requests/{id} [delete]
func DeleteShortageRequest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var shortageRequest models.ShortageRequest
	err = models.DB.First(&shortageRequest, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&shortageRequest).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
