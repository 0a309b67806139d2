package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
)

func RegisterNotificationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsNotifications)
		r.GET("", GetNotifications)
	}
	{
		r.OPTIONS("/:id", OptionsNotificationDetail)
		r.GET("/:id", GetNotification)
		r.PATCH("/:id", UpdateNotification)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications [options]
func OptionsNotifications(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notifications/{id} [options]
func OptionsNotificationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Get notifications
// @Description	Returns a list of notifications. Notifications are created by the backend, for example when a purchase cannot be matched to any requirement.
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationListResponse
// @Failure		400	{object}	NotificationListResponse
// @Failure		500	{object}	NotificationListResponse
// @Router			/v1/notifications [get]
// @Param			user	query	string	false	"Filter by the profile the notification is for"
// @Param			type	query	string	false	"Filter by notification type"
// @Param			read	query	bool	false	"Filter by read state"
// @Param			offset	query	uint	false	"The offset of the first notification returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of notifications to return. Defaults to 50."
func GetNotifications(c *gin.Context) {
	var filter NotificationQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NotificationListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	// Newest first, notifications are an inbox
	q := models.DB.
		Order("notifications.created_at DESC").
		Where(&where, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 notifications and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var notifications []models.Notification
	err := q.Find(&notifications).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		data = append(data, newNotification(c, notification))
	}

	c.JSON(http.StatusOK, NotificationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get notification
// @Description	Returns a specific notification
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationResponse
// @Failure		400	{object}	NotificationResponse
// @Failure		404	{object}	NotificationResponse
// @Failure		500	{object}	NotificationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notifications/{id} [get]
func GetNotification(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	apiResource := newNotification(c, notification)
	c.JSON(http.StatusOK, NotificationResponse{Data: &apiResource})
}

// @Summary		Update notification
// @Description	Updates a notification. Only the read flag can be changed.
// @Tags			Notifications
// @Accept			json
// @Produce		json
// @Success		200				{object}	NotificationResponse
// @Failure		400				{object}	NotificationResponse
// @Failure		404				{object}	NotificationResponse
// @Failure		500				{object}	NotificationResponse
// @Param			id				path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			notification	body		NotificationUpdate	true	"Notification"
// @Router			/v1/notifications/{id} [patch]
func UpdateNotification(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, NotificationUpdate{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data NotificationUpdate
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&notification).Select("", updateFields...).Updates(models.Notification{Read: data.Read}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &e,
		})
		return
	}

	apiResource := newNotification(c, notification)
	c.JSON(http.StatusOK, NotificationResponse{Data: &apiResource})
}
