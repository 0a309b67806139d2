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

func RegisterLineItemRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsLineItems)
		r.GET("", GetLineItems)
		r.POST("", CreateLineItems)
	}
	{
		r.OPTIONS("/:id", OptionsLineItemDetail)
		r.GET("/:id", GetLineItem)
		r.DELETE("/:id", DeleteLineItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			LineItems
// @Success		204
// @Router			/v1/line-items [options]
func OptionsLineItems(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			LineItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/line-items/{id} [options]
func OptionsLineItemDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.LineItem{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Create line items
// @Description	Creates new line items. A line with a tile, explicit or resolved from the match rules, credits its quantity to a matching requirement of the expense's site in the same transaction. When no requirement matches, the purchase is recorded anyway and the site owners are notified.
// @Tags			LineItems
// @Produce		json
// @Success		201			{object}	LineItemCreateResponse
// @Failure		400			{object}	LineItemCreateResponse
// @Failure		404			{object}	LineItemCreateResponse
// @Failure		500			{object}	LineItemCreateResponse
// @Param			lineItems	body		[]LineItemEditable	true	"LineItems"
// @Router			/v1/line-items [post]
func CreateLineItems(c *gin.Context) {
	var lineItems []LineItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &lineItems)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LineItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := LineItemCreateResponse{}

	for _, create := range lineItems {
		lineItem := create.model()

		err = models.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&lineItem).Error
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// The purchase went through without a matching requirement.
		// Notify after the commit: the notification is advisory and must
		// not be able to roll back the purchase
		if lineItem.Unmatched {
			id := lineItem.ID
			notify.Default.Send(models.DB, models.RoleOwner,
				"Purchase without requirement",
				fmt.Sprintf("%q was purchased, but no room requires this tile", lineItem.Name),
				models.NotificationTypeTilePurchasedUnassigned, &id)
		}

		apiResource := newLineItem(c, lineItem)
		r.Data = append(r.Data, LineItemResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get line items
// @Description	Returns a list of line items
// @Tags			LineItems
// @Produce		json
// @Success		200	{object}	LineItemListResponse
// @Failure		400	{object}	LineItemListResponse
// @Failure		500	{object}	LineItemListResponse
// @Router			/v1/line-items [get]
// @Param			expense	query	string	false	"Filter by expense ID"
// @Param			tile	query	string	false	"Filter by tile ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first line item returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of line items to return. Defaults to 50."
func GetLineItems(c *gin.Context) {
	var filter LineItemQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, LineItemListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("line_items.created_at ASC").
		Where(&where, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 line items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var lineItems []models.LineItem
	err := q.Find(&lineItems).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LineItemListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]LineItem, 0, len(lineItems))
	for _, lineItem := range lineItems {
		data = append(data, newLineItem(c, lineItem))
	}

	c.JSON(http.StatusOK, LineItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get line item
// @Description	Returns a specific line item
// @Tags			LineItems
// @Produce		json
// @Success		200	{object}	LineItemResponse
// @Failure		400	{object}	LineItemResponse
// @Failure		404	{object}	LineItemResponse
// @Failure		500	{object}	LineItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/line-items/{id} [get]
func GetLineItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &e,
		})
		return
	}

	var lineItem models.LineItem
	err = models.DB.First(&lineItem, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &e,
		})
		return
	}

	apiResource := newLineItem(c, lineItem)
	c.JSON(http.StatusOK, LineItemResponse{Data: &apiResource})
}

// @Summary		Delete line item
// @Description	Deletes a line item. Received quantities are monotonic, so a delivery that was already credited to a requirement is not taken back.
// @Tags			LineItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/line-items/{id} [delete]
func DeleteLineItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var lineItem models.LineItem
	err = models.DB.First(&lineItem, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&lineItem).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
