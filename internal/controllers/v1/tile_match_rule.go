package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
)

func RegisterTileMatchRuleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTileMatchRules)
		r.GET("", GetTileMatchRules)
		r.POST("", CreateTileMatchRules)
	}
	{
		r.OPTIONS("/:id", OptionsTileMatchRuleDetail)
		r.GET("/:id", GetTileMatchRule)
		r.PATCH("/:id", UpdateTileMatchRule)
		r.DELETE("/:id", DeleteTileMatchRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			TileMatchRules
// @Success		204
// @Router			/v1/tile-match-rules [options]
func OptionsTileMatchRules(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			TileMatchRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tile-match-rules/{id} [options]
func OptionsTileMatchRuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.TileMatchRule{})
}

// @Summary		Create match rules
// @Description	Creates new tile match rules
// @Tags			TileMatchRules
// @Produce		json
// @Success		201			{object}	TileMatchRuleCreateResponse
// @Failure		400			{object}	TileMatchRuleCreateResponse
// @Failure		404			{object}	TileMatchRuleCreateResponse
// @Failure		500			{object}	TileMatchRuleCreateResponse
// @Param			matchRules	body		[]TileMatchRuleEditable	true	"TileMatchRules"
// @Router			/v1/tile-match-rules [post]
func CreateTileMatchRules(c *gin.Context) {
	var matchRules []TileMatchRuleEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &matchRules)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TileMatchRuleCreateResponse{}

	for _, create := range matchRules {
		matchRule := create.model()
		err = models.DB.Create(&matchRule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newTileMatchRule(c, matchRule)
		r.Data = append(r.Data, TileMatchRuleResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get match rules
// @Description	Returns a list of tile match rules
// @Tags			TileMatchRules
// @Produce		json
// @Success		200	{object}	TileMatchRuleListResponse
// @Failure		400	{object}	TileMatchRuleListResponse
// @Failure		500	{object}	TileMatchRuleListResponse
// @Router			/v1/tile-match-rules [get]
// @Param			priority	query	uint	false	"Filter by priority"
// @Param			match		query	string	false	"Filter by match pattern"
// @Param			tile		query	string	false	"Filter by tile ID"
// @Param			offset		query	uint	false	"The offset of the first match rule returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of match rules to return. Defaults to 50."
func GetTileMatchRules(c *gin.Context) {
	var filter TileMatchRuleQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TileMatchRuleListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	// Evaluation order, same as the resolver uses
	q := models.DB.
		Order("tile_match_rules.priority ASC, tile_match_rules.match ASC").
		Where(&where, queryFields...)

	if filter.Match != "" {
		q = q.Where("match LIKE ?", fmt.Sprintf("%%%s%%", filter.Match))
	} else if slices.Contains(setFields, "Match") {
		q = q.Where("match = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 match rules and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var matchRules []models.TileMatchRule
	err := q.Find(&matchRules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TileMatchRuleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]TileMatchRule, 0, len(matchRules))
	for _, matchRule := range matchRules {
		data = append(data, newTileMatchRule(c, matchRule))
	}

	c.JSON(http.StatusOK, TileMatchRuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get match rule
// @Description	Returns a specific tile match rule
// @Tags			TileMatchRules
// @Produce		json
// @Success		200	{object}	TileMatchRuleResponse
// @Failure		400	{object}	TileMatchRuleResponse
// @Failure		404	{object}	TileMatchRuleResponse
// @Failure		500	{object}	TileMatchRuleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tile-match-rules/{id} [get]
func GetTileMatchRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	var matchRule models.TileMatchRule
	err = models.DB.First(&matchRule, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	apiResource := newTileMatchRule(c, matchRule)
	c.JSON(http.StatusOK, TileMatchRuleResponse{Data: &apiResource})
}

// @Summary		Update match rule
// @Description	Updates an existing tile match rule. Only values to be updated need to be specified.
// @Tags			TileMatchRules
// @Accept			json
// @Produce		json
// @Success		200			{object}	TileMatchRuleResponse
// @Failure		400			{object}	TileMatchRuleResponse
// @Failure		404			{object}	TileMatchRuleResponse
// @Failure		500			{object}	TileMatchRuleResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			matchRule	body		TileMatchRuleEditable	true	"TileMatchRule"
// @Router			/v1/tile-match-rules/{id} [patch]
func UpdateTileMatchRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	var matchRule models.TileMatchRule
	err = models.DB.First(&matchRule, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, TileMatchRuleEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data TileMatchRuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&matchRule).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileMatchRuleResponse{
			Error: &e,
		})
		return
	}

	apiResource := newTileMatchRule(c, matchRule)
	c.JSON(http.StatusOK, TileMatchRuleResponse{Data: &apiResource})
}

// @Summary		Delete match rule
// @Description	Deletes a tile match rule
// @Tags			TileMatchRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tile-match-rules/{id} [delete]
func DeleteTileMatchRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var matchRule models.TileMatchRule
	err = models.DB.First(&matchRule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&matchRule).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
