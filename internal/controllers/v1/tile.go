package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
)

func RegisterTileRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTiles)
		r.GET("", GetTiles)
		r.POST("", CreateTiles)
	}
	{
		r.OPTIONS("/:id", OptionsTileDetail)
		r.GET("/:id", GetTile)
		r.PATCH("/:id", UpdateTile)
		r.DELETE("/:id", DeleteTile)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tiles
// @Success		204
// @Router			/v1/tiles [options]
func OptionsTiles(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tiles/{id} [options]
func OptionsTileDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Tile{})
}

// @Summary		Create tiles
// @Description	Creates new tiles
// @Tags			Tiles
// @Produce		json
// @Success		201		{object}	TileCreateResponse
// @Failure		400		{object}	TileCreateResponse
// @Failure		500		{object}	TileCreateResponse
// @Param			tiles	body		[]TileEditable	true	"Tiles"
// @Router			/v1/tiles [post]
func CreateTiles(c *gin.Context) {
	var tiles []TileEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &tiles)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TileCreateResponse{}

	for _, create := range tiles {
		tile := create.model()
		err = models.DB.Create(&tile).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newTile(c, tile)
		r.Data = append(r.Data, TileResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get tiles
// @Description	Returns a list of tiles
// @Tags			Tiles
// @Produce		json
// @Success		200	{object}	TileListResponse
// @Failure		400	{object}	TileListResponse
// @Failure		500	{object}	TileListResponse
// @Router			/v1/tiles [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			size	query	string	false	"Filter by size label"
// @Param			unit	query	string	false	"Filter by unit"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first tile returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of tiles to return. Defaults to 50."
func GetTiles(c *gin.Context) {
	var filter TileQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TileListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("tiles.name ASC").
		Where(&where, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 tiles and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var tiles []models.Tile
	err := q.Find(&tiles).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TileListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Tile, 0, len(tiles))
	for _, tile := range tiles {
		data = append(data, newTile(c, tile))
	}

	c.JSON(http.StatusOK, TileListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get tile
// @Description	Returns a specific tile
// @Tags			Tiles
// @Produce		json
// @Success		200	{object}	TileResponse
// @Failure		400	{object}	TileResponse
// @Failure		404	{object}	TileResponse
// @Failure		500	{object}	TileResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tiles/{id} [get]
func GetTile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	var tile models.Tile
	err = models.DB.First(&tile, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newTile(c, tile)
	c.JSON(http.StatusOK, TileResponse{Data: &apiResource})
}

// @Summary		Update tile
// @Description	Updates an existing tile. Only values to be updated need to be specified.
// @Tags			Tiles
// @Accept			json
// @Produce		json
// @Success		200		{object}	TileResponse
// @Failure		400		{object}	TileResponse
// @Failure		404		{object}	TileResponse
// @Failure		500		{object}	TileResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			tile	body		TileEditable	true	"Tile"
// @Router			/v1/tiles/{id} [patch]
func UpdateTile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	var tile models.Tile
	err = models.DB.First(&tile, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, TileEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data TileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&tile).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newTile(c, tile)
	c.JSON(http.StatusOK, TileResponse{Data: &apiResource})
}

// @Summary		Delete tile
// @Description	Deletes a tile
// @Tags			Tiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tiles/{id} [delete]
func DeleteTile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var tile models.Tile
	err = models.DB.First(&tile, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&tile).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
