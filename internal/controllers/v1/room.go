package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
)

func RegisterRoomRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRooms)
		r.GET("", GetRooms)
		r.POST("", CreateRooms)
	}
	{
		r.OPTIONS("/:id", OptionsRoomDetail)
		r.GET("/:id", GetRoom)
		r.PATCH("/:id", UpdateRoom)
		r.DELETE("/:id", DeleteRoom)
	}
	{
		r.OPTIONS("/:id/requirements", OptionsRoomRequirements)
		r.GET("/:id/requirements", GetRoomRequirements)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rooms
// @Success		204
// @Router			/v1/rooms [options]
func OptionsRooms(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rooms
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rooms/{id} [options]
func OptionsRoomDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Room{})
}

// @Summary		Create rooms
// @Description	Creates new rooms
// @Tags			Rooms
// @Produce		json
// @Success		201		{object}	RoomCreateResponse
// @Failure		400		{object}	RoomCreateResponse
// @Failure		404		{object}	RoomCreateResponse
// @Failure		500		{object}	RoomCreateResponse
// @Param			rooms	body		[]RoomEditable	true	"Rooms"
// @Router			/v1/rooms [post]
func CreateRooms(c *gin.Context) {
	var rooms []RoomEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &rooms)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RoomCreateResponse{}

	for _, create := range rooms {
		room := create.model()
		err = models.DB.Create(&room).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newRoom(c, room)
		r.Data = append(r.Data, RoomResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get rooms
// @Description	Returns a list of rooms
// @Tags			Rooms
// @Produce		json
// @Success		200	{object}	RoomListResponse
// @Failure		400	{object}	RoomListResponse
// @Failure		500	{object}	RoomListResponse
// @Router			/v1/rooms [get]
// @Param			site	query	string	false	"Filter by site ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in name"
// @Param			offset	query	uint	false	"The offset of the first room returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of rooms to return. Defaults to 50."
func GetRooms(c *gin.Context) {
	var filter RoomQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RoomListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("rooms.created_at ASC").
		Where(&where, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 rooms and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var rooms []models.Room
	err := q.Find(&rooms).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoomListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		data = append(data, newRoom(c, room))
	}

	c.JSON(http.StatusOK, RoomListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get room
// @Description	Returns a specific room
// @Tags			Rooms
// @Produce		json
// @Success		200	{object}	RoomResponse
// @Failure		400	{object}	RoomResponse
// @Failure		404	{object}	RoomResponse
// @Failure		500	{object}	RoomResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rooms/{id} [get]
func GetRoom(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	var room models.Room
	err = models.DB.First(&room, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	apiResource := newRoom(c, room)
	c.JSON(http.StatusOK, RoomResponse{Data: &apiResource})
}

// @Summary		Update room
// @Description	Updates an existing room. Only values to be updated need to be specified.
// @Tags			Rooms
// @Accept			json
// @Produce		json
// @Success		200		{object}	RoomResponse
// @Failure		400		{object}	RoomResponse
// @Failure		404		{object}	RoomResponse
// @Failure		500		{object}	RoomResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			room	body		RoomEditable	true	"Room"
// @Router			/v1/rooms/{id} [patch]
func UpdateRoom(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	var room models.Room
	err = models.DB.First(&room, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, RoomEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data RoomEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&room).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoomResponse{
			Error: &e,
		})
		return
	}

	apiResource := newRoom(c, room)
	c.JSON(http.StatusOK, RoomResponse{Data: &apiResource})
}

// @Summary		Delete room
// @Description	Deletes a room
// @Tags			Rooms
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rooms/{id} [delete]
func DeleteRoom(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var room models.Room
	err = models.DB.First(&room, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&room).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rooms
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rooms/{id}/requirements [options]
func OptionsRoomRequirements(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get room requirements
// @Description	Returns the material requirements of a room with the projected shortage
// @Tags			Rooms
// @Produce		json
// @Success		200	{object}	RequirementListResponse
// @Failure		400	{object}	RequirementListResponse
// @Failure		404	{object}	RequirementListResponse
// @Failure		500	{object}	RequirementListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rooms/{id}/requirements [get]
func GetRoomRequirements(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementListResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.First(&models.Room{}, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementListResponse{
			Error: &e,
		})
		return
	}

	var requirements []models.Requirement
	err = models.DB.
		Where("room_id = ?", uri.ID.UUID).
		Order("requirements.created_at ASC").
		Find(&requirements).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequirementListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Requirement, 0, len(requirements))
	for _, requirement := range requirements {
		data = append(data, newRequirement(c, requirement))
	}

	c.JSON(http.StatusOK, RequirementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count: len(data),
			Total: int64(len(data)),
			Limit: len(data),
		},
	})
}
