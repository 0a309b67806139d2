package v1

import (
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type URIID struct {
	ID sw_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// URIRequirement identifies a requirement by its composite key.
type URIRequirement struct {
	RoomID sw_uuid.UUID `uri:"roomId" binding:"required" format:"UUID"` // ID of the room
	TileID sw_uuid.UUID `uri:"tileId" binding:"required" format:"UUID"` // ID of the tile
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
