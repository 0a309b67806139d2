package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

// NotificationUpdate is the only writable part of a notification.
// Notifications themselves are created by the backend.
type NotificationUpdate struct {
	Read bool `json:"read" example:"true" default:"false"` // Has the notification been read?
}

type NotificationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/notifications/cee351a8-92a2-4f9d-b0a8-3e5d58b78c0f"` // The notification itself
	User string `json:"user" example:"https://example.com/api/v1/profiles/af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`      // The profile the notification is for
}

type Notification struct {
	models.DefaultModel
	UserID      uuid.UUID         `json:"userId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`            // ID of the profile the notification is for
	Title       string            `json:"title" example:"Material shortage reported"`                       // Title of the notification
	Body        string            `json:"body" example:"A shortage of 4.5 was reported"`                    // Body text
	Type        string            `json:"type" example:"shortage_requested"`                                // Type of the notification
	ReferenceID *uuid.UUID        `json:"referenceId" example:"7e3f0c82-4f37-4a82-8b7d-5d5442d0ab47"`       // ID of the resource the notification is about
	Read        bool              `json:"read" example:"false"`                                             // Has the notification been read?
	Links       NotificationLinks `json:"links"`
}

// newNotification returns the API v1 representation of the resource
func newNotification(c *gin.Context, model models.Notification) Notification {
	url := c.GetString(string(models.DBContextURL))

	return Notification{
		DefaultModel: model.DefaultModel,
		UserID:       model.UserID,
		Title:        model.Title,
		Body:         model.Body,
		Type:         model.Type,
		ReferenceID:  model.ReferenceID,
		Read:         model.Read,
		Links: NotificationLinks{
			Self: fmt.Sprintf("%s/v1/notifications/%s", url, model.ID),
			User: fmt.Sprintf("%s/v1/profiles/%s", url, model.UserID),
		},
	}
}

type NotificationListResponse struct {
	Data       []Notification `json:"data"`                                                          // List of resources
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type NotificationResponse struct {
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Notification `json:"data"`                                                          // The resource
}

type NotificationQueryFilter struct {
	UserID sw_uuid.UUID `form:"user"`                       // By profile ID
	Type   string       `form:"type"`                       // By notification type
	Read   bool         `form:"read"`                       // Has the notification been read?
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first notification returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of notifications to return. Defaults to 50.
}

func (f NotificationQueryFilter) model() models.Notification {
	return models.Notification{
		UserID: f.UserID.UUID,
		Type:   f.Type,
		Read:   f.Read,
	}
}
