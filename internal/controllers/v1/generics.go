package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources with an ID, not for requirements, which use a composite key
func resourceOptionsDetail[R models.Profile | models.Site | models.Room | models.Tile | models.Zone | models.Expense | models.Payment | models.LineItem | models.TileMatchRule | models.ShortageRequest | models.Notification](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
