package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func RegisterReportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsReports)
		r.GET("", GetReports)
	}
	{
		r.OPTIONS("/shortages", OptionsShortageReport)
		r.GET("/shortages", GetShortageReport)
	}
}

type ReportLinks struct {
	Shortages string `json:"shortages" example:"https://example.com/api/v1/reports/shortages"` // The shortage report
}

type ReportListResponse struct {
	Links ReportLinks `json:"links"` // Links to the available reports
}

type ShortageReportQuery struct {
	SiteID sw_uuid.UUID `form:"site"` // Limit the report to one site
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReports(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/shortages [options]
func OptionsShortageReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List reports
// @Description	Returns a list of links to the available reports
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportListResponse
// @Router			/v1/reports [get]
func GetReports(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, ReportListResponse{
		Links: ReportLinks{
			Shortages: url + "/v1/reports/shortages",
		},
	})
}

// @Summary		Shortage report
// @Description	Exports all requirements that still have a shortage as an Excel file. The shortage is projected from the stored quantities when the report is built.
// @Tags			Reports
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200	{file}		file
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			site	query	string	false	"Limit the report to one site"
// @Router			/v1/reports/shortages [get]
func GetShortageReport(c *gin.Context) {
	var query ShortageReportQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	q := models.DB.
		Preload("Room").
		Preload("Room.Site").
		Preload("Tile").
		Order("requirements.created_at ASC")

	if query.SiteID.UUID != sw_uuid.Nil.UUID {
		q = q.
			Joins("JOIN rooms ON rooms.id = requirements.room_id").
			Where("rooms.site_id = ?", query.SiteID.UUID)
	}

	var requirements []models.Requirement
	err := q.Find(&requirements).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"site",
		"room",
		"tile",
		"unit",
		"required_qty",
		"received_qty",
		"shortage_qty",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	// Only rows with an open shortage make it into the report
	row := 2
	for _, requirement := range requirements {
		view := models.RequirementLedger.Project(requirement)
		if view.Status != models.FulfillmentShortage {
			continue
		}

		excelRow := []interface{}{
			requirement.Room.Site.Name,
			requirement.Room.Name,
			requirement.Tile.Name,
			requirement.Tile.Unit,
			requirement.RequiredQty.String(),
			requirement.ReceivedQty.String(),
			view.ShortageQty.String(),
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			return
		}

		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			return
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	fileName := fmt.Sprintf("shortages_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
