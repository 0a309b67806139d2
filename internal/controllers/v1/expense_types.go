package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitewise/backend/internal/models"
	sw_uuid "github.com/sitewise/backend/internal/uuid"
)

type ExpenseEditable struct {
	SiteID      uuid.UUID       `json:"siteId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                                                          // ID of the site the expense belongs to
	VendorName  string          `json:"vendorName" example:"Sharma Ceramics" default:""`                                                                // Name of the vendor
	Description string          `json:"description" example:"Tiles for the first floor" default:""`                                                     // Description of the expense
	Date        time.Time       `json:"date" example:"2024-03-14T00:00:00Z"`                                                                            // Date of the expense. Defaults to the current time
	TotalAmount decimal.Decimal `json:"totalAmount" example:"48000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`    // Total amount of the bill
}

// model returns the database resource for the API representation of the editable fields
func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		SiteID:      editable.SiteID,
		VendorName:  editable.VendorName,
		Description: editable.Description,
		Date:        editable.Date,
		TotalAmount: editable.TotalAmount,
	}
}

type ExpenseLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/expenses/d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"`               // The expense itself
	Site      string `json:"site" example:"https://example.com/api/v1/sites/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // The site the expense belongs to
	Payments  string `json:"payments" example:"https://example.com/api/v1/payments?expense=d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"`   // Payments towards the expense
	LineItems string `json:"lineItems" example:"https://example.com/api/v1/line-items?expense=d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"` // Line items of the expense
}

// Expense is the API representation of an expense.
//
// PaidAmount and PaymentStatus are maintained by the backend from the
// expense's payments, Outstanding is projected when the response is
// built. None of them can be set through the API.
type Expense struct {
	models.DefaultModel
	ExpenseEditable
	PaidAmount    decimal.Decimal      `json:"paidAmount" example:"18000"`                               // Sum of all payments towards this expense
	PaymentStatus models.PaymentStatus `json:"paymentStatus" example:"partial" enums:"unpaid,partial,paid"` // Payment status derived from the payments
	Outstanding   decimal.Decimal      `json:"outstanding" example:"30000"`                              // Projected remaining amount
	Links         ExpenseLinks         `json:"links"`
}

// newExpense returns the API v1 representation of the resource
func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))
	balance := models.PaymentLedger.Project(model)

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			SiteID:      model.SiteID,
			VendorName:  model.VendorName,
			Description: model.Description,
			Date:        model.Date,
			TotalAmount: model.TotalAmount,
		},
		PaidAmount:    model.PaidAmount,
		PaymentStatus: model.PaymentStatus,
		Outstanding:   balance.Outstanding,
		Links: ExpenseLinks{
			Self:      fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Site:      fmt.Sprintf("%s/v1/sites/%s", url, model.SiteID),
			Payments:  fmt.Sprintf("%s/v1/payments?expense=%s", url, model.ID),
			LineItems: fmt.Sprintf("%s/v1/line-items?expense=%s", url, model.ID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ExpenseResponse `json:"data"`                                                          // List of created resources
}

func (t *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Expense `json:"data"`                                                          // The resource
}

type ExpenseQueryFilter struct {
	SiteID        sw_uuid.UUID `form:"site"`                              // By site ID
	VendorName    string       `form:"vendorName" filterField:"false"`    // By vendor name
	PaymentStatus string       `form:"paymentStatus"`                     // By payment status
	Search        string       `form:"search" filterField:"false"`        // By string in vendor name or description
	Offset        uint         `form:"offset" filterField:"false"`        // The offset of the first expense returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`         // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		SiteID:        f.SiteID.UUID,
		PaymentStatus: models.PaymentStatus(f.PaymentStatus),
	}
}
