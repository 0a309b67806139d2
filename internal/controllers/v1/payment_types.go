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

type PaymentEditable struct {
	ExpenseID uuid.UUID       `json:"expenseId" example:"d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"`                                                     // ID of the expense the payment belongs to. Immutable after creation
	Amount    decimal.Decimal `json:"amount" example:"18000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Amount of the payment
	Date      time.Time       `json:"date" example:"2024-03-20T00:00:00Z"`                                                                          // Date of the payment. Defaults to the current time
	Method    string          `json:"method" example:"transfer" default:""`                                                                         // Payment method, e.g. cash or transfer
	Note      string          `json:"note" example:"First installment" default:""`                                                                  // Note about the payment
}

// model returns the database resource for the API representation of the editable fields
func (editable PaymentEditable) model() models.Payment {
	return models.Payment{
		ExpenseID: editable.ExpenseID,
		Amount:    editable.Amount,
		Date:      editable.Date,
		Method:    editable.Method,
		Note:      editable.Note,
	}
}

type PaymentLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/payments/6f02f30a-fb1a-4bb3-a866-61dc1cbd7da5"`   // The payment itself
	Expense string `json:"expense" example:"https://example.com/api/v1/expenses/d5b7c1c8-91b5-4acd-8f0f-ee227b1b9ce6"` // The expense the payment belongs to
}

type Payment struct {
	models.DefaultModel
	PaymentEditable
	Links PaymentLinks `json:"links"`
}

// newPayment returns the API v1 representation of the resource
func newPayment(c *gin.Context, model models.Payment) Payment {
	url := c.GetString(string(models.DBContextURL))

	return Payment{
		DefaultModel: model.DefaultModel,
		PaymentEditable: PaymentEditable{
			ExpenseID: model.ExpenseID,
			Amount:    model.Amount,
			Date:      model.Date,
			Method:    model.Method,
			Note:      model.Note,
		},
		Links: PaymentLinks{
			Self:    fmt.Sprintf("%s/v1/payments/%s", url, model.ID),
			Expense: fmt.Sprintf("%s/v1/expenses/%s", url, model.ExpenseID),
		},
	}
}

type PaymentListResponse struct {
	Data       []Payment   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PaymentCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []PaymentResponse `json:"data"`                                                          // List of created resources
}

func (t *PaymentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, PaymentResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Payment `json:"data"`                                                          // The resource
}

type PaymentQueryFilter struct {
	ExpenseID sw_uuid.UUID `form:"expense"`                    // By expense ID
	Method    string       `form:"method"`                     // By payment method
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first payment returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of payments to return. Defaults to 50.
}

func (f PaymentQueryFilter) model() models.Payment {
	return models.Payment{
		ExpenseID: f.ExpenseID.UUID,
		Method:    f.Method,
	}
}
