package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/test"
)

func getTestExpense(suite *TestSuiteStandard, url string) v1.ExpenseResponse {
	r := test.Request(suite.T(), http.MethodGet, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

// The ledger fields cannot be written through the API, a new expense
// always starts unpaid.
func (suite *TestSuiteStandard) TestExpensesCreateStartsUnpaid() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		TotalAmount: decimal.NewFromFloat(48000),
	})

	assert.True(suite.T(), expense.Data.PaidAmount.IsZero(), "paid amount is %s", expense.Data.PaidAmount)
	assert.Equal(suite.T(), "unpaid", string(expense.Data.PaymentStatus))
	assert.True(suite.T(), expense.Data.Outstanding.Equal(decimal.NewFromFloat(48000)), "outstanding is %s", expense.Data.Outstanding)
}

func (suite *TestSuiteStandard) TestExpensesPaymentFlow() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		TotalAmount: decimal.NewFromFloat(100),
	})

	payment := createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: expense.Data.ID,
		Amount:    decimal.NewFromFloat(40),
	})

	reloaded := getTestExpense(suite, expense.Data.Links.Self)
	assert.True(suite.T(), reloaded.Data.PaidAmount.Equal(decimal.NewFromFloat(40)), "paid amount is %s", reloaded.Data.PaidAmount)
	assert.Equal(suite.T(), "partial", string(reloaded.Data.PaymentStatus))
	assert.True(suite.T(), reloaded.Data.Outstanding.Equal(decimal.NewFromFloat(60)), "outstanding is %s", reloaded.Data.Outstanding)

	_ = createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: expense.Data.ID,
		Amount:    decimal.NewFromFloat(60),
	})

	reloaded = getTestExpense(suite, expense.Data.Links.Self)
	assert.Equal(suite.T(), "paid", string(reloaded.Data.PaymentStatus))

	// Deleting a payment reopens the expense
	r := test.Request(suite.T(), http.MethodDelete, payment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	reloaded = getTestExpense(suite, expense.Data.Links.Self)
	assert.True(suite.T(), reloaded.Data.PaidAmount.Equal(decimal.NewFromFloat(60)), "paid amount is %s", reloaded.Data.PaidAmount)
	assert.Equal(suite.T(), "partial", string(reloaded.Data.PaymentStatus))
}

// Lowering the total below the paid amount flips the status in the same
// request.
func (suite *TestSuiteStandard) TestExpensesUpdateTotalResyncs() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		TotalAmount: decimal.NewFromFloat(100),
	})

	_ = createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: expense.Data.ID,
		Amount:    decimal.NewFromFloat(50),
	})

	r := test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{
		"totalAmount": 50,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "paid", string(updated.Data.PaymentStatus))
}

// Deleting an expense removes its payments and line items with it.
func (suite *TestSuiteStandard) TestExpensesDeleteCascades() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		TotalAmount: decimal.NewFromFloat(100),
	})

	_ = createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: expense.Data.ID,
		Amount:    decimal.NewFromFloat(40),
	})
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Grout, gray",
		Qty:       decimal.NewFromFloat(5),
	})

	r := test.Request(suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	for _, path := range []string{
		fmt.Sprintf("http://example.com/v1/payments?expense=%s", expense.Data.ID),
		fmt.Sprintf("http://example.com/v1/line-items?expense=%s", expense.Data.ID),
	} {
		r = test.Request(suite.T(), http.MethodGet, path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response struct {
			Data []any `json:"data"`
		}
		test.DecodeResponse(suite.T(), &r, &response)
		assert.Len(suite.T(), response.Data, 0, "children left after expense delete: %s", path)
	}
}

func (suite *TestSuiteStandard) TestExpensesGetFilter() {
	site := createTestSite(suite.T(), v1.SiteEditable{})

	paid := createTestExpense(suite.T(), v1.ExpenseEditable{
		SiteID:      site.Data.ID,
		VendorName:  "Sharma Ceramics",
		TotalAmount: decimal.NewFromFloat(100),
	})
	_ = createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: paid.Data.ID,
		Amount:    decimal.NewFromFloat(100),
	})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		SiteID:      site.Data.ID,
		VendorName:  "Malik Hardware",
		Description: "Grout and spacers",
		TotalAmount: decimal.NewFromFloat(250),
	})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		VendorName:  "Sharma Ceramics",
		TotalAmount: decimal.NewFromFloat(300),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Site", fmt.Sprintf("site=%s", site.Data.ID), 2},
		{"Payment status paid", "paymentStatus=paid", 1},
		{"Payment status unpaid", "paymentStatus=unpaid", 2},
		{"Fuzzy vendor name", "vendorName=Sharma", 2},
		{"Search in description", "search=grout", 1},
		{"Site and status", fmt.Sprintf("site=%s&paymentStatus=unpaid", site.Data.ID), 1},
		{"Limit 1", "limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentsExpenseImmutable() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{TotalAmount: decimal.NewFromFloat(100)})
	other := createTestExpense(suite.T(), v1.ExpenseEditable{TotalAmount: decimal.NewFromFloat(100)})

	payment := createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: expense.Data.ID,
		Amount:    decimal.NewFromFloat(10),
	})

	r := test.Request(suite.T(), http.MethodPatch, payment.Data.Links.Self, map[string]any{
		"expenseId": other.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPaymentsCreateNotPositive() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{TotalAmount: decimal.NewFromFloat(100)})

	_ = createTestPayment(suite.T(), v1.PaymentEditable{
		ExpenseID: expense.Data.ID,
	}, http.StatusBadRequest)
}
