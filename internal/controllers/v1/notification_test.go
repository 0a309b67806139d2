package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/test"
)

// notificationFixture raises one notification per owner by recording a
// purchase that no requirement can receive.
func (suite *TestSuiteStandard) notificationFixture(owners int) {
	for i := 0; i < owners; i++ {
		_ = createTestProfile(suite.T(), v1.ProfileEditable{Role: "owner"})
	}

	tile := createTestTile(suite.T(), v1.TileEditable{})
	tileID := tile.Data.ID

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{TotalAmount: decimal.NewFromFloat(500)})
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Glossy White 60x60 box",
		Qty:       decimal.NewFromFloat(20),
		TileID:    &tileID,
	})
}

func (suite *TestSuiteStandard) TestNotificationsOptions() {
	suite.notificationFixture(1)
	notifications := getTestNotifications(suite, "")

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/notifications", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, notifications.Data[0].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestNotificationsMarkRead() {
	suite.notificationFixture(1)

	notifications := getTestNotifications(suite, "")
	if !assert.Len(suite.T(), notifications.Data, 1) {
		return
	}
	assert.False(suite.T(), notifications.Data[0].Read)

	r := test.Request(suite.T(), http.MethodPatch, notifications.Data[0].Links.Self, map[string]any{
		"read": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.NotificationResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Read)

	// The read filter only applies when the query sets it
	unread := getTestNotifications(suite, "read=false")
	assert.Len(suite.T(), unread.Data, 0)

	read := getTestNotifications(suite, "read=true")
	assert.Len(suite.T(), read.Data, 1)
}

func (suite *TestSuiteStandard) TestNotificationsGetFilter() {
	suite.notificationFixture(2)

	notifications := getTestNotifications(suite, "")
	if !assert.Len(suite.T(), notifications.Data, 2) {
		return
	}

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"User", "user=" + notifications.Data[0].UserID.String(), 1},
		{"Type", "type=tile_purchased_unassigned", 2},
		{"Unknown type", "type=nonexistent", 0},
		{"Limit 1", "limit=1", 1},
		{"Offset 1", "offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/notifications?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.NotificationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestNotificationsGetSingleErrors() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Unknown ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notAUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/notifications/"+tt.id, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestNotificationsNoCreate() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/notifications", map[string]any{
		"title": "not allowed",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}
