package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/test"
)

func getTestNotifications(suite *TestSuiteStandard, query string) v1.NotificationListResponse {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/notifications?%s", query), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestLineItemsCreditRequirement() {
	site, room, tile := suite.requirementFixture()
	tileID := tile.Data.ID

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: site.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Glossy White 60x60 box",
		Qty:       decimal.NewFromFloat(20),
		TileID:    &tileID,
	})

	requirement := getTestRequirement(suite, room.Data.ID.String(), tile.Data.ID.String(), http.StatusOK)
	assert.True(suite.T(), requirement.Data.ReceivedQty.Equal(decimal.NewFromFloat(20)), "received quantity is %s", requirement.Data.ReceivedQty)
}

// A tagged purchase that no requirement can receive notifies every
// owner, and only the owners.
func (suite *TestSuiteStandard) TestLineItemsUnmatchedNotifiesOwners() {
	firstOwner := createTestProfile(suite.T(), v1.ProfileEditable{Role: "owner"})
	secondOwner := createTestProfile(suite.T(), v1.ProfileEditable{Role: "owner"})
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Role: "manager"})

	tile := createTestTile(suite.T(), v1.TileEditable{})
	tileID := tile.Data.ID

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{TotalAmount: decimal.NewFromFloat(500)})
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Glossy White 60x60 box",
		Qty:       decimal.NewFromFloat(20),
		TileID:    &tileID,
	})

	notifications := getTestNotifications(suite, "type=tile_purchased_unassigned")
	if assert.Len(suite.T(), notifications.Data, 2) {
		recipients := []string{
			notifications.Data[0].UserID.String(),
			notifications.Data[1].UserID.String(),
		}
		assert.Contains(suite.T(), recipients, firstOwner.Data.ID.String())
		assert.Contains(suite.T(), recipients, secondOwner.Data.ID.String())
	}
}

// A matched purchase is no reason to notify anyone.
func (suite *TestSuiteStandard) TestLineItemsMatchedNoNotification() {
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Role: "owner"})

	site, _, tile := suite.requirementFixture()
	tileID := tile.Data.ID

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: site.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Tiles",
		Qty:       decimal.NewFromFloat(10),
		TileID:    &tileID,
	})

	notifications := getTestNotifications(suite, "")
	assert.Len(suite.T(), notifications.Data, 0)
}

// Untagged lines run through the match rules.
func (suite *TestSuiteStandard) TestLineItemsResolveTileFromRules() {
	site, room, tile := suite.requirementFixture()

	_ = createTestTileMatchRule(suite.T(), v1.TileMatchRuleEditable{
		Priority: 1,
		Match:    "Glossy*",
		TileID:   tile.Data.ID,
	})

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: site.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Glossy White 60x60 box",
		Qty:       decimal.NewFromFloat(20),
	})

	if assert.NotNil(suite.T(), lineItem.Data.TileID) {
		assert.Equal(suite.T(), tile.Data.ID, *lineItem.Data.TileID)
	}

	requirement := getTestRequirement(suite, room.Data.ID.String(), tile.Data.ID.String(), http.StatusOK)
	assert.True(suite.T(), requirement.Data.ReceivedQty.Equal(decimal.NewFromFloat(20)), "received quantity is %s", requirement.Data.ReceivedQty)
}

// Purchases are immutable once recorded, only create and delete exist.
func (suite *TestSuiteStandard) TestLineItemsNoUpdate() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{TotalAmount: decimal.NewFromFloat(500)})
	lineItem := createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Grout, gray",
		Qty:       decimal.NewFromFloat(5),
	})

	r := test.Request(suite.T(), http.MethodPatch, lineItem.Data.Links.Self, map[string]any{
		"qty": 10,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)

	r = test.Request(suite.T(), http.MethodOptions, lineItem.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, DELETE", r.Header().Get("allow"))
}

// Deleting a purchase does not claw back the credited quantity.
func (suite *TestSuiteStandard) TestLineItemsDeleteKeepsCredit() {
	site, room, tile := suite.requirementFixture()
	tileID := tile.Data.ID

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: site.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Tiles",
		Qty:       decimal.NewFromFloat(10),
		TileID:    &tileID,
	})

	r := test.Request(suite.T(), http.MethodDelete, lineItem.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	requirement := getTestRequirement(suite, room.Data.ID.String(), tile.Data.ID.String(), http.StatusOK)
	assert.True(suite.T(), requirement.Data.ReceivedQty.Equal(decimal.NewFromFloat(10)), "received quantity is %s", requirement.Data.ReceivedQty)
}
