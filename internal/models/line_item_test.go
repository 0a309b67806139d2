package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sitewise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestLineItemCreditsRequirement() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	_ = suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		RequiredQty: decimal.NewFromFloat(30),
	})

	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "Glossy White 60x60",
		Qty:       decimal.NewFromFloat(20),
		TileID:    &tileID,
	})

	assert.False(suite.T(), lineItem.Unmatched)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.ReceivedQty.Equal(decimal.NewFromFloat(20)), "received quantity is %s", requirement.ReceivedQty)
}

// When several rooms of the site require the tile, the purchase is
// credited to exactly one: the room created first.
func (suite *TestSuiteStandard) TestLineItemFirstRoomWins() {
	site := suite.createTestSite(models.Site{})
	first := suite.createTestRoom(models.Room{SiteID: site.ID})
	second := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	_ = suite.createTestZone(models.Zone{RoomID: first.ID, TileID: &tileID, RequiredQty: decimal.NewFromFloat(10)})
	_ = suite.createTestZone(models.Zone{RoomID: second.ID, TileID: &tileID, RequiredQty: decimal.NewFromFloat(10)})

	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})
	_ = suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "tiles",
		Qty:       decimal.NewFromFloat(8),
		TileID:    &tileID,
	})

	firstRequirement := suite.requirement(first.ID, tile.ID)
	assert.True(suite.T(), firstRequirement.ReceivedQty.Equal(decimal.NewFromFloat(8)), "received quantity is %s", firstRequirement.ReceivedQty)

	secondRequirement := suite.requirement(second.ID, tile.ID)
	assert.True(suite.T(), secondRequirement.ReceivedQty.IsZero(), "received quantity is %s", secondRequirement.ReceivedQty)
}

// A purchase in another site must not leak into this site's rooms.
func (suite *TestSuiteStandard) TestLineItemScopedToSite() {
	site := suite.createTestSite(models.Site{})
	otherSite := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	_ = suite.createTestZone(models.Zone{RoomID: room.ID, TileID: &tileID, RequiredQty: decimal.NewFromFloat(10)})

	expense := suite.createTestExpense(models.Expense{SiteID: otherSite.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "tiles",
		Qty:       decimal.NewFromFloat(8),
		TileID:    &tileID,
	})

	assert.True(suite.T(), lineItem.Unmatched)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.ReceivedQty.IsZero(), "received quantity is %s", requirement.ReceivedQty)
}

func (suite *TestSuiteStandard) TestLineItemUnmatched() {
	site := suite.createTestSite(models.Site{})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "tiles",
		Qty:       decimal.NewFromFloat(8),
		TileID:    &tileID,
	})

	// The purchase is stored anyway, only the credit is skipped
	assert.True(suite.T(), lineItem.Unmatched)

	var count int64
	_ = models.DB.Model(&models.LineItem{}).Where("expense_id = ?", expense.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestLineItemResolvesTileFromRules() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	glossy := suite.createTestTile(models.Tile{})
	fallback := suite.createTestTile(models.Tile{})
	glossyID := glossy.ID

	_ = suite.createTestZone(models.Zone{RoomID: room.ID, TileID: &glossyID, RequiredQty: decimal.NewFromFloat(30)})

	// Lower priority number wins; the catch-all must not shadow the
	// specific rule
	_ = suite.createTestTileMatchRule(models.TileMatchRule{Priority: 2, Match: "*", TileID: fallback.ID})
	_ = suite.createTestTileMatchRule(models.TileMatchRule{Priority: 1, Match: "Glossy*", TileID: glossy.ID})

	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "Glossy White 60x60",
		Qty:       decimal.NewFromFloat(20),
	})

	if assert.NotNil(suite.T(), lineItem.TileID) {
		assert.Equal(suite.T(), glossy.ID, *lineItem.TileID)
	}

	requirement := suite.requirement(room.ID, glossy.ID)
	assert.True(suite.T(), requirement.ReceivedQty.Equal(decimal.NewFromFloat(20)), "received quantity is %s", requirement.ReceivedQty)
}

// No rule matches: the line stays untagged and is no fulfillment event.
func (suite *TestSuiteStandard) TestLineItemNoRuleMatch() {
	site := suite.createTestSite(models.Site{})
	tile := suite.createTestTile(models.Tile{})

	_ = suite.createTestTileMatchRule(models.TileMatchRule{Priority: 1, Match: "Glossy*", TileID: tile.ID})

	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "Grout, gray",
		Qty:       decimal.NewFromFloat(5),
	})

	assert.Nil(suite.T(), lineItem.TileID)
	assert.False(suite.T(), lineItem.Unmatched)
}

func (suite *TestSuiteStandard) TestLineItemQtyNotPositive() {
	site := suite.createTestSite(models.Site{})
	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})

	err := models.DB.Create(&models.LineItem{
		ExpenseID: expense.ID,
		Name:      "tiles",
		Qty:       decimal.Zero,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrLineItemQtyNotPositive)
}
