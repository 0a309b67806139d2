package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sitewise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestSyncRequirementSumsZones() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	// Floor and skirting zones of the same room share the tile
	_ = suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		Name:        "floor",
		RequiredQty: decimal.NewFromFloat(20),
	})
	_ = suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		Name:        "skirting",
		RequiredQty: decimal.NewFromFloat(10),
	})

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.RequiredQty.Equal(decimal.NewFromFloat(30)), "required quantity is %s", requirement.RequiredQty)
	assert.True(suite.T(), requirement.ReceivedQty.IsZero())
}

func (suite *TestSuiteStandard) TestSyncRequirementOnZoneUpdate() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	zone := suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		RequiredQty: decimal.NewFromFloat(20),
	})

	err := models.DB.Model(&zone).Updates(models.Zone{RequiredQty: decimal.NewFromFloat(25)}).Error
	assert.Nil(suite.T(), err)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.RequiredQty.Equal(decimal.NewFromFloat(25)), "required quantity is %s", requirement.RequiredQty)
}

// Deleting the last zone drops the required quantity to zero, but the
// requirement row is kept: already received material stays accounted.
func (suite *TestSuiteStandard) TestSyncRequirementOnZoneDelete() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	zone := suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		RequiredQty: decimal.NewFromFloat(20),
	})

	err := models.DB.Delete(&zone).Error
	assert.Nil(suite.T(), err)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.RequiredQty.IsZero(), "required quantity is %s", requirement.RequiredQty)
}

// The received quantity belongs to the fulfillment producers, a zone
// write must never touch it.
func (suite *TestSuiteStandard) TestSyncRequirementKeepsReceivedQty() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	zone := suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		RequiredQty: decimal.NewFromFloat(30),
	})

	expense := suite.createTestExpense(models.Expense{SiteID: site.ID, TotalAmount: decimal.NewFromFloat(500)})
	_ = suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "tiles",
		Qty:       decimal.NewFromFloat(12),
		TileID:    &tileID,
	})

	err := models.DB.Model(&zone).Updates(models.Zone{RequiredQty: decimal.NewFromFloat(40)}).Error
	assert.Nil(suite.T(), err)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.RequiredQty.Equal(decimal.NewFromFloat(40)), "required quantity is %s", requirement.RequiredQty)
	assert.True(suite.T(), requirement.ReceivedQty.Equal(decimal.NewFromFloat(12)), "received quantity is %s", requirement.ReceivedQty)
}

// No zone ever referenced the tile: the sync must not create an empty
// requirement row.
func (suite *TestSuiteStandard) TestSyncRequirementNoZones() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})

	err := models.SyncRequirement(models.DB, models.RequirementKey{RoomID: room.ID, TileID: tile.ID})
	assert.Nil(suite.T(), err)

	var count int64
	_ = models.DB.Model(&models.Requirement{}).Where("room_id = ?", room.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// Reassigning a zone to another tile synchronizes the new tile only.
// The previous tile's requirement intentionally keeps its stale required
// quantity until one of its own zones is written again.
func (suite *TestSuiteStandard) TestZoneReassignmentLeavesOldRequirement() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	oldTile := suite.createTestTile(models.Tile{})
	newTile := suite.createTestTile(models.Tile{})
	oldTileID := oldTile.ID
	newTileID := newTile.ID

	zone := suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &oldTileID,
		RequiredQty: decimal.NewFromFloat(20),
	})

	err := models.DB.Model(&zone).Updates(models.Zone{TileID: &newTileID}).Error
	assert.Nil(suite.T(), err)

	newRequirement := suite.requirement(room.ID, newTile.ID)
	assert.True(suite.T(), newRequirement.RequiredQty.Equal(decimal.NewFromFloat(20)), "required quantity is %s", newRequirement.RequiredQty)

	oldRequirement := suite.requirement(room.ID, oldTile.ID)
	assert.True(suite.T(), oldRequirement.RequiredQty.Equal(decimal.NewFromFloat(20)), "stale required quantity is %s", oldRequirement.RequiredQty)
}

func (suite *TestSuiteStandard) TestZoneRoomImmutable() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	other := suite.createTestRoom(models.Room{SiteID: site.ID})

	zone := suite.createTestZone(models.Zone{RoomID: room.ID})

	err := models.DB.Model(&zone).Updates(models.Zone{RoomID: other.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrZoneRoomImmutable)
}

func (suite *TestSuiteStandard) TestZoneQtyNegative() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})

	err := models.DB.Create(&models.Zone{
		RoomID:      room.ID,
		RequiredQty: decimal.NewFromFloat(-1),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrZoneQtyNegative)
}

// A zone without a tile contributes to no requirement.
func (suite *TestSuiteStandard) TestZoneWithoutTile() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})

	_ = suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		RequiredQty: decimal.NewFromFloat(20),
	})

	var count int64
	_ = models.DB.Model(&models.Requirement{}).Where("room_id = ?", room.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestRequirementProjection() {
	tests := []struct {
		name     string
		required decimal.Decimal
		received decimal.Decimal
		shortage decimal.Decimal
		status   models.FulfillmentStatus
	}{
		{"open shortage", decimal.NewFromFloat(30), decimal.NewFromFloat(25.5), decimal.NewFromFloat(4.5), models.FulfillmentShortage},
		{"exactly fulfilled", decimal.NewFromFloat(30), decimal.NewFromFloat(30), decimal.Zero, models.FulfillmentFulfilled},
		{"over-delivered", decimal.NewFromFloat(30), decimal.NewFromFloat(42), decimal.Zero, models.FulfillmentFulfilled},
		{"nothing required", decimal.Zero, decimal.Zero, decimal.Zero, models.FulfillmentFulfilled},
	}

	for _, tt := range tests {
		view := models.RequirementLedger.Project(models.Requirement{
			RequiredQty: tt.required,
			ReceivedQty: tt.received,
		})

		assert.True(suite.T(), view.ShortageQty.Equal(tt.shortage), "%s: shortage is %s, should be %s", tt.name, view.ShortageQty, tt.shortage)
		assert.Equal(suite.T(), tt.status, view.Status, tt.name)
	}
}

// Both producers credit the same requirement with relative updates, so
// their increments add up regardless of ordering.
func (suite *TestSuiteStandard) TestRequirementTwoProducers() {
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
	_ = suite.createTestLineItem(models.LineItem{
		ExpenseID: expense.ID,
		Name:      "tiles",
		Qty:       decimal.NewFromFloat(20),
		TileID:    &tileID,
	})

	shortageRequest := suite.createTestShortageRequest(models.ShortageRequest{
		SiteID:       site.ID,
		RoomID:       room.ID,
		TileID:       tile.ID,
		RequestedQty: decimal.NewFromFloat(4.5),
	})

	err := models.DB.Model(&shortageRequest).Updates(models.ShortageRequest{Status: models.ShortageApproved}).Error
	assert.Nil(suite.T(), err)
	err = models.DB.Model(&shortageRequest).Updates(models.ShortageRequest{Status: models.ShortageReceived}).Error
	assert.Nil(suite.T(), err)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.ReceivedQty.Equal(decimal.NewFromFloat(24.5)), "received quantity is %s", requirement.ReceivedQty)

	view := models.RequirementLedger.Project(requirement)
	assert.True(suite.T(), view.ShortageQty.Equal(decimal.NewFromFloat(5.5)), "shortage is %s", view.ShortageQty)
	assert.Equal(suite.T(), models.FulfillmentShortage, view.Status)
}

// A failing recomputation rolls the zone write back with it.
func (suite *TestSuiteStandard) TestRequirementLedgerSyncRollback() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	err := models.RequirementLedger.Sync(models.DB, models.RequirementKey{RoomID: room.ID, TileID: tile.ID}, func(tx *gorm.DB) error {
		zone := models.Zone{RoomID: room.ID, TileID: &tileID, RequiredQty: decimal.NewFromFloat(10)}
		if err := tx.Create(&zone).Error; err != nil {
			return err
		}

		return gorm.ErrInvalidTransaction
	})
	assert.NotNil(suite.T(), err)

	var count int64
	_ = models.DB.Model(&models.Zone{}).Where("room_id = ?", room.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "rolled back zone must not exist")
}
