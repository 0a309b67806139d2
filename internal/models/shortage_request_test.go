package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sitewise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestShortageRequestDefaultsToPending() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})

	shortageRequest := suite.createTestShortageRequest(models.ShortageRequest{
		SiteID:       site.ID,
		RoomID:       room.ID,
		TileID:       tile.ID,
		RequestedQty: decimal.NewFromFloat(4.5),
	})

	assert.Equal(suite.T(), models.ShortagePending, shortageRequest.Status)
}

func (suite *TestSuiteStandard) TestShortageRequestTransitions() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})

	tests := []struct {
		name string
		from models.ShortageStatus
		to   models.ShortageStatus
		err  error
	}{
		{"pending to approved", models.ShortagePending, models.ShortageApproved, nil},
		{"pending to rejected", models.ShortagePending, models.ShortageRejected, nil},
		{"pending to received", models.ShortagePending, models.ShortageReceived, models.ErrShortageTransitionInvalid},
		{"approved to received", models.ShortageApproved, models.ShortageReceived, nil},
		{"approved to rejected", models.ShortageApproved, models.ShortageRejected, models.ErrShortageTransitionInvalid},
		{"rejected to approved", models.ShortageRejected, models.ShortageApproved, models.ErrShortageTransitionInvalid},
		{"received to pending", models.ShortageReceived, models.ShortagePending, models.ErrShortageTransitionInvalid},
		{"pending to garbage", models.ShortagePending, "garbage", models.ErrShortageStatusInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			shortageRequest := suite.createTestShortageRequest(models.ShortageRequest{
				SiteID:       site.ID,
				RoomID:       room.ID,
				TileID:       tile.ID,
				RequestedQty: decimal.NewFromFloat(1),
			})

			// Walk the request into the starting state without hooks
			// validating intermediate steps
			err := models.DB.Model(&models.ShortageRequest{}).
				Where("id = ?", shortageRequest.ID).
				UpdateColumn("status", tt.from).Error
			assert.Nil(t, err)
			shortageRequest.Status = tt.from

			err = models.DB.Model(&shortageRequest).Updates(models.ShortageRequest{Status: tt.to}).Error
			if tt.err == nil {
				assert.Nil(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestShortageReceiptCreditsRequirement() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	_ = suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		RequiredQty: decimal.NewFromFloat(30),
	})

	shortageRequest := suite.createTestShortageRequest(models.ShortageRequest{
		SiteID:       site.ID,
		RoomID:       room.ID,
		TileID:       tile.ID,
		RequestedQty: decimal.NewFromFloat(4.5),
	})

	err := models.DB.Model(&shortageRequest).Updates(models.ShortageRequest{Status: models.ShortageApproved}).Error
	assert.Nil(suite.T(), err)

	// Approval alone is no fulfillment event
	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.ReceivedQty.IsZero(), "received quantity is %s", requirement.ReceivedQty)

	err = models.DB.Model(&shortageRequest).Updates(models.ShortageRequest{Status: models.ShortageReceived}).Error
	assert.Nil(suite.T(), err)

	requirement = suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.ReceivedQty.Equal(decimal.NewFromFloat(4.5)), "received quantity is %s", requirement.ReceivedQty)
}

// A receipt for a (room, tile) pair without a requirement row is dropped
// as a no-op instead of failing the status change.
func (suite *TestSuiteStandard) TestShortageReceiptWithoutRequirement() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})

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

	var count int64
	_ = models.DB.Model(&models.Requirement{}).Where("room_id = ?", room.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// Deleting a received request keeps the credited quantity: the material
// was delivered, removing the paper trail does not undeliver it.
func (suite *TestSuiteStandard) TestShortageDeleteKeepsCredit() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})
	tileID := tile.ID

	_ = suite.createTestZone(models.Zone{
		RoomID:      room.ID,
		TileID:      &tileID,
		RequiredQty: decimal.NewFromFloat(30),
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

	err = models.DB.Delete(&shortageRequest).Error
	assert.Nil(suite.T(), err)

	requirement := suite.requirement(room.ID, tile.ID)
	assert.True(suite.T(), requirement.ReceivedQty.Equal(decimal.NewFromFloat(4.5)), "received quantity is %s", requirement.ReceivedQty)
}

func (suite *TestSuiteStandard) TestShortageRoomNotInSite() {
	site := suite.createTestSite(models.Site{})
	otherSite := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: otherSite.ID})
	tile := suite.createTestTile(models.Tile{})

	err := models.DB.Create(&models.ShortageRequest{
		SiteID:       site.ID,
		RoomID:       room.ID,
		TileID:       tile.ID,
		RequestedQty: decimal.NewFromFloat(1),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrShortageRoomNotInSite)
}

func (suite *TestSuiteStandard) TestShortageQtyNotPositive() {
	site := suite.createTestSite(models.Site{})
	room := suite.createTestRoom(models.Room{SiteID: site.ID})
	tile := suite.createTestTile(models.Tile{})

	err := models.DB.Create(&models.ShortageRequest{
		SiteID: site.ID,
		RoomID: room.ID,
		TileID: tile.ID,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrShortageQtyNotPositive)
}
