package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/test"
)

// requirementFixture creates a site with one room and one zone requiring
// 30 units of a tile.
func (suite *TestSuiteStandard) requirementFixture() (v1.SiteResponse, v1.RoomResponse, v1.TileResponse) {
	site := createTestSite(suite.T(), v1.SiteEditable{})
	room := createTestRoom(suite.T(), v1.RoomEditable{SiteID: site.Data.ID})
	tile := createTestTile(suite.T(), v1.TileEditable{})
	tileID := tile.Data.ID

	_ = createTestZone(suite.T(), v1.ZoneEditable{
		RoomID:      room.Data.ID,
		TileID:      &tileID,
		Name:        "floor",
		RequiredQty: decimal.NewFromFloat(30),
	})

	return site, room, tile
}

func (suite *TestSuiteStandard) TestRequirementsProjection() {
	site, room, tile := suite.requirementFixture()
	tileID := tile.Data.ID

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: site.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Tiles, first batch",
		Qty:       decimal.NewFromFloat(25.5),
		TileID:    &tileID,
	})

	requirement := getTestRequirement(suite, room.Data.ID.String(), tile.Data.ID.String(), http.StatusOK)
	assert.True(suite.T(), requirement.Data.ReceivedQty.Equal(decimal.NewFromFloat(25.5)), "received quantity is %s", requirement.Data.ReceivedQty)
	assert.True(suite.T(), requirement.Data.ShortageQty.Equal(decimal.NewFromFloat(4.5)), "shortage is %s", requirement.Data.ShortageQty)
	assert.Equal(suite.T(), "shortage", requirement.Data.Status)

	// Over-delivery projects to a shortage of zero
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Tiles, second batch",
		Qty:       decimal.NewFromFloat(10),
		TileID:    &tileID,
	})

	requirement = getTestRequirement(suite, room.Data.ID.String(), tile.Data.ID.String(), http.StatusOK)
	assert.True(suite.T(), requirement.Data.ShortageQty.IsZero(), "shortage is %s", requirement.Data.ShortageQty)
	assert.Equal(suite.T(), "fulfilled", requirement.Data.Status)
}

func (suite *TestSuiteStandard) TestRequirementsGetSingleErrors() {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Unknown pair", fmt.Sprintf("%s/%s", uuid.New(), uuid.New()), http.StatusNotFound},
		{"Invalid room ID", fmt.Sprintf("notAUUID/%s", uuid.New()), http.StatusBadRequest},
		{"Invalid tile ID", fmt.Sprintf("%s/23", uuid.New()), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/requirements/%s", tt.path), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestRequirementsGetFilter() {
	site, room, tile := suite.requirementFixture()
	otherSite, _, otherTile := suite.requirementFixture()

	// Fulfill the second site's requirement
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: otherSite.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	otherTileID := otherTile.Data.ID
	_ = createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Tiles",
		Qty:       decimal.NewFromFloat(30),
		TileID:    &otherTileID,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 2},
		{"Site", fmt.Sprintf("site=%s", site.Data.ID), 1},
		{"Room", fmt.Sprintf("room=%s", room.Data.ID), 1},
		{"Tile", fmt.Sprintf("tile=%s", tile.Data.ID), 1},
		{"Status shortage", "status=shortage", 1},
		{"Status fulfilled", "status=fulfilled", 1},
		{"Site and status", fmt.Sprintf("site=%s&status=fulfilled", site.Data.ID), 0},
		{"Offset 1", "offset=1", 1},
		{"Offset 5", "offset=5", 0},
		{"Limit 1", "limit=1", 1},
		{"Limit 0", "limit=0", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/requirements?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RequirementListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// Requirements cannot be written through the API.
func (suite *TestSuiteStandard) TestRequirementsReadOnly() {
	_, room, tile := suite.requirementFixture()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "http://example.com/v1/requirements"},
		{http.MethodPatch, fmt.Sprintf("http://example.com/v1/requirements/%s/%s", room.Data.ID, tile.Data.ID)},
		{http.MethodDelete, fmt.Sprintf("http://example.com/v1/requirements/%s/%s", room.Data.ID, tile.Data.ID)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusMethodNotAllowed)
		})
	}
}

// The nested room endpoint returns the requirements of that room only.
func (suite *TestSuiteStandard) TestRoomRequirements() {
	_, room, tile := suite.requirementFixture()
	_, _, _ = suite.requirementFixture()

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/rooms/%s/requirements", room.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RequirementListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, 1) {
		assert.Equal(suite.T(), tile.Data.ID, response.Data[0].TileID)
	}
}

func (suite *TestSuiteStandard) TestRoomRequirementsUnknownRoom() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/rooms/%s/requirements", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
