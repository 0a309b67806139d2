package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/test"
)

func (suite *TestSuiteStandard) TestTileMatchRulesGetSortedByPriority() {
	tile := createTestTile(suite.T(), v1.TileEditable{})
	otherTile := createTestTile(suite.T(), v1.TileEditable{})

	_ = createTestTileMatchRule(suite.T(), v1.TileMatchRuleEditable{Priority: 2, Match: "*", TileID: otherTile.Data.ID})
	_ = createTestTileMatchRule(suite.T(), v1.TileMatchRuleEditable{Priority: 1, Match: "Glossy*", TileID: tile.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/tile-match-rules", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TileMatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), uint(1), response.Data[0].Priority)
		assert.Equal(suite.T(), "Glossy*", response.Data[0].Match)
	}
}

func (suite *TestSuiteStandard) TestTileMatchRulesUnknownTile() {
	_ = createTestTileMatchRule(suite.T(), v1.TileMatchRuleEditable{Priority: 1, Match: "*"}, http.StatusNotFound)
}

// An updated rule only affects line items created after the update.
func (suite *TestSuiteStandard) TestTileMatchRulesUpdate() {
	site, _, tile := suite.requirementFixture()

	rule := createTestTileMatchRule(suite.T(), v1.TileMatchRuleEditable{Priority: 1, Match: "Matte*", TileID: tile.Data.ID})

	r := test.Request(suite.T(), http.MethodPatch, rule.Data.Links.Self, map[string]any{
		"match": "Glossy*",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{SiteID: site.Data.ID, TotalAmount: decimal.NewFromFloat(500)})
	lineItem := createTestLineItem(suite.T(), v1.LineItemEditable{
		ExpenseID: expense.Data.ID,
		Name:      "Glossy White 60x60 box",
		Qty:       decimal.NewFromFloat(5),
	})

	if assert.NotNil(suite.T(), lineItem.Data.TileID) {
		assert.Equal(suite.T(), tile.Data.ID, *lineItem.Data.TileID)
	}
}

func (suite *TestSuiteStandard) TestTileMatchRulesDelete() {
	tile := createTestTile(suite.T(), v1.TileEditable{})
	rule := createTestTileMatchRule(suite.T(), v1.TileMatchRuleEditable{Priority: 1, Match: "*", TileID: tile.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
