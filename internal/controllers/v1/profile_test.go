package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/test"
)

func (suite *TestSuiteStandard) TestProfilesCreateDefaultsToWorker() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Ramesh"})
	assert.Equal(suite.T(), "worker", string(profile.Data.Role))
}

func (suite *TestSuiteStandard) TestProfilesCreateInvalidRole() {
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Role: "cfo"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProfilesCreateDuplicateName() {
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Ramesh"})
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Ramesh"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProfilesGetFilter() {
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Ramesh", Role: "owner"})
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Sunita", Role: "manager"})
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Ajay"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Role owner", "role=owner", 1},
		{"Role worker", "role=worker", 1},
		{"Name", "name=Sunita", 1},
		{"Search", "search=am", 1},
		{"Limit 2", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/profiles?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ProfileListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesUpdateRole() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{})

	r := test.Request(suite.T(), http.MethodPatch, profile.Data.Links.Self, map[string]any{
		"role": "manager",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "manager", string(updated.Data.Role))
}
