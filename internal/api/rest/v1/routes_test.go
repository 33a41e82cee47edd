//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSigningOracleService := new(MockSigningOracleService)
	mockOracleQueryService := new(MockOracleQueryService)

	r := gin.New()

	mockSigningOracleService.On("PublicKey", mock.Anything).Return(nil, assert.AnError)
	mockOracleQueryService.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	mockOracleQueryService.On("GetByID", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	SetupRoutes(r, mockSigningOracleService, mockOracleQueryService)

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"GET", "/api/v1/trsa/oracle/public-key"},
		{"POST", "/api/v1/trsa/oracle/sign"},
		{"POST", "/api/v1/trsa/oracle/verify"},
		{"GET", "/api/v1/trsa/oracle/queries"},
		{"GET", "/api/v1/trsa/oracle/queries/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404 from the router)
			assert.NotEqual(t, "404 page not found", w.Body.String(), "Route should be registered")
		})
	}
}
