package v1

import (
	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	signingOracleService forgery.SigningOracleService,
	oracleQueryService forgery.OracleQueryService) {

	v1 := r.Group(BasePath) // lookup in version file

	// Oracle Routes
	oracleHandler := NewOracleHandler(signingOracleService, oracleQueryService)
	v1.GET("/oracle/public-key", oracleHandler.GetPublicKey)
	v1.POST("/oracle/sign", oracleHandler.Sign)
	v1.POST("/oracle/verify", oracleHandler.Verify)
	v1.GET("/oracle/queries", oracleHandler.ListQueries)
	v1.GET("/oracle/queries/:id", oracleHandler.GetQueryByID)
}
