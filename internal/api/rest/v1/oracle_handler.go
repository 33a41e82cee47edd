package v1

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OracleHandler defines the interface for handling signing oracle operations
type OracleHandler interface {
	GetPublicKey(ctx *gin.Context)
	Sign(ctx *gin.Context)
	Verify(ctx *gin.Context)
	ListQueries(ctx *gin.Context)
	GetQueryByID(ctx *gin.Context)
}

// oracleHandler struct holds the services
type oracleHandler struct {
	signingOracleService forgery.SigningOracleService
	oracleQueryService   forgery.OracleQueryService
}

// NewOracleHandler creates a new OracleHandler
func NewOracleHandler(signingOracleService forgery.SigningOracleService, oracleQueryService forgery.OracleQueryService) OracleHandler {
	return &oracleHandler{
		signingOracleService: signingOracleService,
		oracleQueryService:   oracleQueryService,
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrDomainViolation):
		return http.StatusBadRequest
	case errors.Is(err, forgery.ErrOracleRefused):
		return http.StatusForbidden
	case errors.Is(err, forgery.ErrQueryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetPublicKey handles the GET request for the oracle public key
// @Summary Retrieve the oracle public key
// @Description Fetch the modulus n and public exponent e as base-10 strings.
// @Tags Oracle
// @Produce json
// @Success 200 {object} PublicKeyResponse
// @Failure 500 {object} ErrorResponse
// @Router /oracle/public-key [get]
func (handler *oracleHandler) GetPublicKey(ctx *gin.Context) {
	pub, err := handler.signingOracleService.PublicKey(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error fetching public key: %v", err.Error())
		ctx.JSON(statusFor(err), errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, NewPublicKeyResponse(pub))
}

// Sign handles the POST request to sign a message with the oracle key
// @Summary Sign a message
// @Description Compute the raw RSA signature m^d mod n. Denylisted messages are refused.
// @Tags Oracle
// @Accept json
// @Produce json
// @Param requestBody body SignRequest true "Message to sign"
// @Success 200 {object} SignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /oracle/sign [post]
func (handler *oracleHandler) Sign(ctx *gin.Context) {
	var request SignRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid sign request: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	m, err := parseDecimal("message", request.Message)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = err.Error()
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	query, err := handler.signingOracleService.SignAndRecord(ctx, m)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error signing message: %v", err.Error())
		ctx.JSON(statusFor(err), errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, SignResponse{
		ID:        query.ID,
		Message:   query.Message,
		Signature: query.Signature,
	})
}

// Verify handles the POST request to verify a signature under the oracle key
// @Summary Verify a signature
// @Description Check s^e mod n == m under the oracle public key.
// @Tags Oracle
// @Accept json
// @Produce json
// @Param requestBody body VerifyRequest true "Message and signature"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Router /oracle/verify [post]
func (handler *oracleHandler) Verify(ctx *gin.Context) {
	var request VerifyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid verify request: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	m, err := parseDecimal("message", request.Message)
	if err == nil {
		var s *big.Int
		s, err = parseDecimal("signature", request.Signature)
		if err == nil {
			var valid bool
			valid, err = handler.signingOracleService.Verify(ctx, m, s)
			if err == nil {
				ctx.JSON(http.StatusOK, VerifyResponse{Valid: valid})
				return
			}
		}
	}

	var errorResponse ErrorResponse
	errorResponse.Message = fmt.Sprintf("error verifying signature: %v", err.Error())
	ctx.JSON(statusFor(err), errorResponse)
}

// ListQueries handles the GET request to list journaled oracle queries
// @Summary List oracle queries
// @Description Fetch journal entries with optional refusal filter, creation date, pagination and sorting.
// @Tags Oracle
// @Produce json
// @Param refused query bool false "Only refused (true) or answered (false) queries"
// @Param dateTimeCreated query string false "Created at or after (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortOrder query string false "Sort order by creation date (asc/desc)"
// @Success 200 {array} OracleQueryResponse
// @Failure 400 {object} ErrorResponse
// @Router /oracle/queries [get]
func (handler *oracleHandler) ListQueries(ctx *gin.Context) {
	filter := forgery.NewOracleQueryFilter()

	if refused := ctx.Query("refused"); len(refused) > 0 {
		parsed, err := strconv.ParseBool(refused)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("invalid refused filter: %v", refused)
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		filter.Refused = &parsed
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err == nil {
			filter.DateTimeCreated = parsedTime
		}
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		filter.Limit = utils.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		filter.Offset = utils.ConvertToInt(offset)
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		filter.SortOrder = sortOrder
	}

	if err := filter.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	queries, err := handler.oracleQueryService.List(ctx, filter)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(statusFor(err), errorResponse)
		return
	}

	var listResponse = []OracleQueryResponse{}
	for _, q := range queries {
		listResponse = append(listResponse, NewOracleQueryResponse(q))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetQueryByID handles the GET request to retrieve a journaled oracle query by ID
// @Summary Retrieve an oracle query by ID
// @Tags Oracle
// @Produce json
// @Param id path string true "Query ID"
// @Success 200 {object} OracleQueryResponse
// @Failure 404 {object} ErrorResponse
// @Router /oracle/queries/{id} [get]
func (handler *oracleHandler) GetQueryByID(ctx *gin.Context) {
	queryID := ctx.Param("id")

	query, err := handler.oracleQueryService.GetByID(ctx, queryID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("query with id %s not found", queryID)
		ctx.JSON(statusFor(err), errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, NewOracleQueryResponse(query))
}
