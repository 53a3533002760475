package rest

import (
	"context"
	"errors"
	"myStorefront/domain"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, customerID uint, limit int) ([]domain.RecommendationResult, error)
		Context(ctx context.Context, customerID uint) (*domain.RecommendationContext, error)
		Debug(ctx context.Context, customerID uint) (*domain.RecommendationDebug, error)
		AssistantRecommendations(ctx context.Context, customerID uint) ([]domain.FallbackItem, error)
	}

	RecommendQuery struct {
		Limit int `query:"limit" validate:"omitempty,gte=1,lte=20"`
	}
)

func NewRecommendationHandler(recommendService RecommendService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:         validator.New(),
		recommendService: recommendService,
		// generation alone may take up to 30s
		timeout: 35 * time.Second,
	}
}

// GetRecommendations serves GET /recommendations/:customer_id?limit=n.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	customerIdStr := c.Param("customer_id")

	customerId, err := strconv.ParseUint(customerIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid customer id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be between 1 and 20"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()

	results, err := h.recommendService.Recommend(ctx, uint(customerId), q.Limit)

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error("Failed to build recommendations", err)
		if errors.Is(err, domain.ErrCustomerNotFound) ||
			errors.Is(err, domain.ErrNoPurchaseHistory) ||
			errors.Is(err, domain.ErrNoRecommendations) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"customer_id":     customerId,
		"count":           len(results),
		"recommendations": results,
	}))
}

// GetRecommendationContext serves GET /recommendations/:customer_id/context,
// a debugging view of the data sources behind a recommendation.
func (h *RecommendationHandler) GetRecommendationContext(c echo.Context) error {
	customerIdStr := c.Param("customer_id")

	customerId, err := strconv.ParseUint(customerIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid customer id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recCtx, err := h.recommendService.Context(ctx, uint(customerId))
	if err != nil {
		logger.Error("Failed to build recommendation context", err)
		if errors.Is(err, domain.ErrCustomerNotFound) || errors.Is(err, domain.ErrNoPurchaseHistory) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recCtx))
}

// GetRecommendationDebug serves GET /recommendations/:customer_id/debug,
// exposing every data source behind a recommendation alongside the final merge.
func (h *RecommendationHandler) GetRecommendationDebug(c echo.Context) error {
	customerIdStr := c.Param("customer_id")

	customerId, err := strconv.ParseUint(customerIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid customer id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	debug, err := h.recommendService.Debug(ctx, uint(customerId))
	if err != nil {
		logger.Error("Failed to build recommendation debug view", err)
		if errors.Is(err, domain.ErrCustomerNotFound) || errors.Is(err, domain.ErrNoPurchaseHistory) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(debug))
}

// AssistantRecommendations serves POST /customers/:id/recommendations, the
// free-form shopping assistant variant.
func (h *RecommendationHandler) AssistantRecommendations(c echo.Context) error {
	customerIdStr := c.Param("id")

	customerId, err := strconv.ParseUint(customerIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid customer id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.recommendService.AssistantRecommendations(ctx, uint(customerId))
	if err != nil {
		logger.Error("Failed to build assistant recommendations", err)
		if errors.Is(err, domain.ErrCustomerNotFound) || errors.Is(err, domain.ErrNoPurchaseHistory) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"customer_id":     customerId,
		"recommendations": items,
	}))
}
