// Package http exposes the freight service over a REST API built on echo.
// Handlers translate between wire DTOs and application commands/queries and
// map domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/loyalty"
	"freight/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	advanceStageHandler commands.AdvanceStageCommandHandler
	confirmStageHandler commands.ConfirmStageCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	publishRateHandler  commands.PublishRateCommandHandler
	setMarginHandler    commands.SetMarginRuleCommandHandler
	setLoyaltyHandler   commands.SetLoyaltyScheduleCommandHandler

	getQuoteHandler        queries.GetQuoteQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceStageHandler commands.AdvanceStageCommandHandler,
	confirmStageHandler commands.ConfirmStageCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	publishRateHandler commands.PublishRateCommandHandler,
	setMarginHandler commands.SetMarginRuleCommandHandler,
	setLoyaltyHandler commands.SetLoyaltyScheduleCommandHandler,
	getQuoteHandler queries.GetQuoteQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		advanceStageHandler:    advanceStageHandler,
		confirmStageHandler:    confirmStageHandler,
		cancelOrderHandler:     cancelOrderHandler,
		publishRateHandler:     publishRateHandler,
		setMarginHandler:       setMarginHandler,
		setLoyaltyHandler:      setLoyaltyHandler,
		getQuoteHandler:        getQuoteHandler,
		getOrderHandler:        getOrderHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/quotes", s.GetQuote)
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:id/stages/:name/advance", s.AdvanceStage)
	v1.POST("/orders/:id/stages/:name/confirm", s.ConfirmStage)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.POST("/rates", s.PublishRate)
	v1.PUT("/margin-rules", s.SetMarginRule)
	v1.PUT("/loyalty-tiers", s.SetLoyaltySchedule)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps a domain error onto an HTTP status with a structured reason.
// Internal detail is kept out of 5xx responses.
func fail(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{http.StatusNotFound, err.Error()})
	case errors.Is(err, errs.ErrNoRateAvailable),
		errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{http.StatusUnprocessableEntity, err.Error()})
	case errors.Is(err, errs.ErrConfigurationMissing),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return ctx.JSON(http.StatusConflict, errorResponse{http.StatusConflict, err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{http.StatusBadRequest, err.Error()})
	case errors.Is(err, errs.ErrStoreUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable,
			errorResponse{http.StatusServiceUnavailable, "store unavailable"})
	default:
		return ctx.JSON(http.StatusInternalServerError,
			errorResponse{http.StatusInternalServerError, "internal error"})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{http.StatusBadRequest, message})
}

func parseUUID(raw string) (kernel.UUID, error) {
	return kernel.UUIDFromString(raw)
}

type quoteRequest struct {
	ClientID    string `json:"clientId"`
	AgentID     string `json:"agentId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	ServiceType string `json:"serviceType"`
}

type quoteResponse struct {
	FinalPrice      string `json:"finalPrice"`
	Currency        string `json:"currency"`
	RawPrice        string `json:"rawPrice"`
	MarginPercent   string `json:"marginPercent"`
	DiscountPercent string `json:"discountPercent"`
}

// GetQuote handles POST /api/v1/quotes - calculates an advisory quote.
func (s *Server) GetQuote(ctx echo.Context) error {
	var req quoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	clientID, err := parseUUID(req.ClientID)
	if err != nil {
		return badRequest(ctx, "invalid clientId")
	}
	agentID, err := parseUUID(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}
	serviceType, err := kernel.ParseServiceType(req.ServiceType)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetQuoteQuery(clientID, agentID, req.Origin, req.Destination, serviceType)
	if err != nil {
		return fail(ctx, err)
	}

	quote, err := s.getQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteResponse{
		FinalPrice:      quote.FinalPrice.String(),
		Currency:        quote.Currency,
		RawPrice:        quote.RawPrice.String(),
		MarginPercent:   quote.MarginPercent.String(),
		DiscountPercent: quote.DiscountPercent.String(),
	})
}

type createOrderRequest struct {
	ClientID    string `json:"clientId"`
	AgentID     string `json:"agentId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	ServiceType string `json:"serviceType"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - places a priced order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	clientID, err := parseUUID(req.ClientID)
	if err != nil {
		return badRequest(ctx, "invalid clientId")
	}
	agentID, err := parseUUID(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}
	serviceType, err := kernel.ParseServiceType(req.ServiceType)
	if err != nil {
		return fail(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, clientID, agentID,
		req.Origin, req.Destination, serviceType)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// AdvanceStage handles POST /api/v1/orders/:id/stages/:name/advance.
func (s *Server) AdvanceStage(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewAdvanceStageCommand(orderID, ctx.Param("name"))
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.advanceStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type confirmStageRequest struct {
	ClientID string `json:"clientId"`
}

// ConfirmStage handles POST /api/v1/orders/:id/stages/:name/confirm.
func (s *Server) ConfirmStage(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req confirmStageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	clientID, err := parseUUID(req.ClientID)
	if err != nil {
		return badRequest(ctx, "invalid clientId")
	}

	cmd, err := commands.NewConfirmStageCommand(orderID, ctx.Param("name"), clientID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.confirmStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type orderStageResponse struct {
	Name                 string     `json:"name"`
	Sequence             int        `json:"sequence"`
	Status               string     `json:"status"`
	RequiresConfirmation bool       `json:"requiresConfirmation"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
}

type orderResponse struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"orderNumber"`
	ClientID        string               `json:"clientId"`
	Origin          string               `json:"origin"`
	Destination     string               `json:"destination"`
	ServiceType     string               `json:"serviceType"`
	Status          string               `json:"status"`
	TotalPrice      string               `json:"totalPrice"`
	Currency        string               `json:"currency"`
	RawPrice        string               `json:"rawPrice"`
	MarginPercent   string               `json:"marginPercent"`
	DiscountPercent string               `json:"discountPercent"`
	Stages          []orderStageResponse `json:"stages"`
}

// GetOrder handles GET /api/v1/orders/:id - the tracking view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	stages := make([]orderStageResponse, len(result.Stages))
	for i, stage := range result.Stages {
		stages[i] = orderStageResponse{
			Name:                 stage.Name,
			Sequence:             stage.Sequence,
			Status:               stage.Status,
			RequiresConfirmation: stage.RequiresConfirmation,
			CompletedAt:          stage.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, orderResponse{
		ID:              result.ID.String(),
		OrderNumber:     result.OrderNumber,
		ClientID:        result.ClientID.String(),
		Origin:          result.Origin,
		Destination:     result.Destination,
		ServiceType:     result.ServiceType,
		Status:          result.Status,
		TotalPrice:      result.TotalPrice.String(),
		Currency:        result.Currency,
		RawPrice:        result.RawPrice.String(),
		MarginPercent:   result.MarginPercent.String(),
		DiscountPercent: result.DiscountPercent.String(),
		Stages:          stages,
	})
}

type activeOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`
	TotalPrice  string `json:"totalPrice"`
	Currency    string `json:"currency"`
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	results, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]activeOrderResponse, len(results))
	for i, result := range results {
		response[i] = activeOrderResponse{
			ID:          result.ID.String(),
			OrderNumber: result.OrderNumber,
			Origin:      result.Origin,
			Destination: result.Destination,
			ServiceType: result.ServiceType,
			Status:      result.Status,
			TotalPrice:  result.TotalPrice.String(),
			Currency:    result.Currency,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type publishRateRequest struct {
	AgentID       string `json:"agentId"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	ServiceType   string `json:"serviceType"`
	ContainerType string `json:"containerType"`
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	ValidFrom     string `json:"validFrom"`
	ValidTo       string `json:"validTo"`
}

type publishRateResponse struct {
	ID string `json:"id"`
}

// PublishRate handles POST /api/v1/rates - an agent publishes a rate quote.
// Validity bounds are calendar dates (2006-01-02).
func (s *Server) PublishRate(ctx echo.Context) error {
	var req publishRateRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agentID, err := parseUUID(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}
	serviceType, err := kernel.ParseServiceType(req.ServiceType)
	if err != nil {
		return fail(ctx, err)
	}

	amount, err := decimal.NewFromString(req.Price)
	if err != nil {
		return badRequest(ctx, "invalid price")
	}
	price, err := kernel.NewMoney(amount, req.Currency)
	if err != nil {
		return fail(ctx, err)
	}

	validFrom, err := time.Parse(time.DateOnly, req.ValidFrom)
	if err != nil {
		return badRequest(ctx, "invalid validFrom, expected YYYY-MM-DD")
	}
	validTo, err := time.Parse(time.DateOnly, req.ValidTo)
	if err != nil {
		return badRequest(ctx, "invalid validTo, expected YYYY-MM-DD")
	}

	rateID := kernel.NewUUID()
	cmd, err := commands.NewPublishRateCommand(rateID, agentID,
		req.Origin, req.Destination, serviceType, req.ContainerType, price, validFrom, validTo)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.publishRateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, publishRateResponse{ID: rateID.String()})
}

type loyaltyTierRequest struct {
	Name            string `json:"name"`
	MinOrders       int    `json:"minOrders"`
	MinAmount       string `json:"minAmount"`
	DiscountPercent string `json:"discountPercent"`
}

type setLoyaltyScheduleRequest struct {
	Tiers []loyaltyTierRequest `json:"tiers"`
}

// SetLoyaltySchedule handles PUT /api/v1/loyalty-tiers - replaces the whole
// discount schedule. Tiers are given ascending by threshold; an empty list
// turns all discounts off.
func (s *Server) SetLoyaltySchedule(ctx echo.Context) error {
	var req setLoyaltyScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	tiers := make([]loyalty.Tier, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		minAmount, err := decimal.NewFromString(t.MinAmount)
		if err != nil {
			return badRequest(ctx, "invalid minAmount")
		}
		discountPercent, err := decimal.NewFromString(t.DiscountPercent)
		if err != nil {
			return badRequest(ctx, "invalid discountPercent")
		}

		tier, err := loyalty.NewTier(t.Name, t.MinOrders, minAmount, discountPercent)
		if err != nil {
			return fail(ctx, err)
		}
		tiers = append(tiers, tier)
	}

	schedule, err := loyalty.NewSchedule(tiers)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewSetLoyaltyScheduleCommand(schedule)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.setLoyaltyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type setMarginRuleRequest struct {
	AgentID       string `json:"agentId"`
	ServiceType   string `json:"serviceType"`
	MarginPercent string `json:"marginPercent"`
}

// SetMarginRule handles PUT /api/v1/margin-rules - configures the markup
// applied to an agent's raw rates for a service type.
func (s *Server) SetMarginRule(ctx echo.Context) error {
	var req setMarginRuleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agentID, err := parseUUID(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}
	serviceType, err := kernel.ParseServiceType(req.ServiceType)
	if err != nil {
		return fail(ctx, err)
	}

	marginPercent, err := decimal.NewFromString(req.MarginPercent)
	if err != nil {
		return badRequest(ctx, "invalid marginPercent")
	}

	cmd, err := commands.NewSetMarginRuleCommand(kernel.NewUUID(), agentID, serviceType, marginPercent)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.setMarginHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
