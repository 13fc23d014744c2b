package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"solana-batch-auction/internal/auction"
	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/observability"
	"solana-batch-auction/internal/storage"
)

// createOrder handles POST /api/orders.
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		errorJSON(c, http.StatusBadRequest, msg)
		return
	}

	order := &domain.Order{
		IntentID:    req.IntentID,
		SrcToken:    req.SrcToken,
		SrcAddress:  req.SrcAddress,
		SrcAmount:   req.SrcAmount,
		DstToken:    req.DstToken,
		DstAddress:  req.DstAddress,
		MinReceived: req.MinReceived,
		Expiration:  req.Expiration,
		Status:      domain.OrderStatusOpen,
	}
	if err := s.orders.Insert(c.Request.Context(), order); err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			errorJSON(c, http.StatusBadRequest, "invalid order")
			return
		}
		internalError(c, err)
		return
	}

	observability.RecordOrderCreated()
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// listOrders handles GET /api/orders.
func (s *Server) listOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	orders, err := s.orders.List(c.Request.Context(), storage.OrderFilter{
		SrcAddress: c.Query("srcAddress"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// getOrder handles GET /api/orders/:orderId.
func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("orderId"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Order not found")
		return
	}

	order, err := s.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "Order not found")
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// listBatches handles GET /api/batches.
func (s *Server) listBatches(c *gin.Context) {
	filter := storage.BatchFilter{Status: domain.BatchStatus(c.Query("status"))}

	for _, q := range []struct {
		name string
		dst  **int64
	}{
		{"startBatchId", &filter.StartBatchID},
		{"endBatchId", &filter.EndBatchID},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "startBatchId and endBatchId must be valid integers")
			return
		}
		*q.dst = &v
	}

	batches, err := s.batches.List(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}

	batchIDs := make([]int64, len(batches))
	for i, b := range batches {
		batchIDs[i] = b.BatchID
	}
	solutionsByBatch, err := s.solutions.ListByBatches(c.Request.Context(), batchIDs)
	if err != nil {
		internalError(c, err)
		return
	}

	result := make([]batchResponse, 0, len(batches))
	for _, b := range batches {
		resp, err := s.enrichBatch(c, b, solutionsByBatch[b.BatchID])
		if err != nil {
			internalError(c, err)
			return
		}
		result = append(result, resp)
	}

	c.JSON(http.StatusOK, result)
}

// getBatch handles GET /api/batches/:batchId.
func (s *Server) getBatch(c *gin.Context) {
	id, err := parseID(c.Param("batchId"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Batch not found")
		return
	}

	batch, err := s.batches.GetBySeq(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "Batch not found")
			return
		}
		internalError(c, err)
		return
	}

	sols, err := s.solutions.ListByBatch(c.Request.Context(), batch.BatchID)
	if err != nil {
		internalError(c, err)
		return
	}

	resp, err := s.enrichBatch(c, batch, sols)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createSolution handles POST /api/solutions.
func (s *Server) createSolution(c *gin.Context) {
	var req createSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sol, err := s.svc.SubmitSolution(c.Request.Context(), req.AgentName, req.BatchID, req.Route, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, auction.ErrBatchNotFound):
			errorJSON(c, http.StatusNotFound, "Batch not found")
		case errors.Is(err, auction.ErrBatchFilled):
			errorJSON(c, http.StatusBadRequest, "Cannot add solution to a filled batch")
		case errors.Is(err, auction.ErrAgentNotFound):
			errorJSON(c, http.StatusNotFound, "Agent not found")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, toSolutionResponse(sol, true))
}

// enrichBatch shapes a batch for the wire: member orders expanded, solutions
// attached in submission order, and metadata resolved for every token the
// batch touches.
func (s *Server) enrichBatch(c *gin.Context, batch *domain.Batch, sols []*domain.Solution) (batchResponse, error) {
	ctx := c.Request.Context()

	orders := make([]*domain.Order, 0, len(batch.OrderIDs))
	for _, id := range batch.OrderIDs {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return batchResponse{}, err
		}
		orders = append(orders, o)
	}

	solutions := make([]solutionResponse, 0, len(sols))
	for _, sol := range sols {
		solutions = append(solutions, toSolutionResponse(sol, false))
	}

	var tokens []string
	for _, o := range orders {
		tokens = append(tokens, o.SrcToken, o.DstToken)
	}
	for _, sol := range sols {
		for _, step := range sol.Route {
			tokens = append(tokens, step.SentToken)
		}
	}

	tokenMeta := map[string]domain.TokenMetadata{}
	if s.metadata != nil {
		tokenMeta = s.metadata.Multi(ctx, tokens)
	}

	return batchResponse{
		BatchID:       batch.BatchID,
		Status:        string(batch.Status),
		Orders:        toOrderResponses(orders),
		Solutions:     solutions,
		FillData:      batch.Fill,
		TokenMetadata: tokenMeta,
		CreatedAt:     batch.CreatedAt,
	}, nil
}
