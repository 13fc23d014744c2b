package api

import (
	"solana-batch-auction/internal/domain"
)

// orderResponse is the wire form of an order.
type orderResponse struct {
	ID          int64  `json:"id"`
	IntentID    int64  `json:"intentId"`
	SrcToken    string `json:"srcToken"`
	SrcAddress  string `json:"srcAddress"`
	SrcAmount   int64  `json:"srcAmount"`
	DstToken    string `json:"dstToken"`
	DstAddress  string `json:"dstAddress"`
	MinReceived int64  `json:"minReceived"`
	Expiration  int64  `json:"expiration"`
	Status      string `json:"status"`
	BatchID     *int64 `json:"batchId"`
	CreatedAt   int64  `json:"createdAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		IntentID:    o.IntentID,
		SrcToken:    o.SrcToken,
		SrcAddress:  o.SrcAddress,
		SrcAmount:   o.SrcAmount,
		DstToken:    o.DstToken,
		DstAddress:  o.DstAddress,
		MinReceived: o.MinReceived,
		Expiration:  o.Expiration,
		Status:      string(o.Status),
		BatchID:     o.BatchID,
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []orderResponse {
	result := make([]orderResponse, len(orders))
	for i, o := range orders {
		result[i] = toOrderResponse(o)
	}
	return result
}

// solutionResponse is the wire form of a solution. BatchID is omitted inside
// batch reads, where it is redundant.
type solutionResponse struct {
	ID          int64              `json:"id"`
	BatchID     int64              `json:"batchId,omitempty"`
	AgentName   string             `json:"agentName"`
	Route       []domain.RouteStep `json:"route"`
	Score       float64            `json:"score"`
	SubmittedAt int64              `json:"submittedAt"`
}

func toSolutionResponse(s *domain.Solution, includeBatchID bool) solutionResponse {
	resp := solutionResponse{
		ID:          s.ID,
		AgentName:   s.AgentName,
		Route:       s.Route,
		Score:       s.Score,
		SubmittedAt: s.SubmittedAt,
	}
	if includeBatchID {
		resp.BatchID = s.BatchID
	}
	if resp.Route == nil {
		resp.Route = []domain.RouteStep{}
	}
	return resp
}

// batchResponse is the wire form of a batch, enriched with its member
// orders, the submitted solutions and metadata for every referenced token.
type batchResponse struct {
	BatchID       int64                           `json:"batchId"`
	Status        string                          `json:"status"`
	Orders        []orderResponse                 `json:"orders"`
	Solutions     []solutionResponse              `json:"solutions"`
	FillData      *domain.FillRecord              `json:"fillData"`
	TokenMetadata map[string]domain.TokenMetadata `json:"tokenMetadata"`
	CreatedAt     int64                           `json:"createdAt"`
}

// createOrderRequest is the POST /orders payload.
type createOrderRequest struct {
	IntentID    int64  `json:"intentId"`
	SrcToken    string `json:"srcToken"`
	SrcAddress  string `json:"srcAddress"`
	SrcAmount   int64  `json:"srcAmount"`
	DstToken    string `json:"dstToken"`
	DstAddress  string `json:"dstAddress"`
	MinReceived int64  `json:"minReceived"`
	Expiration  int64  `json:"expiration"`
}

func (r *createOrderRequest) validate() string {
	switch {
	case r.SrcToken == "":
		return "srcToken is required"
	case r.DstToken == "":
		return "dstToken is required"
	case r.SrcAddress == "":
		return "srcAddress is required"
	case r.DstAddress == "":
		return "dstAddress is required"
	case r.SrcAmount <= 0:
		return "srcAmount must be positive"
	}
	return ""
}

// createSolutionRequest is the POST /solutions payload.
type createSolutionRequest struct {
	AgentName string             `json:"agentName"`
	BatchID   int64              `json:"batchId"`
	Route     []domain.RouteStep `json:"route"`
	Score     float64            `json:"score"`
}
