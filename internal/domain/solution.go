package domain

// RouteStep is one hop of a proposed settlement path: a transfer of
// sentAmount of sentToken from the source party to the destination party.
// Adjacent steps are not validated for token continuity or value
// conservation; routes are solver-supplied and displayed as-is.
// Serialized as JSONB in the solutions and batches tables.
type RouteStep struct {
	SrcName    string `json:"srcName"`
	SrcAddress string `json:"srcAddress"`
	SrcImage   string `json:"srcImage"`
	SentToken  string `json:"sentToken"`
	SentAmount int64  `json:"sentAmount"`
	DstName    string `json:"dstName"`
	DstAddress string `json:"dstAddress"`
	DstImage   string `json:"dstImage"`
}

// Solution is one agent's proposed settlement route for a batch.
// Solutions are append-only: created while the target batch is open,
// never mutated, retained after the batch fills.
type Solution struct {
	ID          int64       // store-generated identifier, submission-ordered
	BatchID     int64       // target batch sequence id
	AgentID     int64       //
	AgentName   string      // joined from agents on read
	Route       []RouteStep //
	Score       float64     // solver-reported, higher is better
	SubmittedAt int64       // record creation timestamp (ms)
}
