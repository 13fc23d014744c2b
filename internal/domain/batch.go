package domain

// BatchStatus is the lifecycle state of a batch.
type BatchStatus string

const (
	// BatchStatusOpen means the batch accepts new solutions.
	BatchStatusOpen BatchStatus = "open"

	// BatchStatusFilled is terminal: the batch has a fill record and
	// rejects further solutions.
	BatchStatusFilled BatchStatus = "filled"
)

// Batch groups orders that compete for settlement together.
// Corresponds to the batches table in PostgreSQL.
type Batch struct {
	BatchID   int64       // store sequence, unique and monotonically increasing
	OrderIDs  []int64     // member orders in assignment order
	Status    BatchStatus //
	Fill      *FillRecord // nil until the batch is filled
	CreatedAt int64       // record creation timestamp (ms)
}

// FillRecord is the immutable settlement outcome attached to a batch at
// close time. The route is copied from the winning solution, not referenced.
// Stored as JSONB inside the batch row.
type FillRecord struct {
	Tx        string      `json:"tx"`
	AgentName string      `json:"agentName"`
	Route     []RouteStep `json:"route"`
}
