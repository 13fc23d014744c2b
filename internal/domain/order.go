package domain

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusOpen means the order is waiting to be settled.
	// An open order may or may not already belong to a batch.
	OrderStatusOpen OrderStatus = "open"

	// OrderStatusFilled means the order's batch has been filled.
	OrderStatusFilled OrderStatus = "filled"
)

// Order represents a user's swap intent.
// Corresponds to the orders table in PostgreSQL.
type Order struct {
	ID          int64       // store-generated identifier
	IntentID    int64       // caller-supplied intent id, not unique
	SrcToken    string      // mint address of the token sold
	SrcAddress  string      // settlement address for inputs
	SrcAmount   int64       // smallest-unit amount sold, > 0
	DstToken    string      // mint address of the token bought
	DstAddress  string      // settlement address for outputs
	MinReceived int64       // smallest-unit minimum acceptable output
	Expiration  int64       // Unix seconds
	Status      OrderStatus //
	BatchID     *int64      // nil until swept into a batch; never reassigned
	CreatedAt   int64       // record creation timestamp (ms)
}
