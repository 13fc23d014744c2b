package domain

// Agent is a named solver identity permitted to submit solutions.
// Agents are seeded at startup and read-only afterwards.
type Agent struct {
	ID        int64  //
	Name      string // unique display name
	Image     string // display image URL or data URI
	CreatedAt int64  // record creation timestamp (ms)
}
