// Package pp seeds and reads the node intent store: which applications a host
// runs, which artifact versions are prepared or active, and how each is deployed.
package pp

import "time"

const (
	// DefaultStoreAddress local key value store agent.
	DefaultStoreAddress = "localhost:8500"
	// DefaultTimeout bounds a single command's store interactions.
	DefaultTimeout = 10 * time.Second
	// DefaultPlanFile plan read by the seed command when present.
	DefaultPlanFile = "seed.yml"
)
