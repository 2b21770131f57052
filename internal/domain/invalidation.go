package domain

import "context"

//go:generate mockgen -destination mocks/mock_invalidator.go -package mocks github.com/relasjon/crm/internal/domain Invalidator

// Logical page paths whose cached renderings depend on mutated rows
const (
	PathDashboard      = "/dashboard"
	PathCustomers      = "/customers"
	PathDeals          = "/deals"
	PathCommunications = "/communications"
	PathProfiles       = "/profiles"
)

func CustomerPath(id string) string {
	return PathCustomers + "/" + id
}

func CustomerContactsPath(customerID string) string {
	return CustomerPath(customerID) + "/contacts"
}

func CustomerDealsPath(customerID string) string {
	return CustomerPath(customerID) + "/deals"
}

func CustomerCommunicationsPath(customerID string) string {
	return CustomerPath(customerID) + "/communications"
}

// Invalidator receives push-based hints that cached pages must be recomputed.
// Failures are reported but never undo the mutation that caused them.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}
