package shared

import "context"

// Background task types (asynq).
const (
	TypeRefreshCatalogSummary = "catalog:refresh_summary"
)

// Cache keys shared across domains.
const (
	CacheKeyCatalogSummary = "catalog:summary"
)

// ChangeNotifier is told whenever a catalog record is created, updated or deleted.
// Implementations must not fail the write: errors are logged, not returned.
type ChangeNotifier interface {
	CatalogChanged(ctx context.Context)
}

// NopNotifier ignores change notifications.
type NopNotifier struct{}

func (NopNotifier) CatalogChanged(context.Context) {}

// Notifiers fans a change out to every notifier in order.
type Notifiers []ChangeNotifier

func (n Notifiers) CatalogChanged(ctx context.Context) {
	for _, notifier := range n {
		notifier.CatalogChanged(ctx)
	}
}

// RefreshSummaryPayload is the (empty) payload of TypeRefreshCatalogSummary.
type RefreshSummaryPayload struct {
	Reason string `json:"reason,omitempty"`
}

// Sort orders accepted from ?order=.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// NormalizeSort returns sort if it is in allowed, otherwise fallback, and maps
// order to OrderAsc/OrderDesc.
func NormalizeSort(sort, order string, allowed []string, fallback string) (string, string) {
	valid := false
	for _, s := range allowed {
		if s == sort {
			valid = true
			break
		}
	}
	if !valid {
		sort = fallback
	}
	if order != OrderDesc {
		order = OrderAsc
	}
	return sort, order
}
