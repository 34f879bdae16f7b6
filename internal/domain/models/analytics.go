// internal/domain/models/analytics.go
package models

import "time"

// PeriodMetrics is the period-scoped payload returned by the analytics API.
// Any numeric field may be absent upstream; absent values decode to nil.
type PeriodMetrics struct {
	Period string `json:"period"`

	OrdersCount  *float64 `json:"orders_count"`
	OrdersAmount *float64 `json:"orders_amount"` // gross orders revenue
	NetSales     *float64 `json:"net_sales"`     // sales after returns
	PayoutTotal  *float64 `json:"payout_total"`  // amount transferred to the seller
	Returns      *float64 `json:"returns_amount"`

	// Cost categories
	COGS             *float64 `json:"cogs"`
	AdvertisingSpend *float64 `json:"advertising_spend"`
	LogisticsCost    *float64 `json:"logistics_cost"`
	StorageCost      *float64 `json:"storage_cost"`

	// COGS coverage inputs: catalog items with a cost basis vs all catalog items.
	ItemsWithCOGS int `json:"items_with_cogs"`
	TotalItems    int `json:"total_items"`
}

// DailyRow is one calendar day of metrics, keyed by ISO date (YYYY-MM-DD).
type DailyRow struct {
	Date    string              `json:"date"`
	Metrics map[string]*float64 `json:"metrics"`
}

// Value returns the metric for key, or nil when absent.
func (r DailyRow) Value(key string) *float64 {
	if r.Metrics == nil {
		return nil
	}
	return r.Metrics[key]
}

// SyncState is the lifecycle state of the external data sync process.
type SyncState string

const (
	SyncIdle           SyncState = "idle"
	SyncSyncing        SyncState = "syncing"
	SyncCompleted      SyncState = "completed"
	SyncPartialSuccess SyncState = "partial_success"
	SyncFailed         SyncState = "failed"
)

// Terminal reports whether s ends a sync run.
func (s SyncState) Terminal() bool {
	return s == SyncCompleted || s == SyncPartialSuccess || s == SyncFailed
}

// Valid reports whether s is a recognized sync state.
func (s SyncState) Valid() bool {
	switch s {
	case SyncIdle, SyncSyncing, SyncCompleted, SyncPartialSuccess, SyncFailed:
		return true
	}
	return false
}

// SyncStatus is a snapshot of the external sync process.
type SyncStatus struct {
	State             SyncState  `json:"state"`
	LastSyncAt        *time.Time `json:"last_sync_at,omitempty"`
	NextScheduledSync *time.Time `json:"next_scheduled_sync,omitempty"`
	TotalTasks        int        `json:"total_tasks"`
	CompletedTasks    int        `json:"completed_tasks"`
	FailedTasks       int        `json:"failed_tasks"`
}
