package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/ShanAhmd/HiDrawpix/models"
)

// NotificationTTL is how long a new-order notification stays visible before
// the dashboard dismisses it.
const NotificationTTL = 5 * time.Second

// Sort directions for the order feed view.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterAll selects every status in the feed view.
const FilterAll = "All"

// Notification is the transient "new order" banner raised on the admin
// dashboard.
type Notification struct {
	OrderID      string    `json:"order_id"`
	Service      string    `json:"service"`
	CustomerName string    `json:"customer_name"`
	Message      string    `json:"message"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// OrderFeed projects the order store's snapshot stream into what one admin
// dashboard renders. Each dashboard connection owns its own feed; two open
// dashboards converge because both consume the same snapshots, with no
// coordination between them (last write wins on concurrent edits).
type OrderFeed struct {
	mu          sync.Mutex
	snapshot    []models.Order
	initialLoad bool
}

// NewOrderFeed creates a feed that treats the first applied snapshot as the
// initial load: orders already present then never raise a notification.
func NewOrderFeed() *OrderFeed {
	return &OrderFeed{initialLoad: true}
}

// Apply ingests the next snapshot and returns a notification if a new order
// arrived, or nil. An order notifies at most once: once it has appeared in a
// snapshot it is "old" for every later comparison. When several orders arrive
// in one snapshot the banner names the first (newest) one.
func (f *OrderFeed) Apply(orders []models.Order) *Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	var notification *Notification
	if !f.initialLoad && len(orders) > len(f.snapshot) {
		known := make(map[string]struct{}, len(f.snapshot))
		for _, o := range f.snapshot {
			known[o.ID] = struct{}{}
		}
		for _, o := range orders {
			if _, ok := known[o.ID]; !ok {
				notification = &Notification{
					OrderID:      o.ID,
					Service:      o.Service,
					CustomerName: o.CustomerName,
					Message:      fmt.Sprintf("New order for %s from %s!", o.Service, o.CustomerName),
					ExpiresAt:    time.Now().Add(NotificationTTL),
				}
				break
			}
		}
	}

	f.initialLoad = false
	f.snapshot = orders
	return notification
}

// Snapshot returns the latest applied snapshot.
func (f *OrderFeed) Snapshot() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

// View derives the rendered order list from the latest snapshot: filtered by
// status (or FilterAll) and sorted by creation time. It is a pure projection;
// the snapshot itself is never mutated, and the same snapshot plus the same
// parameters always yields the same view.
func (f *OrderFeed) View(statusFilter, sortDir string) []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := make([]models.Order, 0, len(f.snapshot))
	for _, o := range f.snapshot {
		if statusFilter == FilterAll || statusFilter == "" || o.Status == statusFilter {
			view = append(view, o)
		}
	}

	// Snapshots arrive newest first. Ascending order is a reversal, which is
	// stable for equal timestamps.
	if sortDir == SortAsc {
		for i, j := 0, len(view)-1; i < j; i, j = i+1, j-1 {
			view[i], view[j] = view[j], view[i]
		}
	}
	return view
}
