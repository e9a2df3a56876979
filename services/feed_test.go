package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShanAhmd/HiDrawpix/models"
)

func feedOrder(id, customer, service, status string, createdAt time.Time) models.Order {
	return models.Order{
		ID:           id,
		CustomerName: customer,
		Service:      service,
		Status:       status,
		CreatedAt:    createdAt,
	}
}

func TestFeedInitialSnapshotNeverNotifies(t *testing.T) {
	f := NewOrderFeed()

	notification := f.Apply([]models.Order{
		feedOrder("a", "Jane", "Typesetting", models.StatusPending, time.Now()),
		feedOrder("b", "John", "Website Design", models.StatusPending, time.Now()),
	})

	assert.Nil(t, notification, "pre-existing orders must not raise a notification")
}

func TestFeedNotifiesOncePerNewOrder(t *testing.T) {
	f := NewOrderFeed()
	base := time.Now()

	f.Apply([]models.Order{feedOrder("a", "Jane", "Typesetting", models.StatusPending, base)})

	// New order arrives; snapshots are newest first.
	grown := []models.Order{
		feedOrder("b", "John", "Website Design", models.StatusPending, base.Add(time.Minute)),
		feedOrder("a", "Jane", "Typesetting", models.StatusPending, base),
	}
	notification := f.Apply(grown)
	require.NotNil(t, notification)
	assert.Equal(t, "b", notification.OrderID)
	assert.Equal(t, "Website Design", notification.Service)
	assert.Equal(t, "John", notification.CustomerName)
	assert.Contains(t, notification.Message, "Website Design")
	assert.Contains(t, notification.Message, "John")

	// Redelivery of the same snapshot must not notify again.
	assert.Nil(t, f.Apply(grown))
}

func TestFeedNotificationExpiresAfterTTL(t *testing.T) {
	f := NewOrderFeed()
	base := time.Now()
	f.Apply(nil)

	notification := f.Apply([]models.Order{feedOrder("a", "Jane", "Typesetting", models.StatusPending, base)})
	require.NotNil(t, notification)

	remaining := time.Until(notification.ExpiresAt)
	assert.Greater(t, remaining, 4*time.Second)
	assert.LessOrEqual(t, remaining, NotificationTTL)
}

func TestFeedStatusChangeDoesNotNotify(t *testing.T) {
	f := NewOrderFeed()
	base := time.Now()

	f.Apply([]models.Order{feedOrder("a", "Jane", "Typesetting", models.StatusPending, base)})
	notification := f.Apply([]models.Order{feedOrder("a", "Jane", "Typesetting", models.StatusInProgress, base)})

	assert.Nil(t, notification, "a mutation without growth is not a new order")
}

func TestFeedNamesFirstOfSeveralNewOrders(t *testing.T) {
	f := NewOrderFeed()
	base := time.Now()

	f.Apply([]models.Order{feedOrder("a", "Jane", "Typesetting", models.StatusPending, base)})
	notification := f.Apply([]models.Order{
		feedOrder("c", "Newest", "Video Editing", models.StatusPending, base.Add(2*time.Minute)),
		feedOrder("b", "Middle", "Website Design", models.StatusPending, base.Add(time.Minute)),
		feedOrder("a", "Jane", "Typesetting", models.StatusPending, base),
	})

	require.NotNil(t, notification)
	assert.Equal(t, "c", notification.OrderID)
}

func TestFeedViewFiltersAndSorts(t *testing.T) {
	f := NewOrderFeed()
	base := time.Now()

	// Newest first, as the store delivers them.
	f.Apply([]models.Order{
		feedOrder("c", "Cara", "Video Editing", models.StatusCompleted, base.Add(2*time.Minute)),
		feedOrder("b", "Bob", "Website Design", models.StatusPending, base.Add(time.Minute)),
		feedOrder("a", "Jane", "Typesetting", models.StatusPending, base),
	})

	tests := []struct {
		name    string
		filter  string
		sort    string
		wantIDs []string
	}{
		{name: "all newest first", filter: FilterAll, sort: SortDesc, wantIDs: []string{"c", "b", "a"}},
		{name: "all oldest first", filter: FilterAll, sort: SortAsc, wantIDs: []string{"a", "b", "c"}},
		{name: "pending only", filter: models.StatusPending, sort: SortDesc, wantIDs: []string{"b", "a"}},
		{name: "pending oldest first", filter: models.StatusPending, sort: SortAsc, wantIDs: []string{"a", "b"}},
		{name: "completed only", filter: models.StatusCompleted, sort: SortDesc, wantIDs: []string{"c"}},
		{name: "no matches", filter: models.StatusCancelled, sort: SortDesc, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := f.View(tt.filter, tt.sort)
			gotIDs := make([]string, 0, len(view))
			for _, o := range view {
				gotIDs = append(gotIDs, o.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFeedViewIsPureProjection(t *testing.T) {
	f := NewOrderFeed()
	base := time.Now()
	f.Apply([]models.Order{
		feedOrder("b", "Bob", "Website Design", models.StatusPending, base.Add(time.Minute)),
		feedOrder("a", "Jane", "Typesetting", models.StatusCompleted, base),
	})

	first := f.View(models.StatusPending, SortAsc)
	second := f.View(models.StatusPending, SortAsc)
	assert.Equal(t, first, second, "same snapshot and parameters must yield the same view")

	// Deriving a filtered view must not disturb the snapshot.
	assert.Len(t, f.Snapshot(), 2)
}
