package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetSnapshot returns today's headline figures, fanned out concurrently
	GetSnapshot(ctx context.Context) (*SnapshotResponse, error)
}
