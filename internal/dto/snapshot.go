package dto

import (
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SnapshotResponse defines the data returned for a daily snapshot.
type SnapshotResponse struct {
	Date            string           `json:"date"`
	ExpectedBalance decimal.Decimal  `json:"expectedBalance"`
	ActualBalance   *decimal.Decimal `json:"actualBalance,omitempty"`
	Difference      *decimal.Decimal `json:"difference,omitempty"`
	Reconciled      bool             `json:"reconciled"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// ListSnapshotsParams defines query parameters for the snapshot history.
type ListSnapshotsParams struct {
	Days int `form:"days,default=30" binding:"min=1,max=366"`
}

// ListSnapshotsResponse wraps the snapshot history, newest first.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

// ToSnapshotResponse converts a domain.DailySnapshot to SnapshotResponse DTO.
func ToSnapshotResponse(s *domain.DailySnapshot) SnapshotResponse {
	return SnapshotResponse{
		Date:            s.Date,
		ExpectedBalance: s.ExpectedBalance,
		ActualBalance:   s.ActualBalance,
		Difference:      s.Difference,
		Reconciled:      s.IsReconciled(),
		LastUpdatedAt:   s.LastUpdatedAt,
	}
}

// ToListSnapshotsResponse converts a slice of domain.DailySnapshot.
func ToListSnapshotsResponse(snapshots []domain.DailySnapshot) ListSnapshotsResponse {
	res := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		res[i] = ToSnapshotResponse(&s)
	}
	return ListSnapshotsResponse{Snapshots: res}
}
