package domain

import (
	"time"

	"gorm.io/datatypes"
)

// RecommendationEvent is an append-only audit row written after a recommendation
// response is served. Context holds the source mix as JSON.
type RecommendationEvent struct {
	ID          uint           `gorm:"primaryKey"`
	RequestID   string         `gorm:"column:request_id;size:64;index"`
	CustomerID  uint           `gorm:"column:customer_id;index"`
	Limit       int            `gorm:"column:result_limit"`
	ResultCount int            `gorm:"column:result_count"`
	Context     datatypes.JSON `gorm:"column:context"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (RecommendationEvent) TableName() string {
	return "recommendation_events"
}
