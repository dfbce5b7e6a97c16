package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityParcelConfirmed      ActivityType = "colis.confirmed"
	ActivityParcelReturned       ActivityType = "colis.returned"
	ActivityParcelDeleted        ActivityType = "colis.deleted"
	ActivityPendingStatusRefresh ActivityType = "colis.pending-refreshed"
)

// Activity is an operator action announced to other systems after the backend accepted it.
type Activity struct {
	EventID    uuid.UUID
	Type       ActivityType
	Barcode    string
	ParcelID   string
	Status     ParcelStatus
	OccurredAt time.Time
}
