package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

type activityRecord struct {
	EventUUID  string `json:"event_uuid"`
	Type       string `json:"type"`
	Barcode    string `json:"code_barre,omitempty"`
	ParcelID   string `json:"colis_id,omitempty"`
	Status     string `json:"statut,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) ActivityToPayload(a model.Activity) ([]byte, error) {
	payload, err := json.Marshal(activityRecord{
		EventUUID:  a.EventID.String(),
		Type:       string(a.Type),
		Barcode:    a.Barcode,
		ParcelID:   a.ParcelID,
		Status:     string(a.Status),
		OccurredAt: a.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity: %w", err)
	}

	return payload, nil
}
