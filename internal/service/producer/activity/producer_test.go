package actproducer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/converter"
	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/mocks"
	"github.com/you-humble/colixy-dashboard/platform/kafka"
)

func TestSendActivity(t *testing.T) {
	t.Parallel()

	eventID := uuid.New()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   model.Activity
		wantKey string
		sendErr error
	}{
		{
			name: "keyed by barcode",
			event: model.Activity{
				EventID: eventID, Type: model.ActivityParcelConfirmed,
				Barcode: "ABC123", ParcelID: "x1", Status: model.StatusPending, OccurredAt: at,
			},
			wantKey: "ABC123",
		},
		{
			name:    "falls back to parcel id",
			event:   model.Activity{EventID: eventID, Type: model.ActivityParcelDeleted, ParcelID: "x1", OccurredAt: at},
			wantKey: "x1",
		},
		{
			name:    "bulk refresh keyed by event",
			event:   model.Activity{EventID: eventID, Type: model.ActivityPendingStatusRefresh, OccurredAt: at},
			wantKey: eventID.String(),
		},
		{
			name:    "producer failure is returned",
			event:   model.Activity{EventID: eventID, Type: model.ActivityParcelReturned, Barcode: "R1", OccurredAt: at},
			wantKey: "R1",
			sendErr: errors.New("broker down"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := mocks.NewMockProducer(t)
			p.On("Send", mock.Anything, mock.MatchedBy(func(m kafka.Message) bool {
				var rec map[string]any
				if err := json.Unmarshal(m.Value, &rec); err != nil {
					return false
				}
				return string(m.Key) == tc.wantKey &&
					string(m.Headers["event_type"]) == string(tc.event.Type) &&
					rec["event_uuid"] == eventID.String() &&
					rec["occurred_at"] == "2024-05-01T10:00:00Z"
			})).Return(tc.sendErr).Once()

			err := NewActivityProducer(p, converter.NewKafkaConverter()).SendActivity(context.Background(), tc.event)
			if tc.sendErr != nil {
				assert.ErrorIs(t, err, tc.sendErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
