package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gift-service/internal/mocks"
)

func TestAuditEmitterEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.gift_service", "gift-service", "test")

	userID := int64(7)
	publisher.On("Publish", mock.Anything, "audit.gift_service", mock.MatchedBy(func(e AuditEnvelope) bool {
		return e.SchemaVersion == 1 &&
			e.EventType == "audit_log" &&
			e.Service == "gift-service" &&
			e.Environment == "test" &&
			e.RequestID == "req-1" &&
			e.UserID != nil && *e.UserID == 7 &&
			e.Payload.Level == "info" &&
			e.Payload.Text == "gift opened" &&
			e.OccurredAt != ""
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "info", "gift opened", "req-1", &userID)

	publisher.AssertExpectations(t)
}

func TestAuditEmitterNilSafe(t *testing.T) {
	var emitter *AuditEmitter

	// A nil emitter must be a silent no-op so handlers never guard it.
	require.NotPanics(t, func() {
		emitter.Emit(context.Background(), "info", "ignored", "req-2", nil)
	})
}
