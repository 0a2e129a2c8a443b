// Package events handles event emission for person and relationship
// lifecycle changes.
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/majeanson/family-social/pkg/kafka"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
)

// Event types emitted on the output topic.
const (
	EventPersonCreated       = "person.created"
	EventPersonUpdated       = "person.updated"
	EventPersonDeleted       = "person.deleted"
	EventRelationshipCreated = "relationship.created"
	EventRelationshipDeleted = "relationship.deleted"
	EventShareCreated        = "share.created"
)

// Emitter publishes lifecycle events. A nil Emitter is a no-op so handlers
// don't branch on whether the producer is enabled.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitPersonCreated emits a person.created event
func (e *Emitter) EmitPersonCreated(ctx context.Context, person *models.Person) {
	e.emitPerson(ctx, EventPersonCreated, person)
}

// EmitPersonUpdated emits a person.updated event
func (e *Emitter) EmitPersonUpdated(ctx context.Context, person *models.Person) {
	e.emitPerson(ctx, EventPersonUpdated, person)
}

// EmitPersonDeleted emits a person.deleted event. relationshipIDs lists the
// relationships removed by the cascade.
func (e *Emitter) EmitPersonDeleted(ctx context.Context, userID, personID string, relationshipIDs []string) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitPersonDeleted")
	defer span.End()

	data, _ := json.Marshal(map[string]any{"cascaded_relationship_ids": relationshipIDs})
	e.publish(ctx, &kafka.FamilyEvent{
		EventType:    EventPersonDeleted,
		UserID:       userID,
		ResourceID:   personID,
		ResourceType: "person",
		Data:         data,
	})
}

// EmitRelationshipCreated emits a relationship.created event
func (e *Emitter) EmitRelationshipCreated(ctx context.Context, rel *models.Relationship) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRelationshipCreated")
	defer span.End()

	data, _ := json.Marshal(rel)
	e.publish(ctx, &kafka.FamilyEvent{
		EventType:    EventRelationshipCreated,
		UserID:       rel.UserID,
		ResourceID:   rel.ID,
		ResourceType: "relationship",
		Data:         data,
	})
}

// EmitRelationshipDeleted emits a relationship.deleted event
func (e *Emitter) EmitRelationshipDeleted(ctx context.Context, userID, relationshipID string) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRelationshipDeleted")
	defer span.End()

	e.publish(ctx, &kafka.FamilyEvent{
		EventType:    EventRelationshipDeleted,
		UserID:       userID,
		ResourceID:   relationshipID,
		ResourceType: "relationship",
	})
}

// EmitShareCreated emits a share.created event
func (e *Emitter) EmitShareCreated(ctx context.Context, userID, code string) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitShareCreated")
	defer span.End()

	e.publish(ctx, &kafka.FamilyEvent{
		EventType:    EventShareCreated,
		UserID:       userID,
		ResourceID:   code,
		ResourceType: "share",
	})
}

func (e *Emitter) emitPerson(ctx context.Context, eventType string, person *models.Person) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.emitPerson")
	defer span.End()

	data, _ := json.Marshal(person)
	e.publish(ctx, &kafka.FamilyEvent{
		EventType:    eventType,
		UserID:       person.UserID,
		ResourceID:   person.ID,
		ResourceType: "person",
		Data:         data,
	})
}

// publish fires the event without failing the request: lifecycle events are
// best effort, the API response never blocks on the broker.
func (e *Emitter) publish(ctx context.Context, event *kafka.FamilyEvent) {
	if err := e.producer.Publish(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to emit %s event", event.EventType)
	}
}
