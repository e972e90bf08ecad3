package handoff

import (
	"context"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/google/uuid"
)

// Handoff is one message for the help channel.
type Handoff struct {
	ID        string
	DraftID   string
	Recipient string
	Subject   string
	Body      string
}

// New builds the handoff for d addressed to recipient.
func New(d domain.PlanDraft, recipient string, resolve Resolver) Handoff {
	return Handoff{
		ID:        uuid.New().String(),
		DraftID:   d.ID,
		Recipient: recipient,
		Subject:   Subject(d),
		Body:      BuildMessage(d, resolve),
	}
}

// Channel delivers a handoff somewhere.
type Channel interface {
	Name() string
	Send(ctx context.Context, h Handoff) error
}
