package events

import (
	"context"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

// Publisher is the injected fan-out capability for project mutations.
// Publishing is fire-and-forget: no acknowledgement, no delivery
// guarantee, no replay on reconnect.
type Publisher interface {
	ProjectUpdated(ctx context.Context, project *models.OnboardingProject)
}

// Fanout forwards an event to every registered publisher.
type Fanout []Publisher

func (f Fanout) ProjectUpdated(ctx context.Context, project *models.OnboardingProject) {
	for _, p := range f {
		p.ProjectUpdated(ctx, project)
	}
}
