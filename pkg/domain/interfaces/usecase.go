package interfaces

import (
	"context"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

// ChangelogUseCase defines the changelog generation pipeline
type ChangelogUseCase interface {
	// Generate runs fetch, classify, render and merge for the given trigger.
	// existing is the current content of the changelog file, empty if the
	// file does not exist yet. It returns types.ErrNoMatchingChanges when
	// every fetched change was filtered out; the caller should then skip
	// publishing and end the run successfully.
	Generate(ctx context.Context, trigger *model.Trigger, existing string) (*model.ChangelogUpdate, error)
}
