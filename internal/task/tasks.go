package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

const TypeIngestStaged = "file:ingest"

// NewIngestStagedTask creates an Asynq task moving a staged object into the file store.
func NewIngestStagedTask(in port.StagedIngestInput) (*asynq.Task, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("could not marshal ingest-staged payload: %w", err)
	}
	return asynq.NewTask(TypeIngestStaged, data), nil
}

// ParseIngestStagedPayload parses the task payload to port.StagedIngestInput.
func ParseIngestStagedPayload(t *asynq.Task) (port.StagedIngestInput, error) {
	var p port.StagedIngestInput
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return port.StagedIngestInput{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
