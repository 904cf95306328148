package ingest

import (
	"time"
)

// Event type names for the ingestion pipeline.
const (
	EventStepCompleted = "ingest.step.completed"
	EventRunCompleted  = "ingest.run.completed"
)

// StepCompletedEvent is published after an ingestion step commits.
type StepCompletedEvent struct {
	Step      string `json:"step"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
	timestamp int64
}

func NewStepCompletedEvent(step string, inserted, skipped int) *StepCompletedEvent {
	return &StepCompletedEvent{
		Step:      step,
		Inserted:  inserted,
		Skipped:   skipped,
		timestamp: time.Now().Unix(),
	}
}

func (e *StepCompletedEvent) EventType() string {
	return EventStepCompleted
}

func (e *StepCompletedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *StepCompletedEvent) AggregateID() string {
	return e.Step
}

// RunCompletedEvent is published when the whole pipeline run finishes.
type RunCompletedEvent struct {
	Stats     *Stats `json:"stats"`
	timestamp int64
}

func NewRunCompletedEvent(stats *Stats) *RunCompletedEvent {
	return &RunCompletedEvent{
		Stats:     stats,
		timestamp: time.Now().Unix(),
	}
}

func (e *RunCompletedEvent) EventType() string {
	return EventRunCompleted
}

func (e *RunCompletedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *RunCompletedEvent) AggregateID() string {
	return "ingest"
}
