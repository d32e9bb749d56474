package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IDGenerator must return a distinct id on every call, including calls
// made within the same clock tick.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator yields "<prefix>_<uuidv7>"; v7 ids are time ordered.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "_" + uuid.Must(uuid.NewV7()).String()
}

// Recorder receives business events for metrics.
type Recorder interface {
	OfferCreated()
	RequestCreated()
	Settlement(outcome string)
}

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type nopRecorder struct{}

func (nopRecorder) OfferCreated() {}
func (nopRecorder) RequestCreated() {}
func (nopRecorder) Settlement(string) {}

// Options carries the collaborators shared by every service. Zero fields
// fall back to wall-clock time, uuid ids, a no-op logger and no metrics.
type Options struct {
	Now     func() time.Time
	IDs     IDGenerator
	Logger  *zap.Logger
	Metrics Recorder
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.IDs == nil {
		o.IDs = UUIDGenerator{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = nopRecorder{}
	}
	return o
}
