// Package sink receives the final value set of a submitted form. The core's
// obligation ends at producing a complete, field-id keyed mapping; sinks decide
// where it goes.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Submission is the payload handed to a Sink.
type Submission struct {
	RollNumber  string            `json:"rollNumber"`
	FormID      string            `json:"formId,omitempty"`
	Version     string            `json:"version,omitempty"`
	Values      schema.FormValues `json:"values"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// Sink accepts submissions.
type Sink interface {
	Submit(ctx context.Context, submission Submission) error
}

// Func adapts a function into a Sink.
type Func func(ctx context.Context, submission Submission) error

// Submit implements Sink.
func (f Func) Submit(ctx context.Context, submission Submission) error {
	return f(ctx, submission)
}

// LogSink emits each submission as a structured log entry.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a LogSink writing through logger; nil falls back to a
// no-op logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Submit implements Sink.
func (s *LogSink) Submit(_ context.Context, submission Submission) error {
	s.logger.Info("form submitted",
		zap.String("roll_number", submission.RollNumber),
		zap.String("form_id", submission.FormID),
		zap.Int("fields", len(submission.Values)),
		zap.Any("values", submission.Values.Plain()),
	)
	return nil
}

// WriterSink appends each submission as one JSON line to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Submit implements Sink.
func (s *WriterSink) Submit(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.w == nil {
		return errors.New("sink: writer is nil")
	}
	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("sink: encode submission: %w", err)
	}
	payload = append(payload, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(payload); err != nil {
		return fmt.Errorf("sink: write submission: %w", err)
	}
	return nil
}

// Multi fans a submission out to every sink, stopping at the first failure.
type Multi []Sink

// Submit implements Sink.
func (m Multi) Submit(ctx context.Context, submission Submission) error {
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, submission); err != nil {
			return err
		}
	}
	return nil
}
