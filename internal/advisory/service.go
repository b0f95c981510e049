package advisory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/miriamsimone/upwind/internal/roster"
	"github.com/miriamsimone/upwind/internal/weather"
	"github.com/miriamsimone/upwind/pkg/logger"
)

// Service orchestrates advisory requests: build the prompt, call the
// provider, parse the reply. Failures propagate to the caller as a
// single terminal error for the request; no partial suggestion list is
// ever synthesized.
type Service struct {
	completer Completer
	timeout   time.Duration
	logger    *logger.Logger
}

// NewService creates an advisory service
func NewService(completer Completer, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		completer: completer,
		timeout:   timeout,
		logger:    log.Named("advisory-service"),
	}
}

// RequestAdvisory asks the provider for rescheduling suggestions for a
// conflicted lesson. reading should be the representative forecast-day
// reading observed during the scan. Fails rather than returning an
// empty list when the provider is unreachable or its output cannot be
// parsed.
func (s *Service) RequestAdvisory(ctx context.Context, student *roster.Student, reading weather.Reading, conflict ConflictDescriptor) ([]Suggestion, error) {
	systemPrompt, userPrompt := BuildRequest(student, reading, conflict)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("advisory request failed: %w", err)
	}

	suggestions, err := ParseSuggestions(reply)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, &ParseError{Excerpt: excerpt(reply), Err: errors.New("reply contained no suggestions")}
	}

	s.logger.Info("Received advisory suggestions",
		logger.String("student_id", student.ID),
		logger.Int("count", len(suggestions)),
	)

	return suggestions, nil
}
