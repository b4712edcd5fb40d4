// internal/app/status_tracker.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// StatusTracker runs polling cycles for the newest homework and notifies a single chat
// whenever the formatted status message changes.
type StatusTracker struct {
	fetcher        homework.StatusFetcher
	telegramClient domainTelegram.Client
	chatID         int64
	fromDate       int64
	logger         *logrus.Entry

	mu          sync.RWMutex
	lastMessage string
}

func NewStatusTracker(
	fetcher homework.StatusFetcher,
	tc domainTelegram.Client,
	chatID int64,
	logger *logrus.Entry,
	startedAt time.Time, // becomes the from_date cursor
) *StatusTracker {
	return &StatusTracker{
		fetcher:        fetcher,
		telegramClient: tc,
		chatID:         chatID,
		fromDate:       startedAt.Unix(),
		logger:         logger,
	}
}

// RunCycle performs one fetch, validate, format and maybe-notify pass.
// Failures are logged and never returned: the next cycle simply tries again.
func (s *StatusTracker) RunCycle(ctx context.Context) {
	message, err := s.buildMessage(ctx)
	if err != nil {
		s.handleCycleError(err)
		return
	}

	if message == s.LastMessage() {
		s.logger.Debug("Status unchanged, notification skipped")
		return
	}

	s.sendMessage(message)

	s.mu.Lock()
	s.lastMessage = message
	s.mu.Unlock()
}

// LastMessage returns the most recent notification text handed to Telegram.
func (s *StatusTracker) LastMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessage
}

func (s *StatusTracker) buildMessage(ctx context.Context) (string, error) {
	response, err := s.fetcher.GetHomeworkStatuses(ctx, s.fromDate)
	if err != nil {
		return "", fmt.Errorf("failed to get homework statuses: %w", err)
	}

	s.logger.Info("Checking API response")
	submission, err := homework.CheckResponse(response)
	if err != nil {
		return "", fmt.Errorf("failed to check API response: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"homework_id":  submission[homework.KeyID],
		"lesson_name":  submission[homework.KeyLessonName],
		"date_updated": submission[homework.KeyDateUpdated],
	}).Debug("Newest submission received")

	s.logger.Info("Parsing homework status")
	message, err := homework.ParseStatus(submission)
	if err != nil {
		return "", fmt.Errorf("failed to parse homework status: %w", err)
	}
	return message, nil
}

// sendMessage delivers text to the chat. Delivery errors stop here.
func (s *StatusTracker) sendMessage(text string) {
	logCtx := s.logger.WithField("chat_id", s.chatID)
	logCtx.Info("Sending message to Telegram chat")

	if err := s.telegramClient.SendMessage(s.chatID, text, nil); err != nil {
		logCtx.WithError(err).Error("Failed to send message")
		return
	}
	logCtx.WithField("text", text).Debug("Message sent successfully")
}

func (s *StatusTracker) handleCycleError(err error) {
	logCtx := s.logger.WithError(err).WithField("error_kind", homework.ErrorKind(err))

	switch {
	case errors.Is(err, context.Canceled):
		logCtx.Info("Cycle interrupted by shutdown")
		return
	case errors.Is(err, homework.ErrEndpointUnavailable),
		errors.Is(err, homework.ErrBadAPIResponse),
		errors.Is(err, homework.ErrResponseDecode):
		logCtx = logCtx.WithField("stage", "fetch")
	case errors.Is(err, homework.ErrEmptyResponse),
		errors.Is(err, homework.ErrTypeMismatch),
		errors.Is(err, homework.ErrMissingKeys):
		logCtx = logCtx.WithField("stage", "validate")
	case errors.Is(err, homework.ErrInvalidStatus),
		errors.Is(err, homework.ErrMissingField):
		logCtx = logCtx.WithField("stage", "format")
	}

	var statusErr *homework.APIStatusError
	if errors.As(err, &statusErr) {
		logCtx = logCtx.WithField("status_code", statusErr.StatusCode)
	}

	logCtx.Error("Cycle failed")
}
