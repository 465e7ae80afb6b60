package submit

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/avilev/daily-status/internal/mailer"
	"github.com/avilev/daily-status/internal/model"
	"github.com/avilev/daily-status/internal/normalize"
)

// Appender is the storage collaborator: append one row of cell values
// after the last existing row of the sheet tab.
type Appender interface {
	Append(ctx context.Context, cells []any) error
}

// Sender is the email collaborator. Implementations return the
// provider delivery ID for logging.
type Sender interface {
	Send(ctx context.Context, conf mailer.Confirmation) (string, error)
}

// StorageError wraps a failed append call. Appends are never retried;
// the submitter has to resubmit.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// DeliveryError wraps a failed confirmation send. It is logged and
// never returned to the submitter: a successful append is authoritative
// for the ok result.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return "delivery: " + e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }

// Service runs the submission pipeline: normalize, append, confirm.
type Service struct {
	Normalizer normalize.Normalizer
	Storage    Appender
	Mail       Sender // nil disables confirmations
	Now        func() time.Time
	Log        *log.Logger
}

// Submit processes one validated submission and returns its reference
// ID. Exactly one append attempt is made; a failure comes back as a
// *StorageError and suppresses the confirmation email. An email
// failure after a successful append only gets logged.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (string, error) {
	refID := uuid.NewString()
	logger := s.Log.With("ref", refID, "activity", sub.Activity)

	row, err := s.Normalizer.Row(sub, s.now())
	if err != nil {
		logger.Error("row normalization failed", "err", err)
		return "", err
	}

	if err := s.Storage.Append(ctx, row.Cells()); err != nil {
		logger.Error("row append failed", "err", err)
		return "", &StorageError{Err: err}
	}
	logger.Info("row appended", "date", row.DateLabel)

	if s.Mail != nil {
		conf := mailer.Confirmation{
			RefID:     refID,
			Email:     row.Email,
			Activity:  row.Activity,
			Location:  row.Location,
			Projects:  row.Projects,
			DateLabel: row.DateLabel,
		}
		if msgID, err := s.Mail.Send(ctx, conf); err != nil {
			logger.Warn("confirmation email failed", "err", &DeliveryError{Err: err})
		} else {
			logger.Info("confirmation sent", "message_id", msgID)
		}
	}

	return refID, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
