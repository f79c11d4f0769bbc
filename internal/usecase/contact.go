package usecase

import (
	"context"
	"strings"

	"go-studio-backend/internal/domain"
	"go-studio-backend/pkg/apperror"
	"go-studio-backend/pkg/logger"
	"go-studio-backend/pkg/security"
	"go-studio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	validate   *validator.Validate
	spam       *security.SpamFilter
	dispatcher domain.NotificationDispatcher
}

// NewContactUsecase creates the contact intake pipeline
func NewContactUsecase(validate *validator.Validate, spam *security.SpamFilter, dispatcher domain.NotificationDispatcher) domain.ContactUsecase {
	return &contactUsecase{
		validate:   validate,
		spam:       spam,
		dispatcher: dispatcher,
	}
}

// SubmitInquiry runs the intake pipeline on an already-parsed submission:
// honeypot, required fields, email format, keyword filter, attachment
// policy, dispatch. Spam is answered with nil so the handler responds with
// the same success body a legitimate submission gets - rejection must not be
// observable to the sender.
func (uc *contactUsecase) SubmitInquiry(ctx context.Context, sub *domain.Submission, clientIP string) error {
	if uc.spam.IsHoneypotTripped(sub.Website) {
		logger.Log.Info("submission dropped: honeypot tripped", "client_ip", clientIP)
		return nil
	}

	if err := uc.validateFields(sub); err != nil {
		return err
	}

	if kw, ok := uc.spam.MatchKeyword(sub.Message, sub.Company, sub.FirstName, sub.LastName); ok {
		logger.Log.Info("submission dropped: keyword match", "keyword", kw, "client_ip", clientIP)
		return nil
	}

	if sub.Attachment != nil && sub.Attachment.Size > 0 {
		result := security.ValidateAttachment(sub.Attachment.Filename, sub.Attachment.Size, sub.Attachment.ContentType)
		if !result.Valid {
			return apperror.BadRequest(result.Error)
		}
	}

	// Delivery is best-effort: the result is logged, never surfaced
	result := uc.dispatcher.Dispatch(ctx, sub, clientIP)
	if result.Err != nil {
		logger.Log.Error("notification delivery failed", "channel", result.Channel, "error", result.Err)
	} else {
		logger.Log.Info("submission forwarded", "channel", result.Channel, "email", sub.Email)
	}

	return nil
}

func (uc *contactUsecase) validateFields(sub *domain.Submission) error {
	required := []string{sub.Service, sub.Message, sub.FirstName, sub.LastName, sub.Email}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return apperror.BadRequest("Missing required fields")
		}
	}

	if err := uc.validate.Var(sub.Email, "contact_email"); err != nil {
		return apperror.BadRequest("Invalid email address")
	}

	// Phone is optional and advisory only: a malformed value is not worth
	// rejecting an otherwise legitimate inquiry over
	if sub.Phone != "" && !validation.IsPhone(sub.Phone) {
		logger.Log.Debug("submission has malformed phone number", "email", sub.Email)
	}

	return nil
}
