package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"go-studio-backend/internal/domain"
	"go-studio-backend/internal/usecase"
	"go-studio-backend/pkg/apperror"
	"go-studio-backend/pkg/logger"
	"go-studio-backend/pkg/security"
	"go-studio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// MockDispatcher records downstream forwarding
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, sub *domain.Submission, clientIP string) domain.DispatchResult {
	args := m.Called(ctx, sub, clientIP)
	return args.Get(0).(domain.DispatchResult)
}

func newPipeline(dispatcher domain.NotificationDispatcher) domain.ContactUsecase {
	validate := validator.New()
	validation.RegisterValidators(validate)
	return usecase.NewContactUsecase(validate, security.NewSpamFilter(nil), dispatcher)
}

func validSubmission() *domain.Submission {
	return &domain.Submission{
		Service:   "Web development",
		Message:   "We need a new marketing site.",
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
	}
}

func TestSubmitInquirySpamIsSilent(t *testing.T) {
	t.Run("honeypot suppresses dispatch but reports success", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Website = "http://bot.example"

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.NoError(t, err)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("keyword match suppresses dispatch but reports success", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Message = "Best ViAgRa deals for your site"

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.NoError(t, err)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("keyword in company field also matches", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Company = "Casino Royale LLC"

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.NoError(t, err)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSubmitInquiryValidation(t *testing.T) {
	t.Run("missing email is rejected", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Email = ""

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Equal(t, "Missing required fields", appErr.Message)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("whitespace-only required field is rejected", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Service = "   "

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Missing required fields")
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Email = "not-an-email"

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email address")
	})

	t.Run("dotless email domain is rejected", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Email = "jane@localhost"

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email address")
	})
}

func TestSubmitInquiryAttachmentPolicy(t *testing.T) {
	t.Run("disallowed type is rejected", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Attachment = &domain.Attachment{Filename: "logo.png", Size: 1024, ContentType: "image/png"}

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid file type")
	})

	t.Run("oversized attachment is rejected", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Attachment = &domain.Attachment{Filename: "brief.pdf", Size: 11 * 1024 * 1024, ContentType: "application/pdf"}

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "File too large")
	})

	t.Run("allowed attachment passes through to dispatch", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything, "203.0.113.7").
			Return(domain.DispatchResult{Delivered: true, Channel: "webhook"})
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		sub.Attachment = &domain.Attachment{Filename: "brief.pdf", Size: 5 * 1024 * 1024, ContentType: "application/pdf"}

		err := uc.SubmitInquiry(context.Background(), sub, "203.0.113.7")
		assert.NoError(t, err)
		dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
	})
}

func TestSubmitInquiryDispatch(t *testing.T) {
	t.Run("valid submission is forwarded once", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything, "203.0.113.7").
			Return(domain.DispatchResult{Delivered: true, Channel: "webhook"})
		uc := newPipeline(dispatcher)

		err := uc.SubmitInquiry(context.Background(), validSubmission(), "203.0.113.7")
		assert.NoError(t, err)
		dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
	})

	t.Run("delivery failure never surfaces to the submitter", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.DispatchResult{Channel: "webhook", Err: errors.New("connection refused")})
		uc := newPipeline(dispatcher)

		err := uc.SubmitInquiry(context.Background(), validSubmission(), "203.0.113.7")
		assert.NoError(t, err)
	})

	t.Run("identical payload classifies identically on resubmission", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.DispatchResult{Delivered: true, Channel: "log"})
		uc := newPipeline(dispatcher)

		sub := validSubmission()
		assert.NoError(t, uc.SubmitInquiry(context.Background(), sub, "203.0.113.7"))
		assert.NoError(t, uc.SubmitInquiry(context.Background(), sub, "203.0.113.7"))
		dispatcher.AssertNumberOfCalls(t, "Dispatch", 2)
	})
}
