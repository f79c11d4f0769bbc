package domain

import "context"

// Submission represents a normalized contact form submission. It is built
// once from the incoming multipart form and discarded after the response;
// nothing in this service persists it.
type Submission struct {
	Service       string
	Timeline      string
	Company       string
	ProjectSize   string
	Message       string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	ContactMethod string
	// Website is the honeypot field. Legitimate clients leave it empty.
	Website    string
	Attachment *Attachment
}

// Attachment describes an uploaded file by its declared metadata. The file
// content itself is never stored.
type Attachment struct {
	Filename    string
	Size        int64
	ContentType string
}

// FullName returns the submitter's display name
func (s *Submission) FullName() string {
	return s.FirstName + " " + s.LastName
}

// DispatchResult reports the outcome of forwarding a submission downstream.
// The intake pipeline observes it for logging only; delivery failure never
// affects the HTTP response.
type DispatchResult struct {
	Delivered bool
	Channel   string
	Err       error
}

// ContactUsecase defines the interface for the contact intake pipeline
type ContactUsecase interface {
	// SubmitInquiry runs honeypot, validation, keyword and attachment checks
	// and forwards the submission when it passes. A spam classification is
	// NOT an error: the caller must answer with a success response either way.
	SubmitInquiry(ctx context.Context, sub *Submission, clientIP string) error
}

// NotificationDispatcher forwards accepted submissions to the configured
// downstream channels (webhook, acknowledgment email)
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, sub *Submission, clientIP string) DispatchResult
}
