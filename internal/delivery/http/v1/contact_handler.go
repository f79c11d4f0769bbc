package v1

import (
	"net/http"
	"strings"

	"go-studio-backend/internal/delivery/http/response"
	"go-studio-backend/internal/domain"
	"go-studio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, no auth required).
// rateLimit is applied per-route so the health endpoint is never throttled.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, rateLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", rateLimit, handler.SubmitContact)
}

// contactForm mirrors the multipart form the site posts. The "website" field
// is the honeypot; the optional file rides under "attachment".
type contactForm struct {
	Service       string `form:"service"`
	Timeline      string `form:"timeline"`
	Company       string `form:"company"`
	ProjectSize   string `form:"projectSize"`
	Message       string `form:"message"`
	FirstName     string `form:"firstName"`
	LastName      string `form:"lastName"`
	Email         string `form:"email"`
	Phone         string `form:"phone"`
	ContactMethod string `form:"contactMethod"`
	Website       string `form:"website"`
}

// SubmitContact accepts a multipart contact form submission and runs it
// through the intake pipeline. A structurally broken body is an internal
// failure (500); everything the visitor can correct comes back as a 400.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	sub := &domain.Submission{
		Service:       strings.TrimSpace(form.Service),
		Timeline:      strings.TrimSpace(form.Timeline),
		Company:       strings.TrimSpace(form.Company),
		ProjectSize:   strings.TrimSpace(form.ProjectSize),
		Message:       strings.TrimSpace(form.Message),
		FirstName:     strings.TrimSpace(form.FirstName),
		LastName:      strings.TrimSpace(form.LastName),
		Email:         strings.TrimSpace(form.Email),
		Phone:         strings.TrimSpace(form.Phone),
		ContactMethod: strings.TrimSpace(form.ContactMethod),
		Website:       form.Website,
	}

	if header, err := c.FormFile("attachment"); err == nil && header != nil && header.Size > 0 {
		sub.Attachment = &domain.Attachment{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	if err := h.contactUC.SubmitInquiry(c.Request.Context(), sub, c.ClientIP()); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Thanks for reaching out! We'll get back to you within one business day.", nil)
}
