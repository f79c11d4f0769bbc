package security

import (
	"path/filepath"
	"strings"
)

// MaxAttachmentSize is the upload ceiling: 10 MiB
const MaxAttachmentSize = 10 * 1024 * 1024

// AttachmentValidationResult contains the result of attachment validation
type AttachmentValidationResult struct {
	Valid     bool   // Whether the attachment passed all policy checks
	Extension string // File extension, lowercased
	Error     string // Error message if validation failed
}

// Allowed file extensions (strict whitelist): documents and archives only,
// no images or executables
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".zip":  true,
}

// Allowed declared MIME types - DO NOT include application/octet-stream
var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// ValidateAttachment enforces the upload policy on a file's declared
// metadata:
// 1. Declared MIME type whitelist (PDF, Word, Excel, Zip)
// 2. Extension whitelist (content is never stored, so extension is checked
//    as a second signal against type spoofing)
// 3. Size ceiling of 10 MiB
func ValidateAttachment(filename string, size int64, declaredMIME string) AttachmentValidationResult {
	result := AttachmentValidationResult{}

	if !allowedMIMETypes[normalizeMIME(declaredMIME)] {
		result.Error = "Invalid file type"
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if !allowedExtensions[ext] {
		result.Error = "Invalid file type"
		return result
	}

	if size > MaxAttachmentSize {
		result.Error = "File too large"
		return result
	}

	result.Valid = true
	return result
}

// normalizeMIME strips parameters such as "; charset=..." and lowercases
func normalizeMIME(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// AllowedExtensions returns the extension whitelist for error messages
func AllowedExtensions() []string {
	extensions := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		extensions = append(extensions, ext)
	}
	return extensions
}
