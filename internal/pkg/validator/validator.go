package validator

import (
	"strings"

	"github.com/ideaforge/messaging-service/internal/model"
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateCreateChannel(channel *model.Channel) error {
	if strings.TrimSpace(channel.Name) == "" {
		return model.NewValidationError("channel name is required")
	}

	if len([]rune(channel.Name)) > 80 {
		return model.NewValidationError("channel name exceeds maximum length of 80 characters")
	}

	if !channel.Type.Valid() {
		return model.NewValidationError("channel type %q is not supported", channel.Type)
	}

	return nil
}

// ValidateMessageContent enforces the channel's own limit when it is
// stricter than the service-wide maximum.
func (v *Validator) ValidateMessageContent(content string, messageType model.MessageType, maxLength int) error {
	if strings.TrimSpace(content) == "" {
		return model.NewValidationError("content cannot be empty")
	}

	if !messageType.Valid() {
		return model.NewValidationError("message type %q is not supported", messageType)
	}

	if len([]rune(content)) > maxLength {
		return model.NewValidationError("content exceeds maximum length of %d characters", maxLength)
	}

	return nil
}

func (v *Validator) ValidateReaction(emoji string) error {
	if strings.TrimSpace(emoji) == "" {
		return model.NewValidationError("emoji is required")
	}

	if len([]rune(emoji)) > 16 {
		return model.NewValidationError("emoji exceeds maximum length")
	}

	return nil
}

func (v *Validator) ValidateFileUpload(upload *model.FileUpload) error {
	if strings.TrimSpace(upload.FileName) == "" {
		return model.NewValidationError("file name is required")
	}

	if upload.ByteSize <= 0 {
		return model.NewValidationError("file size must be positive")
	}

	if strings.TrimSpace(upload.URL) == "" {
		return model.NewValidationError("file url is required")
	}

	return nil
}

func (v *Validator) ValidateSearchQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return model.NewValidationError("search query is required")
	}

	return nil
}
