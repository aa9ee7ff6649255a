package service

import "errors"

var (
	ErrEmptyQuery           = errors.New("query text is required")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrNoCompletionChoices  = errors.New("no response generated")
)
