package client

import "hotelpms/internal/pkg/apperror"

var (
	ErrNotFound        = apperror.New(apperror.KindNotFound, "CLIENT_NOT_FOUND", "client not found")
	ErrEmailTaken      = apperror.New(apperror.KindConflict, "EMAIL_TAKEN", "another client already uses this email")
	ErrDocumentTaken   = apperror.New(apperror.KindConflict, "DOCUMENT_TAKEN", "another client already uses this document")
	ErrInvalidDocument = apperror.New(apperror.KindValidation, "INVALID_DOCUMENT", "document must be 7 or 8 digits")
	ErrInvalidPhone    = apperror.New(apperror.KindValidation, "INVALID_PHONE", "phone may only contain digits, spaces, dashes, parentheses and a leading +")
	ErrNameRequired    = apperror.New(apperror.KindValidation, "NAME_REQUIRED", "first name is required")
)
