package mailer

import "errors"

var (
	errMissingRecipient = errors.New("email job has no recipient")
	errMissingContent   = errors.New("email job has neither template nor subject")
)
