// Package storefront holds the UI-independent state behind the storefront
// and admin screens: the cart, the product form and the admin editing flow.
package storefront

import (
	"errors"

	"catalog/internal/apperr"
)

// Severity grades a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notification is a transient, dismissible message shown to the user.
type Notification struct {
	Message  string
	Severity Severity
}

func success(message string) Notification {
	return Notification{Message: message, Severity: SeveritySuccess}
}

func info(message string) Notification {
	return Notification{Message: message, Severity: SeverityInfo}
}

func failure(message string) Notification {
	return Notification{Message: message, Severity: SeverityError}
}

// errorMessage is the user-facing text of err: the server or client message
// for catalog errors, the full text otherwise.
func errorMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
