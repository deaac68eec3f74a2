package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/skillshare/skillshare_hub/storage"
)

var validate = validator.New()

type Handler struct {
	store    storage.Storage
	sessions *session.Store
}

func New(store storage.Storage, sessions *session.Store) *Handler {
	return &Handler{store: store, sessions: sessions}
}

// validationDetails flattens validator errors into a field → message map so
// the response names every failing field at once.
func validationDetails(err error) map[string]string {
	details := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			details[fe.Field()] = fe.Error()
		}
	}
	return details
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts a date with or without a time component, matching the
// formats the booking forms submit.
func parseDate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
