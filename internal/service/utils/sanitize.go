package utils

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/otoboard/otoboard/internal/errors"
)

// Comment content is plain text: strip any markup wholesale rather than
// allowing a safe subset.
var strict = bluemonday.StrictPolicy()

func SanitizeText(text string) string {
	return strings.TrimSpace(strict.Sanitize(text))
}

type CommentValidator struct {
	MaxLength int
}

func (e *CommentValidator) Text(text string) error {
	max := e.MaxLength
	if max <= 0 {
		max = 2_000
	}
	if utf8.RuneCountInString(text) > max {
		return &errors.ErrorWithStatusCode{Message: "Comment is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}
