package watchlist

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	domain "github.com/watchlist/backend/internal/domain/watchlist"
)

// Messages shown when an add is rejected before it reaches the server
const (
	MsgInvalidTitle  = "Please provide a valid movie title (max 40 chars)."
	MsgInvalidYear   = "Please enter a valid year (1888-2099)."
	MsgInvalidPoster = "Please enter a valid poster URL (JPG, PNG, WebP)."
)

var posterPattern = regexp.MustCompile(`(?i)^https?://\S+\.(jpg|jpeg|png|webp)$`)

// MovieInput is what the user typed into the add form
type MovieInput struct {
	Title  string `validate:"movie_title"`
	Year   string `validate:"movie_year"`
	Poster string `validate:"poster_url"`
}

// ValidationError names the first field that failed and the message to show
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var tagMessages = map[string]string{
	"movie_title": MsgInvalidTitle,
	"movie_year":  MsgInvalidYear,
	"poster_url":  MsgInvalidPoster,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("movie_title", func(fl validator.FieldLevel) bool {
		title := fl.Field().String()
		return title != "" && utf8.RuneCountInString(title) <= domain.MaxTitleLength
	})
	_ = v.RegisterValidation("movie_year", func(fl validator.FieldLevel) bool {
		y, ok := ParseYear(fl.Field().String())
		return ok && y >= domain.MinYear && y <= domain.MaxYear
	})
	_ = v.RegisterValidation("poster_url", func(fl validator.FieldLevel) bool {
		return posterPattern.MatchString(fl.Field().String())
	})
	return v
}

// Normalize trims surrounding whitespace from every field
func (in MovieInput) Normalize() MovieInput {
	return MovieInput{
		Title:  strings.TrimSpace(in.Title),
		Year:   strings.TrimSpace(in.Year),
		Poster: strings.TrimSpace(in.Poster),
	}
}

// Validate checks title, then year, then poster, and reports the first
// failure as a *ValidationError. Fields are trimmed first.
func Validate(in MovieInput) error {
	err := validate.Struct(in.Normalize())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	msg, ok := tagMessages[first.Tag()]
	if !ok {
		msg = first.Error()
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}

// ParseYear reads the leading integer of s the way a lenient form field
// does: leading whitespace and an optional sign are allowed, and parsing
// stops at the first non-digit. "2021", " 2021x" and "+2021" all give 2021.
// It reports false when no digit is found.
func ParseYear(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n < math.MaxInt32 {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
