package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	maxTeamNameLen  = 50
	defaultPageSize = 50
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

func isValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validateTeamName(field, name string) *FieldError {
	if name == "" {
		return &FieldError{Field: field, Message: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxTeamNameLen {
		return &FieldError{Field: field, Message: "length must be at most 50"}
	}
	return nil
}

// validateNewMatch checks the "fill out all fields" rules for a new or cloned match.
func validateNewMatch(date, home, away string) error {
	var ferrs []FieldError
	if date == "" {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must not be empty"})
	} else if !isValidDate(date) {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if fe := validateTeamName("home", home); fe != nil {
		ferrs = append(ferrs, *fe)
	}
	if fe := validateTeamName("away", away); fe != nil {
		ferrs = append(ferrs, *fe)
	}
	if home != "" && strings.EqualFold(home, away) {
		ferrs = append(ferrs, FieldError{Field: "away", Message: "must differ from home"})
	}
	return NewInvalidInputError(ferrs)
}

// translateEngineError turns engine input errors into field errors; rule rejections pass through.
func translateEngineError(err error) error {
	var ie *boxscore.IdentityError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ie):
		return NewInvalidInputError([]FieldError{{Field: ie.Field, Message: ie.Message}})
	case errors.Is(err, boxscore.ErrUnknownSide):
		return NewInvalidInputError([]FieldError{{Field: "team", Message: "must be teamA or teamB"}})
	case errors.Is(err, boxscore.ErrUnknownStat):
		return NewInvalidInputError([]FieldError{{Field: "stat", Message: "unknown stat"}})
	case errors.Is(err, boxscore.ErrPlayerIndex):
		return NewInvalidInputError([]FieldError{{Field: "index", Message: "out of range"}})
	default:
		return err
	}
}
