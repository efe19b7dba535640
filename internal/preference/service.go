// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/taibuivan/dossier/internal/platform/apperr"
	"github.com/taibuivan/dossier/internal/platform/validate"
)

// # Service Layer

// Service resolves and stores interface locales.
type Service struct {
	repo      Repository
	ttl       time.Duration
	supported []language.Tag
	matcher   language.Matcher
	logger    *slog.Logger
}

/*
NewService constructs a preference [Service].

Parameters:
  - repo: Repository
  - supported: []string (locale tags, most preferred first; the first one is the fallback)
  - ttl: time.Duration (lifetime of a stored choice)
  - logger: *slog.Logger

Returns:
  - *Service
  - error: No locales, or a tag that does not parse
*/
func NewService(repo Repository, supported []string, ttl time.Duration, logger *slog.Logger) (*Service, error) {
	if len(supported) == 0 {
		return nil, errors.New("preference: no supported locales")
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, raw := range supported {
		tag, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("preference: supported locale %q: %w", raw, err)
		}
		tags = append(tags, tag)
	}

	return &Service{
		repo:      repo,
		ttl:       ttl,
		supported: tags,
		matcher:   language.NewMatcher(tags),
		logger:    logger,
	}, nil
}

// Supported returns the configured locales as canonical base languages.
func (service *Service) Supported() []string {
	locales := make([]string, 0, len(service.supported))
	for _, tag := range service.supported {
		locales = append(locales, baseOf(tag))
	}
	return locales
}

/*
Locale returns the locale explicitly chosen by owner.

Description: An anonymous owner (""), an absent entry or an unreachable store
all read as "no choice". Storage failures are logged, never surfaced, so the
interface still renders in the negotiated language.

Returns:
  - string: Canonical locale, or ""
*/
func (service *Service) Locale(context context.Context, owner string) string {
	if owner == "" {
		return ""
	}

	locale, err := service.repo.GetLocale(context, owner)
	if err != nil {
		if !errors.Is(err, ErrNotSet) {
			service.logger.WarnContext(context, "locale_preference_unavailable", slog.Any("error", err))
		}
		return ""
	}

	return locale
}

/*
SetLocale validates and stores owner's locale choice.

Description: The requested tag is matched against the supported locales with
the same matcher used for Accept-Language, so "de-AT" is stored as "de".
Tags that only match by falling back to the default are rejected.

Returns:
  - string: The canonical locale that was stored
  - error: UNAUTHORIZED for anonymous owners, VALIDATION_ERROR, or storage failures
*/
func (service *Service) SetLocale(context context.Context, owner, requested string) (string, error) {
	if owner == "" {
		return "", apperr.Unauthorized("A session or client id is required to store preferences")
	}

	validator := &validate.Validator{}
	validator.LocaleTag("locale", requested)
	if err := validator.Err(); err != nil {
		return "", err
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return "", validationError("Unknown language tag")
	}

	_, index, confidence := service.matcher.Match(tag)
	if confidence < language.High {
		return "", validationError("Must be one of: " + strings.Join(service.Supported(), ", "))
	}

	locale := baseOf(service.supported[index])
	if err := service.repo.SetLocale(context, owner, locale, service.ttl); err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.InfoContext(context, "locale_preference_saved", slog.String("locale", locale))
	return locale, nil
}

// ClearLocale forgets owner's choice.
func (service *Service) ClearLocale(context context.Context, owner string) error {
	if owner == "" {
		return apperr.Unauthorized("A session or client id is required to store preferences")
	}
	if err := service.repo.ClearLocale(context, owner); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Negotiate returns the supported locale that best serves an Accept-Language
// header. It falls back to the first supported locale.
func (service *Service) Negotiate(acceptLanguage string) string {
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return baseOf(service.supported[0])
	}

	_, index, _ := service.matcher.Match(desired...)
	return baseOf(service.supported[index])
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func validationError(message string) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: "locale", Message: message})
}
