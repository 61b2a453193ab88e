package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortify/internal/messaging"
	"github.com/serroba/shortify/internal/shortener"
	"github.com/serroba/shortify/internal/visits"
	"go.uber.org/zap"
)

// RedirectHandler resolves slugs and emits visit events.
type RedirectHandler struct {
	directory    shortener.Directory
	publishVisit messaging.Publish[visits.Event]
	logger       *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(
	directory shortener.Directory,
	publishVisit messaging.Publish[visits.Event],
	logger *zap.Logger,
) *RedirectHandler {
	return &RedirectHandler{
		directory:    directory,
		publishVisit: publishVisit,
		logger:       logger,
	}
}

// Redirect resolves the slug and returns a 302 to the target. The visit
// event is published after the redirect is decided; a publish failure is
// logged and never affects the response.
func (h *RedirectHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	url, err := shortener.Resolve(ctx, h.directory, req.Slug, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrNotFound):
			return nil, huma.Error404NotFound("URL not found")
		case errors.Is(err, shortener.ErrDisabled):
			return nil, huma.NewError(http.StatusGone, "URL is disabled")
		case errors.Is(err, shortener.ErrExpired):
			return nil, huma.NewError(http.StatusGone, "URL has expired")
		default:
			h.logger.Error("failed to resolve slug",
				zap.String("slug", req.Slug),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to resolve url")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &visits.Event{
		URLID:      url.ID,
		Slug:       url.Slug,
		IPAddress:  meta.ClientIP,
		Referrer:   meta.Referrer,
		UserAgent:  meta.UserAgent,
		OccurredAt: time.Now().UTC(),
	}

	if err := h.publishVisit(event); err != nil {
		h.logger.Error("failed to publish visit event",
			zap.String("slug", url.Slug),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = url.LongURL

	return resp, nil
}
