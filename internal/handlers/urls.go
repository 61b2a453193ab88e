package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortify/internal/analytics"
	"github.com/serroba/shortify/internal/auth"
	"github.com/serroba/shortify/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles short URL management operations.
type URLHandler struct {
	service *shortener.Service
	guard   *analytics.Guard
	baseURL string
	logger  *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	guard *analytics.Guard,
	baseURL string,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service: service,
		guard:   guard,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (h *URLHandler) CreateURL(ctx context.Context, req *CreateURLRequest) (*CreateURLResponse, error) {
	url, err := h.service.Create(ctx, shortener.CreateParams{
		LongURL:    req.Body.LongURL,
		Title:      req.Body.Title,
		CustomSlug: req.Body.CustomSlug,
		ExpiresAt:  req.Body.ExpiresAt,
		CreatorID:  auth.CallerFromContext(ctx),
	})
	if err != nil {
		if errors.Is(err, shortener.ErrSlugTaken) {
			return nil, huma.Error400BadRequest("slug already exists")
		}

		h.logger.Error("failed to create url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create url")
	}

	resp := &CreateURLResponse{Body: h.urlBody(url)}
	resp.Headers.Location = resp.Body.ShortURL

	return resp, nil
}

func (h *URLHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	caller := auth.CallerFromContext(ctx)
	if caller == nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	urls, err := h.service.ListByCreator(ctx, *caller)
	if err != nil {
		h.logger.Error("failed to list urls", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list urls")
	}

	resp := &ListURLsResponse{Body: make([]URLBody, 0, len(urls))}
	for _, url := range urls {
		resp.Body = append(resp.Body, h.urlBody(url))
	}

	return resp, nil
}

func (h *URLHandler) GetURL(ctx context.Context, req *URLRequest) (*URLResponse, error) {
	url, err := h.guard.Authorize(ctx, req.Slug, auth.CallerFromContext(ctx))
	if err != nil {
		return nil, mapGuardError(err)
	}

	return &URLResponse{Body: h.urlBody(url)}, nil
}

func (h *URLHandler) UpdateURL(ctx context.Context, req *UpdateURLRequest) (*URLResponse, error) {
	url, err := h.guard.Authorize(ctx, req.Slug, auth.CallerFromContext(ctx))
	if err != nil {
		return nil, mapGuardError(err)
	}

	url, err = h.service.Update(ctx, url, shortener.UpdateParams{
		Disabled:  req.Body.Disabled,
		ExpiresAt: req.Body.ExpiresAt,
	})
	if err != nil {
		h.logger.Error("failed to update url",
			zap.String("slug", req.Slug),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to update url")
	}

	return &URLResponse{Body: h.urlBody(url)}, nil
}

func (h *URLHandler) urlBody(url *shortener.URL) URLBody {
	return URLBody{
		Slug:      url.Slug,
		ShortURL:  fmt.Sprintf("%s/%s", h.baseURL, url.Slug),
		LongURL:   url.LongURL,
		Title:     url.Title,
		CreatedAt: url.CreatedAt,
		ExpiresAt: url.ExpiresAt,
		Disabled:  url.Disabled,
	}
}

// mapGuardError converts ownership guard failures to HTTP errors. The
// mapping is shared by every guarded operation so all of them fail
// identically.
func mapGuardError(err error) error {
	switch {
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("url not found")
	case errors.Is(err, analytics.ErrUnauthenticated):
		return huma.Error401Unauthorized("authentication required")
	case errors.Is(err, analytics.ErrNoOwner), errors.Is(err, analytics.ErrForbidden):
		return huma.Error403Forbidden("you do not have permission to access this url")
	default:
		return huma.Error500InternalServerError("failed to authorize request")
	}
}
