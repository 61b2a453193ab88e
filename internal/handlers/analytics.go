package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortify/internal/analytics"
	"github.com/serroba/shortify/internal/auth"
	"github.com/serroba/shortify/internal/useragent"
	"go.uber.org/zap"
)

// AnalyticsHandler serves the six analytics views, each behind the same
// ownership check.
type AnalyticsHandler struct {
	guard      *analytics.Guard
	aggregator *analytics.Aggregator
	logger     *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(
	guard *analytics.Guard,
	aggregator *analytics.Aggregator,
	logger *zap.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		guard:      guard,
		aggregator: aggregator,
		logger:     logger,
	}
}

// authorize runs the ownership check shared by every view.
func (h *AnalyticsHandler) authorize(ctx context.Context, slug string) error {
	if _, err := h.guard.Authorize(ctx, slug, auth.CallerFromContext(ctx)); err != nil {
		return mapGuardError(err)
	}

	return nil
}

func (h *AnalyticsHandler) storeError(slug string, err error) error {
	h.logger.Error("analytics query failed",
		zap.String("slug", slug),
		zap.Error(err),
	)

	return huma.Error500InternalServerError("failed to load analytics")
}

func (h *AnalyticsHandler) Summary(ctx context.Context, req *AnalyticsRequest) (*SummaryResponse, error) {
	if err := h.authorize(ctx, req.Slug); err != nil {
		return nil, err
	}

	summary, err := h.aggregator.Summary(ctx, req.Slug)
	if err != nil {
		return nil, h.storeError(req.Slug, err)
	}

	resp := &SummaryResponse{}
	resp.Body.TotalClicks = summary.TotalClicks
	resp.Body.UniqueVisitors = summary.UniqueVisitors

	return resp, nil
}

func (h *AnalyticsHandler) TimeSeries(ctx context.Context, req *AnalyticsRequest) (*TimeSeriesResponse, error) {
	if err := h.authorize(ctx, req.Slug); err != nil {
		return nil, err
	}

	series, err := h.aggregator.TimeSeries(ctx, req.Slug)
	if err != nil {
		return nil, h.storeError(req.Slug, err)
	}

	resp := &TimeSeriesResponse{Body: make([]TimeSeriesPoint, 0, len(series))}
	for _, point := range series {
		resp.Body = append(resp.Body, TimeSeriesPoint{
			Date:  point.Date,
			Count: point.Count,
		})
	}

	return resp, nil
}

func (h *AnalyticsHandler) Referrers(ctx context.Context, req *AnalyticsRequest) (*ReferrersResponse, error) {
	if err := h.authorize(ctx, req.Slug); err != nil {
		return nil, err
	}

	groups, err := h.aggregator.Referrers(ctx, req.Slug)
	if err != nil {
		return nil, h.storeError(req.Slug, err)
	}

	resp := &ReferrersResponse{Body: make([]ReferrerCount, 0, len(groups))}
	for _, group := range groups {
		resp.Body = append(resp.Body, ReferrerCount{
			Referrer: group.Value,
			Count:    group.Count,
		})
	}

	return resp, nil
}

func (h *AnalyticsHandler) Devices(ctx context.Context, req *AnalyticsRequest) (*DevicesResponse, error) {
	if err := h.authorize(ctx, req.Slug); err != nil {
		return nil, err
	}

	groups, err := h.aggregator.Devices(ctx, req.Slug)
	if err != nil {
		return nil, h.storeError(req.Slug, err)
	}

	resp := &DevicesResponse{Body: make([]DeviceCount, 0, len(groups))}
	for _, group := range groups {
		deviceType := useragent.DeviceDesktop
		if group.Value != nil {
			deviceType = *group.Value
		}

		resp.Body = append(resp.Body, DeviceCount{
			DeviceType: deviceType,
			Count:      group.Count,
		})
	}

	return resp, nil
}

func (h *AnalyticsHandler) Browsers(ctx context.Context, req *AnalyticsRequest) (*BrowsersResponse, error) {
	if err := h.authorize(ctx, req.Slug); err != nil {
		return nil, err
	}

	groups, err := h.aggregator.Browsers(ctx, req.Slug)
	if err != nil {
		return nil, h.storeError(req.Slug, err)
	}

	resp := &BrowsersResponse{Body: make([]BrowserCount, 0, len(groups))}
	for _, group := range groups {
		resp.Body = append(resp.Body, BrowserCount{
			Browser: group.Value,
			Count:   group.Count,
		})
	}

	return resp, nil
}

func (h *AnalyticsHandler) OS(ctx context.Context, req *AnalyticsRequest) (*OSResponse, error) {
	if err := h.authorize(ctx, req.Slug); err != nil {
		return nil, err
	}

	groups, err := h.aggregator.OS(ctx, req.Slug)
	if err != nil {
		return nil, h.storeError(req.Slug, err)
	}

	resp := &OSResponse{Body: make([]OSCount, 0, len(groups))}
	for _, group := range groups {
		resp.Body = append(resp.Body, OSCount{
			OS:    group.Value,
			Count: group.Count,
		})
	}

	return resp, nil
}
