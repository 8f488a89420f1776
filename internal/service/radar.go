// Package service exposes the dashboard use cases over kratos HTTP.
package service

import (
	"strconv"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/rocketinsights/market_radar/internal/intel"
	"github.com/rocketinsights/market_radar/internal/usecase"
)

// RadarService adapts HTTP requests to the dashboard use cases.
type RadarService struct {
	intel       *usecase.IntelUseCase
	subscribers *usecase.SubscriberUseCase
	log         *log.Helper
}

// NewRadarService wires the HTTP service.
func NewRadarService(intelUC *usecase.IntelUseCase, subscriberUC *usecase.SubscriberUseCase, logger log.Logger) *RadarService {
	return &RadarService{
		intel:       intelUC,
		subscribers: subscriberUC,
		log:         log.NewHelper(logger),
	}
}

// Briefing serves GET /api/v1/briefing?region=.
func (s *RadarService) Briefing(ctx khttp.Context) error {
	region := ctx.Query().Get("region")
	items := s.intel.Briefing(ctx, region)
	return ctx.Result(200, map[string]any{"region": region, "news": items})
}

// OOH serves GET /api/v1/ooh?region=.
func (s *RadarService) OOH(ctx khttp.Context) error {
	region := ctx.Query().Get("region")
	items := s.intel.OOH(ctx, region)
	return ctx.Result(200, map[string]any{"region": region, "campaigns": items})
}

type scanRequest struct {
	Query   string `json:"query"`
	Country string `json:"country"`
	Media   string `json:"media"`
}

// Scan serves POST /api/v1/scan.
func (s *RadarService) Scan(ctx khttp.Context) error {
	var req scanRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	wins, err := s.intel.MarketScan(ctx, req.Query, req.Country, req.Media)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"wins": wins})
}

// LatestScan serves GET /api/v1/scan/latest.
func (s *RadarService) LatestScan(ctx khttp.Context) error {
	wins, err := s.intel.LatestScan(ctx)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"wins": wins})
}

type leadershipRequest struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Country string `json:"country"`
}

// Leadership serves POST /api/v1/leadership.
func (s *RadarService) Leadership(ctx khttp.Context) error {
	var req leadershipRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	leaders := s.intel.Leadership(ctx, req.Role, req.Company, req.Country)
	return ctx.Result(200, map[string]any{"leaders": leaders})
}

type masterRequest struct {
	Query string `json:"query"`
}

// Master serves POST /api/v1/master.
func (s *RadarService) Master(ctx khttp.Context) error {
	var req masterRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	report, err := s.intel.MasterSearch(ctx, req.Query)
	if err != nil {
		return err
	}
	return ctx.Result(200, report)
}

// History serves GET /api/v1/history/{category}.
func (s *RadarService) History(ctx khttp.Context) error {
	category := ctx.Vars().Get("category")
	entries, err := s.intel.History(ctx, category)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"category": category, "entries": entries})
}

type subscribeRequest struct {
	Email   string   `json:"email"`
	Regions []string `json:"regions"`
	Topics  []string `json:"topics"`
}

// Subscribe serves POST /api/v1/subscribe.
func (s *RadarService) Subscribe(ctx khttp.Context) error {
	var req subscribeRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	outcome, err := s.subscribers.Subscribe(ctx, req.Email, req.Regions, req.Topics)
	if err != nil {
		return err
	}
	return ctx.Result(200, outcome)
}

// Profile serves GET /api/v1/subscriber?email=, the returning-visitor lookup.
func (s *RadarService) Profile(ctx khttp.Context) error {
	profile, err := s.subscribers.Profile(ctx, ctx.Query().Get("email"))
	if err != nil {
		return err
	}
	return ctx.Result(200, profile)
}

type unsubscribeRequest struct {
	Email string `json:"email"`
}

// Unsubscribe serves POST /api/v1/unsubscribe.
func (s *RadarService) Unsubscribe(ctx khttp.Context) error {
	var req unsubscribeRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := s.subscribers.Unsubscribe(ctx, req.Email); err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"unsubscribed": true})
}

// Sources serves GET /api/v1/sources, the curated publication roster.
func (s *RadarService) Sources(ctx khttp.Context) error {
	return ctx.Result(200, map[string]any{"sources": intel.Sources})
}

// Options serves GET /api/v1/options, the dashboard filter vocabularies.
func (s *RadarService) Options(ctx khttp.Context) error {
	return ctx.Result(200, map[string]any{
		"media_types":  intel.MediaTypes,
		"regions":      intel.Regions,
		"topics":       intel.Topics,
		"common_roles": intel.CommonRoles,
	})
}

// ListSubscribers serves GET /api/v1/admin/subscribers.
func (s *RadarService) ListSubscribers(ctx khttp.Context) error {
	subs, err := s.subscribers.List(ctx)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"subscribers": subs})
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole serves PUT /api/v1/admin/subscribers/{email}/role.
func (s *RadarService) SetRole(ctx khttp.Context) error {
	var req roleRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	email := ctx.Vars().Get("email")
	if err := s.subscribers.SetRole(ctx, email, req.Role); err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"updated": true})
}

// DeleteSubscriber serves DELETE /api/v1/admin/subscribers/{email}.
func (s *RadarService) DeleteSubscriber(ctx khttp.Context) error {
	email := ctx.Vars().Get("email")
	if err := s.subscribers.Delete(ctx, email); err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"deleted": true})
}

// ScanLog serves GET /api/v1/admin/scans?limit=.
func (s *RadarService) ScanLog(ctx khttp.Context) error {
	limit, _ := strconv.Atoi(ctx.Query().Get("limit"))
	scans, err := s.intel.RecentScans(ctx, limit)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"scans": scans})
}

// ClearHistory serves DELETE /api/v1/history.
func (s *RadarService) ClearHistory(ctx khttp.Context) error {
	if err := s.intel.ClearHistory(ctx); err != nil {
		return err
	}
	return ctx.Result(200, map[string]any{"cleared": true})
}
