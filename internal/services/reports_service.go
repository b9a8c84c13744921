package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	reportCachePrefix  = "commission_report:"
	reportCacheVerKey  = reportCachePrefix + "ver"
	reportCacheTTL     = 5 * time.Minute
	reportCacheTimeout = 500 * time.Millisecond
)

// ReportsService is the read path over committed commission rows. It is
// eventually consistent with very recent fully-paid transitions and may
// serve summaries from the Redis cache when one is configured.
type ReportsService struct {
	CommissionRepo repositories.CommissionRepository
	Cache          *redis.Client
	RequestID      string
}

// AgentSummary is one row of the per-agent commission report.
type AgentSummary struct {
	AgentID     int64           `json:"agent_id"`
	AgentName   string          `json:"agent_name"`
	TotalTrips  int             `json:"total_trips"`
	TotalPeople int             `json:"total_people"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CommissionDetail is one row of the per-agent detail view.
type CommissionDetail struct {
	CommissionID int64              `json:"commission_id"`
	TripCode     string             `json:"trip_code"`
	CustomerName string             `json:"customer_name"`
	TotalPeople  int                `json:"total_people"`
	Amount       decimal.Decimal    `json:"amount"`
	Trip         models.TripSummary `json:"trip"`
	CreatedAt    string             `json:"created_at"`
}

// SummarizeByAgent groups matching commissions per agent: exact decimal
// sum, distinct trips, distinct bookings (one booking = one primary
// customer = one person). Sorted by agent name, case-insensitive.
func (s ReportsService) SummarizeByAgent(f domain.CommissionFilter) ([]AgentSummary, error) {
	if cached, ok := s.cachedSummary(f); ok {
		return cached, nil
	}

	rows, err := s.CommissionRepo.ListWithBooking(f)
	if err != nil {
		return nil, err
	}

	summaries := GroupByAgent(rows)

	s.storeSummary(f, summaries)
	return summaries, nil
}

// GroupByAgent is the pure aggregation step, split out so it can be tested
// against fixed row sets.
func GroupByAgent(rows []repositories.CommissionRow) []AgentSummary {
	type acc struct {
		summary  AgentSummary
		trips    map[int64]struct{}
		bookings map[int64]struct{}
	}
	groups := map[int64]*acc{}

	for _, row := range rows {
		g, ok := groups[row.AgentID]
		if !ok {
			g = &acc{
				summary: AgentSummary{
					AgentID:     row.AgentID,
					AgentName:   row.AgentName,
					TotalAmount: decimal.Zero,
				},
				trips:    map[int64]struct{}{},
				bookings: map[int64]struct{}{},
			}
			groups[row.AgentID] = g
		}
		g.summary.TotalAmount = g.summary.TotalAmount.Add(row.Amount)
		if row.TripID > 0 {
			g.trips[row.TripID] = struct{}{}
		}
		g.bookings[row.BookingID] = struct{}{}
	}

	out := make([]AgentSummary, 0, len(groups))
	for _, g := range groups {
		g.summary.TotalTrips = len(g.trips)
		g.summary.TotalPeople = len(g.bookings)
		out = append(out, g.summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].AgentName) < strings.ToLower(out[j].AgentName)
	})
	return out
}

// DetailForAgent lists the agent's commissions in range, newest first. A
// zero match yields an empty slice, not an error.
func (s ReportsService) DetailForAgent(agentID int64, f domain.CommissionFilter) ([]CommissionDetail, error) {
	if agentID <= 0 {
		return nil, domain.ValidationError{Field: "agent_id", Msg: "invalid id"}
	}
	rows, err := s.CommissionRepo.ListForAgent(agentID, f)
	if err != nil {
		return nil, err
	}

	out := make([]CommissionDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, CommissionDetail{
			CommissionID: row.ID,
			TripCode:     row.Trip.Code,
			CustomerName: utils.DisplayName(row.CustomerFirst, row.CustomerLast, row.CustomerFirstEn, row.CustomerLastEn),
			TotalPeople:  1,
			Amount:       row.Amount,
			Trip:         row.Trip,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

// InvalidateCache bumps the version key so every cached summary goes stale
// at once. Called after commission writes.
func (s *ReportsService) InvalidateCache() {
	if s == nil || s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), reportCacheTimeout)
	defer cancel()
	if err := s.Cache.Incr(ctx, reportCacheVerKey).Err(); err != nil {
		utils.LogEvent(s.RequestID, "reports", "cache_invalidate", err.Error())
	}
}

func (s ReportsService) cacheKey(f domain.CommissionFilter) string {
	ver := "0"
	ctx, cancel := context.WithTimeout(context.Background(), reportCacheTimeout)
	defer cancel()
	if v, err := s.Cache.Get(ctx, reportCacheVerKey).Result(); err == nil {
		ver = v
	}
	return fmt.Sprintf("%ssummary:v%s:%s:%s:%s", reportCachePrefix, ver,
		f.DateFrom, f.DateTo, strings.ToLower(strings.TrimSpace(f.NameSearch)))
}

func (s ReportsService) cachedSummary(f domain.CommissionFilter) ([]AgentSummary, bool) {
	if s.Cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), reportCacheTimeout)
	defer cancel()
	raw, err := s.Cache.Get(ctx, s.cacheKey(f)).Result()
	if err != nil {
		return nil, false
	}
	var out []AgentSummary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s ReportsService) storeSummary(f domain.CommissionFilter, summaries []AgentSummary) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), reportCacheTimeout)
	defer cancel()
	if err := s.Cache.Set(ctx, s.cacheKey(f), raw, reportCacheTTL).Err(); err != nil {
		utils.LogEvent(s.RequestID, "reports", "cache_store", err.Error())
	}
}
