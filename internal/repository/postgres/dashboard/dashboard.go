package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

type Repository struct {
	*postgresql.Database

	cache *redis.Client
}

func NewRepository(database *postgresql.Database, cache *redis.Client) *Repository {
	return &Repository{Database: database, cache: cache}
}

// GetStats returns the dashboard aggregates, cached for a short TTL. The
// dashboard screen polls and the underlying counts move slowly, so a stale
// minute is acceptable.
func (r Repository) GetStats(ctx context.Context) (StatsResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats StatsResponse
			if err := json.Unmarshal(cached, &stats); err == nil {
				return stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).Warn("dashboard stats cache read failed")
		}
	}

	stats, err := r.queryStats(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	if r.cache != nil {
		payload, err := json.Marshal(stats)
		if err == nil {
			if err := r.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("dashboard stats cache write failed")
			}
		}
	}

	return stats, nil
}

func (r Repository) queryStats(ctx context.Context) (StatsResponse, error) {
	today := time.Now().Format("2006-01-02")
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	weekAhead := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	query := `
		SELECT
			(SELECT count(id) FROM clients WHERE deleted_at IS NULL) AS total_clients,
			(SELECT count(id) FROM clients WHERE deleted_at IS NULL AND joining_date = $1) AS today_clients,
			(SELECT count(id) FROM clients WHERE deleted_at IS NULL AND joining_date >= $2) AS week_clients,
			(SELECT COALESCE(sum(paid_amount), 0) FROM clients WHERE deleted_at IS NULL) AS total_revenue,
			(SELECT COALESCE(sum(paid_amount), 0) FROM clients WHERE deleted_at IS NULL AND payment_date = $1) AS today_revenue,
			(SELECT COALESCE(sum(paid_amount), 0) FROM clients WHERE deleted_at IS NULL AND payment_date >= $2) AS week_revenue,
			(SELECT count(id) FROM clients WHERE deleted_at IS NULL AND expiry_date BETWEEN $1 AND $3) AS expiring_this_week,
			(SELECT count(id) FROM attendance WHERE deleted_at IS NULL AND attendance_date = $1) AS today_attendance
	`

	var stats StatsResponse

	err := r.QueryRowContext(ctx, query, today, weekAgo, weekAhead).Scan(
		&stats.TotalClients,
		&stats.TodayClients,
		&stats.WeekClients,
		&stats.TotalRevenue,
		&stats.TodayRevenue,
		&stats.WeekRevenue,
		&stats.ExpiringThisWeek,
		&stats.TodayAttendance,
	)
	if err != nil {
		return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting dashboard stats"), http.StatusInternalServerError)
	}

	return stats, nil
}
