package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/welovepdf/pdfconv/internal/dbx"
	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/models"
	"github.com/welovepdf/pdfconv/internal/repositories/kv"
)

const usageKey = "welove-pdf-daily-usage"

// DefaultDailyLimit caps conversions per local calendar day.
const DefaultDailyLimit = 20

// QuotaService tracks the rolling daily conversion counter. State is
// scoped to one installation and one local calendar day; reading a record
// with a stale date rolls it over to a fresh one.
//
// CanConvert followed by IncrementUsage is a check-then-act pair in the
// caller's control flow. IncrementUsage re-checks the limit inside a
// transaction, so exceeding the limit is impossible even if the two calls
// ever race; CanConvert stays advisory.
type QuotaService struct {
	db     *sql.DB
	limit  int
	logger logging.Logger

	// now is a test seam for the clock; rollover uses its local calendar date.
	now func() time.Time
}

func NewQuotaService(db *sql.DB, limit int, logger logging.Logger) *QuotaService {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &QuotaService{db: db, limit: limit, logger: logger, now: time.Now}
}

// DailyUsage returns the current day's record, rolling over and persisting
// a fresh one when the stored date is stale. Storage errors are masked: the
// caller always receives a usable record.
func (s *QuotaService) DailyUsage(ctx context.Context) models.DailyUsage {
	repo := kv.NewSQLiteRepository(s.db)
	usage, changed, err := s.readUsage(ctx, repo)
	if err != nil {
		s.logger.Warn(ctx, "failed to load daily usage", "error", err)
		return s.freshUsage()
	}
	if changed {
		if err := s.writeUsage(ctx, repo, usage); err != nil {
			s.logger.Warn(ctx, "failed to save daily usage", "error", err)
		}
	}
	return usage
}

// CanConvert reports whether another conversion is admitted today.
func (s *QuotaService) CanConvert(ctx context.Context) bool {
	return s.DailyUsage(ctx).Conversions < s.limit
}

// IncrementUsage counts one conversion. It returns false without mutating
// anything once the limit is reached. The read-check-increment runs in a
// single transaction.
func (s *QuotaService) IncrementUsage(ctx context.Context) bool {
	admitted := false

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		usage, _, err := s.readUsage(ctx, repo)
		if err != nil {
			return err
		}
		if usage.Conversions >= s.limit {
			return nil
		}
		usage.Conversions++
		if err := s.writeUsage(ctx, repo, usage); err != nil {
			return err
		}
		admitted = true
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "failed to increment daily usage", "error", err)
		return false
	}
	return admitted
}

// Remaining returns how many conversions are left today, never negative.
func (s *QuotaService) Remaining(ctx context.Context) int {
	remaining := s.limit - s.DailyUsage(ctx).Conversions
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UsageInfo exposes the quota summary for display.
func (s *QuotaService) UsageInfo(ctx context.Context) models.UsageInfo {
	usage := s.DailyUsage(ctx)
	return models.UsageInfo{
		Used:      usage.Conversions,
		Remaining: s.limit - usage.Conversions,
		Limit:     s.limit,
		ResetTime: s.nextResetTime(),
	}
}

// TimeUntilReset formats the time remaining until the next local midnight,
// e.g. "2h 13m" or "45m".
func (s *QuotaService) TimeUntilReset() string {
	diff := s.nextResetTime().Sub(s.now())

	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s *QuotaService) todayString() string {
	return s.now().Format("2006-01-02")
}

// nextResetTime is the upcoming local midnight.
func (s *QuotaService) nextResetTime() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

func (s *QuotaService) freshUsage() models.DailyUsage {
	return models.DailyUsage{
		Date:      s.todayString(),
		LastReset: s.now().UnixMilli(),
	}
}

// readUsage loads the stored record, rolling over stale or absent records.
// changed reports whether the returned record differs from storage.
func (s *QuotaService) readUsage(ctx context.Context, repo kv.Repository) (usage models.DailyUsage, changed bool, err error) {
	data, err := repo.Get(ctx, usageKey)
	if err != nil {
		return models.DailyUsage{}, false, err
	}
	if data == nil {
		return s.freshUsage(), true, nil
	}

	if err := json.Unmarshal(data, &usage); err != nil {
		return s.freshUsage(), true, nil
	}
	if usage.Date != s.todayString() {
		return s.freshUsage(), true, nil
	}
	return usage, false, nil
}

func (s *QuotaService) writeUsage(ctx context.Context, repo kv.Repository, usage models.DailyUsage) error {
	data, err := json.Marshal(usage)
	if err != nil {
		return err
	}
	return repo.Set(ctx, usageKey, data)
}
