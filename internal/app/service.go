// Package service provides the core business service that implements the
// dependencies required by the HTTP API: dashboard assembly, evaluation
// updates, settings upserts and the snapshot operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ssaa/navigator/internal/adapters/store"
	"github.com/ssaa/navigator/internal/domain/history"
	"github.com/ssaa/navigator/internal/domain/model"
	"github.com/ssaa/navigator/internal/domain/scoring"
	"github.com/ssaa/navigator/internal/domain/types"
	"github.com/ssaa/navigator/pkg/logger"
	"github.com/ssaa/navigator/pkg/metrics"
)

// ErrValidation rejects updates carrying out-of-range ratings or negative
// hours before they reach the store.
var ErrValidation = errors.New("validation failure")

const (
	minRating         = 1
	maxRating         = 5
	captureDateLayout = "2006-01-02"
)

// Service implements the API dependencies for the navigator.
type Service struct {
	mu sync.RWMutex

	store  store.RowStore
	engine *scoring.Engine
	differ *history.Differ

	threshold         float64
	noiseFloor        float64
	defaultAssetShare float64

	now func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing row store.
func WithStore(s store.RowStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithThreshold sets the quadrant classification threshold.
func WithThreshold(threshold float64) Option {
	return func(svc *Service) {
		if threshold > 0 {
			svc.threshold = threshold
		}
	}
}

// WithNoiseFloor sets the trail noise floor in percentage points.
func WithNoiseFloor(floor float64) Option {
	return func(svc *Service) {
		if floor >= 0 {
			svc.noiseFloor = floor
		}
	}
}

// WithDefaultAssetShare sets the asset share used when total hours is zero.
func WithDefaultAssetShare(pct float64) Option {
	return func(svc *Service) {
		if pct >= 0 {
			svc.defaultAssetShare = pct
		}
	}
}

// WithClock overrides the capture-date clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// New constructs a new Service with default configuration. A store must be
// supplied via WithStore before Start.
func New(opts ...Option) *Service {
	svc := &Service{
		threshold:         60,
		noiseFloor:        2,
		defaultAssetShare: 20,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Start initializes the domain components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return errors.New("no row store configured")
	}

	s.engine = scoring.New(
		scoring.WithThreshold(s.threshold),
		scoring.WithDefaultAssetShare(s.defaultAssetShare),
	)
	s.differ = history.New(
		history.WithNoiseFloor(s.noiseFloor),
	)

	s.started = true
	s.logger.Info(ctx, "navigator service started",
		logger.Float64("threshold", s.threshold),
		logger.Float64("noiseFloor", s.noiseFloor),
	)

	return nil
}

// Stop shuts down the service and releases the store if it is closable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "navigator service stopped")
}

// Dashboard assembles the full dashboard payload: projects with derived
// metrics, settings, and prior snapshot positions with movement trails.
func (s *Service) Dashboard(ctx context.Context) (types.DashboardData, error) {
	rows, err := s.store.ListAll(ctx, model.TableEvaluations)
	if err != nil {
		return types.DashboardData{}, fmt.Errorf("list evaluations: %w", err)
	}

	evals := make([]model.Evaluation, 0, len(rows))
	for _, row := range rows {
		evals = append(evals, model.EvaluationFromRow(row))
	}

	settings, err := s.settings(ctx)
	if err != nil {
		return types.DashboardData{}, err
	}

	prior, err := s.priorPositions(ctx)
	if err != nil {
		return types.DashboardData{}, err
	}

	shares := s.engine.AssetShare(evals)

	quadrants := map[scoring.Quadrant]int{}
	projects := make([]types.ProjectView, 0, len(evals))
	for _, ev := range evals {
		syncPct, velocityPct := s.engine.ComputeAxes(ev)
		quadrant := s.engine.Classify(syncPct, velocityPct)
		quadrants[quadrant]++

		view := types.ProjectView{
			ID:             ev.ID,
			Name:           ev.Name,
			VisionScore:    ev.VisionScore,
			ResonanceScore: ev.ResonanceScore,
			ContextScore:   ev.ContextScore,
			MarketScore:    ev.MarketScore,
			SpeedScore:     ev.SpeedScore,
			FrictionScore:  ev.FrictionScore,
			WorkHours:      ev.WorkHours,
			LeadPerson:     ev.LeadPerson,
			Status:         string(ev.Status),
			InsightNote:    ev.InsightNote,
			TargetRevenue:  ev.TargetRevenue,
			ActualRevenue:  ev.ActualRevenue,
			TargetProfit:   ev.TargetProfit,
			ActualProfit:   ev.ActualProfit,
			KPIName:        ev.KPIName,
			KPITarget:      ev.KPITarget,
			KPIActual:      ev.KPIActual,
			DecisionDate:   ev.DecisionDate,
			Verdict:        string(ev.Verdict),
			SyncPct:        syncPct,
			VelocityPct:    velocityPct,
			Quadrant:       string(quadrant),
			Color:          quadrant.Color(),
			AssetSharePct:  shares[ev.ID],
			ReturnOnHours:  s.engine.ReturnOnHours(ev),
		}

		if prev, ok := prior[ev.ID]; ok {
			current := history.Position{Sync: syncPct, Velocity: velocityPct}
			if trail, moved := s.differ.Delta(current, prev); moved {
				view.Trail = &types.TrailView{
					From: types.AxisPoint{Sync: trail.From.Sync, Velocity: trail.From.Velocity},
					To:   types.AxisPoint{Sync: trail.To.Sync, Velocity: trail.To.Velocity},
				}
			}
		}

		projects = append(projects, view)
	}

	metrics.UpdateProjectsTracked(len(projects))
	for _, q := range []scoring.Quadrant{scoring.QuadrantStar, scoring.QuadrantPivot, scoring.QuadrantRisk, scoring.QuadrantStop} {
		metrics.UpdateQuadrantCount(string(q), quadrants[q])
	}

	historyView := make(map[string]types.AxisPoint, len(prior))
	for id, pos := range prior {
		historyView[id] = types.AxisPoint{Sync: pos.Sync, Velocity: pos.Velocity}
	}

	return types.DashboardData{
		Projects: projects,
		Settings: settings,
		History:  historyView,
	}, nil
}

// UpdateEvaluation updates the named columns on one evaluation row. It
// validates rating and hours fields first and never auto-creates rows.
func (s *Service) UpdateEvaluation(ctx context.Context, id string, updates map[string]string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: missing project id", ErrValidation)
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	if err := validateUpdates(updates); err != nil {
		metrics.RecordValidationFailure()
		return err
	}

	if err := s.store.Update(ctx, model.TableEvaluations, model.ColProjectID, id, updates); err != nil {
		return fmt.Errorf("update evaluation %s: %w", id, err)
	}

	s.logger.Info(ctx, "evaluation updated",
		logger.String("projectID", id),
		logger.Int("fields", len(updates)),
	)
	return nil
}

// UpsertSetting updates the settings entry keyed by key, inserting it when
// absent. Settings is the only table with upsert semantics; evaluations
// updates never auto-create.
func (s *Service) UpsertSetting(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: missing settings key", ErrValidation)
	}

	err := s.store.Update(ctx, model.TableSettings, model.ColKey, key,
		map[string]string{model.ColValue: value})
	if errors.Is(err, store.ErrRowNotFound) {
		err = s.store.AppendRow(ctx, model.TableSettings, map[string]string{
			model.ColKey:   key,
			model.ColValue: value,
		})
	}
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}

	s.logger.Info(ctx, "setting upserted", logger.String("key", key))
	return nil
}

// Snapshot copies every current evaluation row into the history table,
// stamped with today's date and a shared batch id. Individual append
// failures are counted, not rolled back; the store has no transactions.
func (s *Service) Snapshot(ctx context.Context) (types.SnapshotResult, error) {
	rows, err := s.store.ListAll(ctx, model.TableEvaluations)
	if err != nil {
		return types.SnapshotResult{}, fmt.Errorf("list evaluations: %w", err)
	}

	captureDate := s.now().Format(captureDateLayout)
	batchID := uuid.NewString()

	var result types.SnapshotResult
	for _, row := range rows {
		ev := model.EvaluationFromRow(row)
		if err := s.store.AppendRow(ctx, model.TableHistory, model.HistoryRow(ev, captureDate, batchID)); err != nil {
			result.Failed++
			s.logger.Warn(ctx, "history append failed",
				logger.String("projectID", ev.ID),
				logger.Error(err),
			)
			continue
		}
		result.Appended++
	}

	metrics.RecordSnapshotRun(result.Appended, result.Failed)
	s.logger.Info(ctx, "snapshot completed",
		logger.String("captureDate", captureDate),
		logger.String("batchID", batchID),
		logger.Int("appended", result.Appended),
		logger.Int("failed", result.Failed),
	)

	return result, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"threshold":  s.threshold,
		"noiseFloor": s.noiseFloor,
	}

	if s.started {
		if rows, err := s.store.ListAll(context.Background(), model.TableEvaluations); err == nil {
			stats["projectsTracked"] = len(rows)
			metrics.UpdateProjectsTracked(len(rows))
		}
	}

	return stats
}

// settings flattens the settings table into a key/value map.
func (s *Service) settings(ctx context.Context) (map[string]string, error) {
	rows, err := s.store.ListAll(ctx, model.TableSettings)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if key := row[model.ColKey]; key != "" {
			out[key] = row[model.ColValue]
		}
	}
	return out, nil
}

// priorPositions derives each project's last snapshot position from the
// history table. The latest capture date wins; within one capture, later
// appends win.
func (s *Service) priorPositions(ctx context.Context) (map[string]history.Position, error) {
	rows, err := s.store.ListAll(ctx, model.TableHistory)
	if err != nil {
		// A deployment that never snapshotted has no history sheet yet;
		// that is not an error for dashboard assembly.
		if errors.Is(err, store.ErrTableNotFound) {
			return map[string]history.Position{}, nil
		}
		return nil, fmt.Errorf("list history: %w", err)
	}

	type dated struct {
		pos  history.Position
		date string
	}

	latest := make(map[string]dated, len(rows))
	for _, row := range rows {
		ev := model.EvaluationFromRow(row)
		if ev.ID == "" {
			continue
		}
		syncPct, velocityPct := s.engine.ComputeAxes(ev)
		date := row[model.ColCaptureDate]
		if prev, ok := latest[ev.ID]; ok && date < prev.date {
			continue
		}
		latest[ev.ID] = dated{pos: history.Position{Sync: syncPct, Velocity: velocityPct}, date: date}
	}

	out := make(map[string]history.Position, len(latest))
	for id, d := range latest {
		out[id] = d.pos
	}
	return out, nil
}

// validateUpdates enforces the rating and hours invariants on a field-update
// map keyed by column name.
func validateUpdates(updates map[string]string) error {
	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		val := updates[col]
		switch {
		case model.IsRatingColumn(col):
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil || n < minRating || n > maxRating {
				return fmt.Errorf("%w: %s must be an integer in [%d,%d], got %q", ErrValidation, col, minRating, maxRating, val)
			}
		case col == model.ColWorkHours:
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || f < 0 {
				return fmt.Errorf("%w: %s must be a non-negative number, got %q", ErrValidation, col, val)
			}
		case col == model.ColStatus:
			if !model.Status(val).IsValid() {
				return fmt.Errorf("%w: unknown status %q", ErrValidation, val)
			}
		case col == model.ColVerdict:
			if !model.Verdict(val).IsValid() {
				return fmt.Errorf("%w: unknown verdict %q", ErrValidation, val)
			}
		case col == model.ColProjectID:
			return fmt.Errorf("%w: %s is immutable", ErrValidation, col)
		}
	}
	return nil
}
