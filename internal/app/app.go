package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/notifications"
	"github.com/thenoetrevino/phaseboard/internal/report"
	boardservice "github.com/thenoetrevino/phaseboard/internal/services/board"
	"github.com/thenoetrevino/phaseboard/internal/team"
	"github.com/thenoetrevino/phaseboard/internal/types"
	"golang.org/x/sync/errgroup"
)

// App holds all application services and provides dependency injection.
// It is the coordinator between the board and the notification ledger:
// board mutations return pending notifications and App publishes them.
type App struct {
	Board     boardservice.Service
	Ledger    *notifications.Ledger
	Directory *team.Directory
	Pipeline  *config.Pipeline

	activity   *Activity
	sink       notifications.Sink
	thresholds metrics.Thresholds
	now        func() time.Time
	logger     *slog.Logger

	// mu serialises read-modify-write sequences built on UpdateCard
	mu sync.Mutex
}

// New builds the board from the pipeline, seeds its cards and wires the ledger
func New(p *config.Pipeline, opts ...Option) (*App, error) {
	cfg := &appConfig{
		now:        time.Now,
		newID:      types.NewID,
		thresholds: metrics.DefaultThresholds(),
		capacity:   models.DefaultNotificationCapacity,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	dir, err := p.Directory()
	if err != nil {
		return nil, fmt.Errorf("failed to build team directory: %w", err)
	}

	columns := make([]*models.Column, 0, len(p.Columns))
	for _, spec := range p.Columns {
		columns = append(columns, &models.Column{ID: spec.ID, Title: spec.Title, Phase: spec.Phase})
	}

	board, err := boardservice.NewService(boardservice.Config{
		Columns:   columns,
		Templates: p.Registry(),
		Directory: dir,
		Now:       cfg.now,
		NewID:     cfg.newID,
		Logger:    cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	ledger := notifications.NewLedger(
		notifications.WithCapacity(cfg.capacity),
		notifications.WithSink(cfg.sink),
		notifications.WithSinkContext(cfg.sinkCtx),
		notifications.WithClock(cfg.now),
		notifications.WithIDGenerator(cfg.newID),
		notifications.WithLogger(cfg.logger),
	)

	a := &App{
		Board:      board,
		Ledger:     ledger,
		Directory:  dir,
		Pipeline:   p,
		activity:   newActivity(cfg.now()),
		sink:       cfg.sink,
		thresholds: cfg.thresholds,
		now:        cfg.now,
		logger:     cfg.logger,
	}

	if err := a.seed(); err != nil {
		return nil, err
	}

	return a, nil
}

// seed creates the pipeline's starting cards with fresh checklists
func (a *App) seed() error {
	for _, sc := range a.Pipeline.Cards {
		draft := boardservice.CardDraft{
			ID:           sc.ID,
			Title:        sc.Title,
			Description:  sc.Description,
			UseTemplates: true,
			VariantID:    sc.VariantID,
			CampaignName: sc.CampaignName,
		}
		if sc.Status != "" {
			status, err := models.ParseStatus(sc.Status)
			if err != nil {
				return fmt.Errorf("seed card %q: %w", sc.Title, err)
			}
			draft.Status = status
		}
		for _, id := range sc.Assignees {
			m, err := a.Directory.Lookup(id)
			if err != nil {
				return fmt.Errorf("seed card %q: %w", sc.Title, err)
			}
			draft.AssignedTo = append(draft.AssignedTo, m)
		}
		for _, id := range sc.Tags {
			if tag, ok := a.Pipeline.Tag(id); ok {
				draft.Tags = append(draft.Tags, tag)
			}
		}
		if sc.VariantID != "" {
			draft.Tags = append(draft.Tags, models.VariantTag(sc.VariantID))
		}

		if _, err := a.Board.CreateCard(sc.Column, draft); err != nil {
			return fmt.Errorf("seed card %q: %w", sc.Title, err)
		}
	}
	a.logger.Debug("board seeded", "cards", len(a.Pipeline.Cards))
	return nil
}

// CreateCard adds a card to a column
func (a *App) CreateCard(columnID types.ColumnID, draft boardservice.CardDraft) (*models.Card, error) {
	card, err := a.Board.CreateCard(columnID, draft)
	if err != nil {
		return nil, err
	}
	a.activity.CardsCreated.Add(1)
	return card, nil
}

// MoveCard moves a card and publishes one notification per assignee
func (a *App) MoveCard(cardID types.CardID, sourceID, destID types.ColumnID) (*models.Card, []models.Notification, error) {
	card, pending, err := a.Board.MoveCard(cardID, sourceID, destID)
	if err != nil {
		return nil, nil, err
	}
	a.activity.CardsMoved.Add(1)
	return card, a.publish(pending), nil
}

// MoveCardTo moves a card from wherever it currently is
func (a *App) MoveCardTo(cardID types.CardID, destID types.ColumnID) (*models.Card, []models.Notification, error) {
	_, sourceID, err := a.Board.FindCard(cardID)
	if err != nil {
		return nil, nil, err
	}
	return a.MoveCard(cardID, sourceID, destID)
}

// ToggleSubtask flips a subtask and publishes any hand-off notification
func (a *App) ToggleSubtask(columnID types.ColumnID, cardID types.CardID, subtaskID types.SubtaskID) ([]models.Notification, error) {
	pending, err := a.Board.ToggleSubtask(columnID, cardID, subtaskID)
	if err != nil {
		return nil, err
	}
	a.activity.SubtasksToggled.Add(1)
	return a.publish(pending), nil
}

// UpdateCard replaces a card in place
func (a *App) UpdateCard(columnID types.ColumnID, card *models.Card) error {
	return a.Board.UpdateCard(columnID, card)
}

// SetStatus changes a card's status through UpdateCard
func (a *App) SetStatus(cardID types.CardID, status models.Status) (*models.Card, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	card, columnID, err := a.Board.FindCard(cardID)
	if err != nil {
		return nil, err
	}
	card.Status = status
	if err := a.Board.UpdateCard(columnID, card); err != nil {
		return nil, err
	}
	return card, nil
}

// RecordMetrics derives and classifies a new metrics snapshot, stores it with
// the resulting status, and tells every assignee
func (a *App) RecordMetrics(cardID types.CardID, base metrics.Base, actorID types.MemberID) (*models.Card, []models.Notification, error) {
	actor, err := a.Directory.Lookup(actorID)
	if err != nil {
		return nil, nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	card, columnID, err := a.Board.FindCard(cardID)
	if err != nil {
		return nil, nil, err
	}

	m, err := metrics.Derive(base, actor, a.now())
	if err != nil {
		return nil, nil, err
	}
	card.Metrics = &m
	card.Status = metrics.Evaluate(m, a.thresholds)

	if err := a.Board.UpdateCard(columnID, card); err != nil {
		return nil, nil, err
	}

	pending := make([]models.PendingNotification, 0, len(card.AssignedTo))
	for _, member := range card.AssignedTo {
		if member == nil {
			continue
		}
		pending = append(pending, models.PendingNotification{
			Type:    models.NotificationMetricsUpdated,
			Message: fmt.Sprintf("Metrics updated for %s by %s: %s", card.Title, actor.Name, card.Status),
			CardID:  card.ID,
			ForUser: member.ID,
		})
	}

	a.logger.Info("metrics recorded",
		"card_id", card.ID,
		"status", card.Status,
		"roas", m.ROAS,
		"actor", actor.ID)

	a.activity.MetricsRecorded.Add(1)
	return card, a.publish(pending), nil
}

func (a *App) publish(pending []models.PendingNotification) []models.Notification {
	published := a.Ledger.PublishAll(pending)
	a.activity.published(len(published))
	return published
}

// Activity returns the counters for mutations made through this App.
// Seeding is not counted.
func (a *App) Activity() ActivitySnapshot {
	return a.activity.Snapshot(a.now())
}

// Report generates the phase report for one column
func (a *App) Report(columnID types.ColumnID) (*report.PhaseReport, error) {
	col, next, err := a.Board.ReportSnapshot(columnID)
	if err != nil {
		return nil, err
	}
	return report.Generate(col, next, a.Directory.Members(), a.now()), nil
}

// Reports generates every column's report concurrently, in phase order
func (a *App) Reports(ctx context.Context) ([]*report.PhaseReport, error) {
	columns := a.Board.ListColumns()
	reports := make([]*report.PhaseReport, len(columns))

	g, ctx := errgroup.WithContext(ctx)
	for i, col := range columns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := a.Report(col.ID)
			if err != nil {
				return fmt.Errorf("report for %s: %w", col.ID, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Sink returns the notification log the ledger appends to, or nil
func (a *App) Sink() notifications.Sink {
	return a.sink
}

// Close performs cleanup of application resources
func (a *App) Close() error {
	return a.Ledger.Close()
}
