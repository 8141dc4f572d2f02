// Package board is the system of record for the pipeline: its columns, its
// cards and the rules for moving cards between phases.
package board

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/team"
	"github.com/thenoetrevino/phaseboard/internal/templates"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// Service defines all board operations.
// Mutations run one at a time; reads return deep copies.
type Service interface {
	// Read operations
	ListColumns() []*models.Column
	GetColumn(columnID types.ColumnID) (*models.Column, error)
	FindCard(cardID types.CardID) (*models.Card, types.ColumnID, error)
	NextPhaseCards(columnID types.ColumnID) ([]*models.Card, error)
	ReportSnapshot(columnID types.ColumnID) (*models.Column, []*models.Card, error)
	FilterByTags(tagIDs []string) []*models.Column
	Stats() []PhaseStats

	// Write operations
	CreateCard(columnID types.ColumnID, draft CardDraft) (*models.Card, error)
	UpdateCard(columnID types.ColumnID, card *models.Card) error

	// Transitions
	MoveCard(cardID types.CardID, sourceID, destID types.ColumnID) (*models.Card, []models.PendingNotification, error)
	ToggleSubtask(columnID types.ColumnID, cardID types.CardID, subtaskID types.SubtaskID) ([]models.PendingNotification, error)
}

// CardDraft carries everything needed to create a card.
// Zero values are filled in by CreateCard.
type CardDraft struct {
	ID           types.CardID // Optional: empty means generate
	Title        string
	Description  string
	Status       models.Status // Optional: empty means IN_PROGRESS
	Tags         []models.Tag
	Metrics      *models.Metrics
	Subtasks     []models.Subtask
	UseTemplates bool // Instantiate the column checklist instead of Subtasks
	AssignedTo   []*models.TeamMember
	Files        []models.Attachment
	VariantID    string
	CampaignName string
}

// PhaseStats is the per-column progress summary shown on the dashboard
type PhaseStats struct {
	ColumnID        types.ColumnID `json:"columnId"`
	Title           string         `json:"title"`
	Phase           int            `json:"phase"`
	Count           int            `json:"count"`
	CompletedCount  int            `json:"completedCount"`
	InProgressCount int            `json:"inProgressCount"`
}

// Config holds the fixed pipeline and collaborators for the board
type Config struct {
	Columns   []*models.Column // Phase order; any cards present seed the board
	Templates *templates.Registry
	Directory *team.Directory
	Now       func() time.Time
	NewID     types.IDGenerator
	Logger    *slog.Logger
}

// service implements Service
type service struct {
	mu      sync.RWMutex
	columns []*models.Column
	index   map[types.ColumnID]*models.Column

	templates *templates.Registry
	directory *team.Directory
	now       func() time.Time
	newID     types.IDGenerator
	logger    *slog.Logger
}

// NewService validates the pipeline layout and creates the board
func NewService(cfg Config) (Service, error) {
	if len(cfg.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if cfg.Templates == nil {
		return nil, ErrMissingTemplates
	}
	if cfg.Directory == nil {
		return nil, ErrMissingDirectory
	}

	s := &service{
		columns:   make([]*models.Column, 0, len(cfg.Columns)),
		index:     make(map[types.ColumnID]*models.Column, len(cfg.Columns)),
		templates: cfg.Templates,
		directory: cfg.Directory,
		now:       cfg.Now,
		newID:     cfg.NewID,
		logger:    cfg.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = types.NewID
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	seen := make(map[types.CardID]bool)
	prevPhase := 0
	for i, col := range cfg.Columns {
		if _, dup := s.index[col.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.ID)
		}
		if i > 0 && col.Phase <= prevPhase {
			return nil, fmt.Errorf("%w: %s has phase %d after %d", ErrPhaseOrder, col.ID, col.Phase, prevPhase)
		}
		prevPhase = col.Phase

		owned := col.Clone()
		for _, card := range owned.Cards {
			if seen[card.ID] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, card.ID)
			}
			seen[card.ID] = true
		}
		s.columns = append(s.columns, owned)
		s.index[owned.ID] = owned
	}

	return s, nil
}

// ListColumns returns a snapshot of every column in phase order
func (s *service) ListColumns() []*models.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Column, len(s.columns))
	for i, col := range s.columns {
		out[i] = col.Clone()
	}
	return out
}

// GetColumn returns a snapshot of one column
func (s *service) GetColumn(columnID types.ColumnID) (*models.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.index[columnID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	return col.Clone(), nil
}

// FindCard locates a card anywhere on the board
func (s *service) FindCard(cardID types.CardID) (*models.Card, types.ColumnID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, col := range s.columns {
		if i := col.IndexOf(cardID); i >= 0 {
			return col.Cards[i].Clone(), col.ID, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
}

// NextPhaseCards returns the cards that have already advanced to the phase
// right after the given column
func (s *service) NextPhaseCards(columnID types.ColumnID) ([]*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.index[columnID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	return s.nextPhaseCards(col), nil
}

// ReportSnapshot returns a column and its next-phase cards read under one lock,
// so a concurrent move cannot show a card in both or neither.
func (s *service) ReportSnapshot(columnID types.ColumnID) (*models.Column, []*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.index[columnID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	return col.Clone(), s.nextPhaseCards(col), nil
}

// nextPhaseCards expects s.mu to be held
func (s *service) nextPhaseCards(col *models.Column) []*models.Card {
	next := col.Phase + 1
	out := make([]*models.Card, 0)
	for _, other := range s.columns {
		if other.Phase != next {
			continue
		}
		for _, card := range other.Cards {
			if card.Phase.Current == next {
				out = append(out, card.Clone())
			}
		}
	}
	return out
}

// FilterByTags returns a snapshot keeping only cards that carry every tag.
// An empty filter keeps everything.
func (s *service) FilterByTags(tagIDs []string) []*models.Column {
	columns := s.ListColumns()
	if len(tagIDs) == 0 {
		return columns
	}

	for _, col := range columns {
		kept := col.Cards[:0]
		for _, card := range col.Cards {
			if hasAllTags(card, tagIDs) {
				kept = append(kept, card)
			}
		}
		col.Cards = kept
	}
	return columns
}

func hasAllTags(card *models.Card, tagIDs []string) bool {
	for _, id := range tagIDs {
		if !card.HasTag(id) {
			return false
		}
	}
	return true
}

// Stats summarises progress per column
func (s *service) Stats() []PhaseStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]PhaseStats, 0, len(s.columns))
	for _, col := range s.columns {
		st := PhaseStats{
			ColumnID: col.ID,
			Title:    col.Title,
			Phase:    col.Phase,
			Count:    len(col.Cards),
		}
		for _, card := range col.Cards {
			switch {
			case card.AllSubtasksCompleted():
				st.CompletedCount++
			case card.AnySubtaskCompleted():
				st.InProgressCount++
			}
		}
		stats = append(stats, st)
	}
	return stats
}

// CreateCard appends a new card to the end of a column
func (s *service) CreateCard(columnID types.ColumnID, draft CardDraft) (*models.Card, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.index[columnID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}

	id := draft.ID
	if id == "" {
		id = types.CardID(s.newID())
	} else if s.containsLocked(id) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, id)
	}

	subtasks := append([]models.Subtask(nil), draft.Subtasks...)
	if draft.UseTemplates {
		var err error
		subtasks, err = s.templates.Instantiate(columnID, s.directory, s.newID)
		if err != nil {
			return nil, fmt.Errorf("failed to instantiate checklist: %w", err)
		}
	}

	status := draft.Status
	if status == "" {
		status = models.StatusInProgress
	}

	now := s.now()
	card := &models.Card{
		ID:           id,
		Title:        draft.Title,
		Description:  draft.Description,
		Status:       status,
		Tags:         append([]models.Tag(nil), draft.Tags...),
		Phase:        models.PhaseInfo{Current: col.Phase, StartedAt: now},
		Subtasks:     subtasks,
		AssignedTo:   append([]*models.TeamMember(nil), draft.AssignedTo...),
		Files:        append([]models.Attachment(nil), draft.Files...),
		CreatedAt:    now,
		VariantID:    draft.VariantID,
		CampaignName: draft.CampaignName,
	}
	if draft.Metrics != nil {
		m := *draft.Metrics
		card.Metrics = &m
	}

	col.Cards = append(col.Cards, card)

	s.logger.Debug("card created", "card_id", card.ID, "column_id", columnID)
	return card.Clone(), nil
}

// MoveCard transfers a card between columns and resets it for the new phase.
// Source and destination are validated before anything changes, so a failed
// move leaves the board untouched.
func (s *service) MoveCard(cardID types.CardID, sourceID, destID types.ColumnID) (*models.Card, []models.PendingNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.index[sourceID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownColumn, sourceID)
	}
	idx := source.IndexOf(cardID)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: %s in %s", ErrCardNotFound, cardID, sourceID)
	}
	dest, ok := s.index[destID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownColumn, destID)
	}

	// Build the new checklist first; it is the only step that can fail
	subtasks, err := s.templates.Instantiate(destID, s.directory, s.newID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to instantiate checklist: %w", err)
	}

	card := source.Cards[idx]
	source.Cards = append(source.Cards[:idx:idx], source.Cards[idx+1:]...)

	moved := card.Clone()
	moved.Phase = models.PhaseInfo{Current: dest.Phase, StartedAt: s.now()}
	moved.Subtasks = subtasks

	dest.Cards = append(dest.Cards, moved)

	pending := make([]models.PendingNotification, 0, len(moved.AssignedTo))
	for _, member := range moved.AssignedTo {
		if member == nil {
			continue
		}
		pending = append(pending, models.PendingNotification{
			Type:    models.NotificationCardMoved,
			Message: fmt.Sprintf("Card %q moved to %s", moved.Title, dest.Title),
			CardID:  moved.ID,
			ForUser: member.ID,
		})
	}

	s.logger.Debug("card moved",
		"card_id", cardID,
		"from", sourceID,
		"to", destID,
		"phase", dest.Phase,
		"notifications", len(pending))

	return moved.Clone(), pending, nil
}

// UpdateCard replaces a card in place, keeping its position.
// The supplied card is stored as given.
func (s *service) UpdateCard(columnID types.ColumnID, card *models.Card) error {
	if card == nil {
		return ErrNilCard
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.index[columnID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	idx := col.IndexOf(card.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", ErrCardNotFound, card.ID, columnID)
	}

	col.Cards[idx] = card.Clone()

	s.logger.Debug("card updated", "card_id", card.ID, "column_id", columnID, "status", card.Status)
	return nil
}

// ToggleSubtask flips one subtask. Completing a subtask that hands off to
// someone produces a notification for them.
func (s *service) ToggleSubtask(columnID types.ColumnID, cardID types.CardID, subtaskID types.SubtaskID) ([]models.PendingNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.index[columnID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	idx := col.IndexOf(cardID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrCardNotFound, cardID, columnID)
	}
	card := col.Cards[idx]
	stIdx := card.SubtaskIndex(subtaskID)
	if stIdx < 0 {
		return nil, fmt.Errorf("%w: %s on card %s", ErrSubtaskNotFound, subtaskID, cardID)
	}

	// Copy-on-write so snapshots handed out earlier never change underneath readers
	updated := card.Clone()
	st := &updated.Subtasks[stIdx]
	st.Completed = !st.Completed
	col.Cards[idx] = updated

	var pending []models.PendingNotification
	if st.Completed && st.NextAssignee != nil {
		completer := "Someone"
		if st.AssignedTo != nil {
			completer = st.AssignedTo.Name
		}
		pending = append(pending, models.PendingNotification{
			Type:    models.NotificationSubtaskCompleted,
			Message: fmt.Sprintf("%s completed %q", completer, st.Title),
			CardID:  cardID,
			ForUser: st.NextAssignee.ID,
		})
	}

	s.logger.Debug("subtask toggled",
		"card_id", cardID,
		"subtask_id", subtaskID,
		"completed", st.Completed)

	return pending, nil
}

// containsLocked reports whether any column holds the card. Caller holds mu.
func (s *service) containsLocked(id types.CardID) bool {
	for _, col := range s.columns {
		if col.IndexOf(id) >= 0 {
			return true
		}
	}
	return false
}
