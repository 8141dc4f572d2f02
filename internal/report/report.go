// Package report builds point-in-time summaries of a single pipeline phase.
//
// Generate is a pure read: it never mutates the column or its cards, and the
// report it returns owns copies of every card it references.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// PhaseReport is the exported document for one column.
// Field names are relied on by external tooling.
type PhaseReport struct {
	PhaseNumber       int                      `json:"phaseNumber"`
	PhaseTitle        string                   `json:"phaseTitle"`
	GeneratedAt       time.Time                `json:"generatedAt"`
	Summary           Summary                  `json:"summary"`
	Metrics           MetricsSummary           `json:"metrics"`
	Variants          map[string]VariantReport `json:"variants"`
	WinningCards      []*models.Card           `json:"winningCards"`
	TeamContributions []TeamContribution       `json:"teamContributions"`

	// Cards already advanced to the following phase. Carried for consumers
	// that render migration counts; no computed field depends on it.
	nextPhaseCards []*models.Card
}

// Summary counts cards by outcome
type Summary struct {
	TotalCards     int `json:"totalCards"`
	CompletedCards int `json:"completedCards"`
	WinningCards   int `json:"winningCards"`
}

// MetricsSummary averages the cards that carry a metrics snapshot
type MetricsSummary struct {
	AverageCTR            float64       `json:"averageCTR"`
	AverageConversionRate float64       `json:"averageConversionRate"`
	AverageROAS           float64       `json:"averageROAS"`
	TopPerformer          *TopPerformer `json:"topPerformer"`
}

// TopPerformer is the highest-ROAS card in the phase
type TopPerformer struct {
	CardID  types.CardID   `json:"cardId"`
	Title   string         `json:"title"`
	Metrics models.Metrics `json:"metrics"`
}

// AverageMetrics are the three headline ratios averaged over a group
type AverageMetrics struct {
	CTR            float64 `json:"ctr"`
	ConversionRate float64 `json:"conversionRate"`
	ROAS           float64 `json:"roas"`
}

// VariantReport aggregates the cards sharing a variant ID
type VariantReport struct {
	Count          int            `json:"count"`
	AverageMetrics AverageMetrics `json:"averageMetrics"`
	BestPerformer  *models.Card   `json:"bestPerformer"`
}

// TeamContribution is one member's share of the phase's work
type TeamContribution struct {
	MemberID       types.MemberID `json:"memberId"`
	Name           string         `json:"name"`
	TasksCompleted int            `json:"tasksCompleted"`
	CardsOwned     int            `json:"cardsOwned"`
}

// NextPhaseCards returns the next-phase cards the report was generated with
func (r *PhaseReport) NextPhaseCards() []*models.Card {
	return r.nextPhaseCards
}

// Generate summarises column as of now. Every member gets a contribution
// entry, in the order given, even when they own nothing in this phase.
func Generate(column *models.Column, nextPhaseCards []*models.Card, members []*models.TeamMember, now time.Time) *PhaseReport {
	r := &PhaseReport{
		PhaseNumber:       column.Phase,
		PhaseTitle:        column.Title,
		GeneratedAt:       now,
		Variants:          make(map[string]VariantReport),
		WinningCards:      make([]*models.Card, 0),
		TeamContributions: make([]TeamContribution, 0, len(members)),
	}

	for _, card := range nextPhaseCards {
		r.nextPhaseCards = append(r.nextPhaseCards, card.Clone())
	}

	r.Summary = summarize(column.Cards)
	r.Metrics = summarizeMetrics(column.Cards)
	r.Variants = groupVariants(column.Cards)

	for _, card := range column.Cards {
		if card.Status == models.StatusWinning {
			r.WinningCards = append(r.WinningCards, card.Clone())
		}
	}

	for _, m := range members {
		r.TeamContributions = append(r.TeamContributions, contribution(m, column.Cards))
	}

	return r
}

func summarize(cards []*models.Card) Summary {
	s := Summary{TotalCards: len(cards)}
	for _, card := range cards {
		if card.AllSubtasksCompleted() {
			s.CompletedCards++
		}
		if card.Status == models.StatusWinning {
			s.WinningCards++
		}
	}
	return s
}

// averager accumulates the three headline ratios and tracks the best ROAS
type averager struct {
	n    int
	ctr  float64
	conv float64
	roas float64
	best *models.Card
}

func (a *averager) add(card *models.Card) {
	if card.Metrics == nil {
		return
	}
	a.n++
	a.ctr += card.Metrics.CTR
	a.conv += card.Metrics.ConversionRate
	a.roas += card.Metrics.ROAS
	// strictly greater keeps the first card on ties
	if a.best == nil || card.Metrics.ROAS > a.best.Metrics.ROAS {
		a.best = card
	}
}

func (a *averager) averages() AverageMetrics {
	if a.n == 0 {
		return AverageMetrics{}
	}
	n := float64(a.n)
	return AverageMetrics{CTR: a.ctr / n, ConversionRate: a.conv / n, ROAS: a.roas / n}
}

func summarizeMetrics(cards []*models.Card) MetricsSummary {
	var acc averager
	for _, card := range cards {
		acc.add(card)
	}

	avg := acc.averages()
	out := MetricsSummary{
		AverageCTR:            avg.CTR,
		AverageConversionRate: avg.ConversionRate,
		AverageROAS:           avg.ROAS,
	}
	if acc.best != nil {
		out.TopPerformer = &TopPerformer{
			CardID:  acc.best.ID,
			Title:   acc.best.Title,
			Metrics: *acc.best.Metrics,
		}
	}
	return out
}

func groupVariants(cards []*models.Card) map[string]VariantReport {
	groups := make(map[string]*averager)
	counts := make(map[string]int)
	for _, card := range cards {
		if card.VariantID == "" {
			continue
		}
		acc, ok := groups[card.VariantID]
		if !ok {
			acc = &averager{}
			groups[card.VariantID] = acc
		}
		counts[card.VariantID]++
		acc.add(card)
	}

	out := make(map[string]VariantReport, len(groups))
	for id, acc := range groups {
		vr := VariantReport{Count: counts[id], AverageMetrics: acc.averages()}
		if acc.best != nil {
			vr.BestPerformer = acc.best.Clone()
		}
		out[id] = vr
	}
	return out
}

func contribution(member *models.TeamMember, cards []*models.Card) TeamContribution {
	tc := TeamContribution{MemberID: member.ID, Name: member.Name}
	for _, card := range cards {
		if card.IsAssigned(member.ID) {
			tc.CardsOwned++
		}
		for _, st := range card.Subtasks {
			if st.Completed && st.AssignedTo != nil && st.AssignedTo.ID == member.ID {
				tc.TasksCompleted++
			}
		}
	}
	return tc
}

// FileName is the download name for an exported report
func FileName(r *PhaseReport) string {
	return fmt.Sprintf("phase-%d-report-%s.json", r.PhaseNumber, r.GeneratedAt.Format("2006-01-02"))
}

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, r *PhaseReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
