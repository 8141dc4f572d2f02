package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/team"
	"github.com/thenoetrevino/phaseboard/internal/templates"
	"github.com/thenoetrevino/phaseboard/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed pipeline.yaml
var defaultPipeline []byte

// ErrInvalidPipeline is returned when a pipeline definition does not hang together
var ErrInvalidPipeline = errors.New("invalid pipeline definition")

// Pipeline is the static layout of the board: who is on the team, which
// phases exist, what each phase's checklist looks like, and the cards the
// board starts with.
type Pipeline struct {
	Team    []models.TeamMember `yaml:"team"`
	Columns []ColumnSpec        `yaml:"columns"`
	Tags    []models.Tag        `yaml:"tags"`
	Cards   []SeedCard          `yaml:"cards"`
}

// ColumnSpec describes one phase and its checklist
type ColumnSpec struct {
	ID        types.ColumnID           `yaml:"id"`
	Title     string                   `yaml:"title"`
	Phase     int                      `yaml:"phase"`
	Templates []models.SubtaskTemplate `yaml:"templates"`
}

// SeedCard is a card present when the board starts
type SeedCard struct {
	Column       types.ColumnID   `yaml:"column"`
	ID           types.CardID     `yaml:"id,omitempty"`
	Title        string           `yaml:"title"`
	Description  string           `yaml:"description"`
	Status       string           `yaml:"status"`
	VariantID    string           `yaml:"variant_id,omitempty"`
	CampaignName string           `yaml:"campaign_name,omitempty"`
	Assignees    []types.MemberID `yaml:"assignees"`
	Tags         []string         `yaml:"tags"`
}

// LoadPipeline reads the pipeline from PHASEBOARD_PIPELINE_FILE if set,
// otherwise the built-in default
func LoadPipeline() (*Pipeline, error) {
	data := defaultPipeline
	if path := os.Getenv("PHASEBOARD_PIPELINE_FILE"); path != "" {
		custom, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read pipeline file: %w", err)
		}
		data = custom
	}
	return ParsePipeline(data)
}

// DefaultPipeline returns the built-in pipeline, ignoring the environment
func DefaultPipeline() (*Pipeline, error) {
	return ParsePipeline(defaultPipeline)
}

// ParsePipeline decodes and validates a pipeline definition
func ParsePipeline(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks cross references between columns, team, tags and seed cards
func (p *Pipeline) Validate() error {
	if len(p.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidPipeline)
	}

	columns := make(map[types.ColumnID]bool, len(p.Columns))
	for _, c := range p.Columns {
		if c.ID == "" {
			return fmt.Errorf("%w: column %q has no id", ErrInvalidPipeline, c.Title)
		}
		columns[c.ID] = true
	}

	members := make(map[types.MemberID]bool, len(p.Team))
	for _, m := range p.Team {
		members[m.ID] = true
	}

	tags := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		tags[t.ID] = true
	}

	for i, card := range p.Cards {
		if !columns[card.Column] {
			return fmt.Errorf("%w: card %d (%q) references unknown column %q", ErrInvalidPipeline, i, card.Title, card.Column)
		}
		if card.Status != "" {
			if _, err := models.ParseStatus(card.Status); err != nil {
				return fmt.Errorf("%w: card %q: %v", ErrInvalidPipeline, card.Title, err)
			}
		}
		for _, id := range card.Assignees {
			if !members[id] {
				return fmt.Errorf("%w: card %q assigned to unknown member %q", ErrInvalidPipeline, card.Title, id)
			}
		}
		for _, id := range card.Tags {
			if !tags[id] {
				return fmt.Errorf("%w: card %q uses unknown tag %q", ErrInvalidPipeline, card.Title, id)
			}
		}
	}

	dir, err := p.Directory()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}
	if err := p.Registry().Validate(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}
	return nil
}

// Directory builds the team directory
func (p *Pipeline) Directory() (*team.Directory, error) {
	return team.NewDirectory(p.Team)
}

// Registry builds the checklist registry keyed by column
func (p *Pipeline) Registry() *templates.Registry {
	byColumn := make(map[types.ColumnID][]models.SubtaskTemplate, len(p.Columns))
	for _, c := range p.Columns {
		byColumn[c.ID] = c.Templates
	}
	return templates.NewRegistry(byColumn)
}

// Tag looks up a tag from the catalog
func (p *Pipeline) Tag(id string) (models.Tag, bool) {
	for _, t := range p.Tags {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tag{}, false
}
