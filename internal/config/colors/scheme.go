package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for headings and highlights)
	Accent string `yaml:"accent"`

	// Card status colors
	InProgress       string `yaml:"in_progress"`
	Testing          string `yaml:"testing"`
	Winning          string `yaml:"winning"`
	NeedsImprovement string `yaml:"needs_improvement"`
	Complete         string `yaml:"complete"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/secondary text
	Normal string `yaml:"normal"`

	// Message colors
	Info    string `yaml:"info"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	c.fill(GetPreset(c.Preset))
}

// MergeFrom overrides colors with every non-empty value in other.
// A preset in other replaces the base before the overrides apply.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" && other.Preset != c.Preset {
		*c = *GetPreset(other.Preset)
	}
	for _, f := range c.fields() {
		if v := *f.from(&other); v != "" {
			*f.to = v
		}
	}
}

// fill sets every empty color from base
func (c *ColorScheme) fill(base *ColorScheme) {
	for _, f := range c.fields() {
		if *f.to == "" {
			*f.to = *f.from(base)
		}
	}
}

type colorField struct {
	to   *string
	from func(*ColorScheme) *string
}

func (c *ColorScheme) fields() []colorField {
	return []colorField{
		{&c.Accent, func(s *ColorScheme) *string { return &s.Accent }},
		{&c.InProgress, func(s *ColorScheme) *string { return &s.InProgress }},
		{&c.Testing, func(s *ColorScheme) *string { return &s.Testing }},
		{&c.Winning, func(s *ColorScheme) *string { return &s.Winning }},
		{&c.NeedsImprovement, func(s *ColorScheme) *string { return &s.NeedsImprovement }},
		{&c.Complete, func(s *ColorScheme) *string { return &s.Complete }},
		{&c.Title, func(s *ColorScheme) *string { return &s.Title }},
		{&c.Subtle, func(s *ColorScheme) *string { return &s.Subtle }},
		{&c.Normal, func(s *ColorScheme) *string { return &s.Normal }},
		{&c.Info, func(s *ColorScheme) *string { return &s.Info }},
		{&c.Warning, func(s *ColorScheme) *string { return &s.Warning }},
		{&c.Error, func(s *ColorScheme) *string { return &s.Error }},
	}
}
