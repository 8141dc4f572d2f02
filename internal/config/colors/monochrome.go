package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		InProgress:       "#D0D0D0",
		Testing:          "#D0D0D0",
		Winning:          "#FFFFFF",
		NeedsImprovement: "#FFFFFF",
		Complete:         "#D0D0D0",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		Info:    "#FFFFFF",
		Warning: "#FFFFFF",
		Error:   "#FFFFFF",
	}
}
