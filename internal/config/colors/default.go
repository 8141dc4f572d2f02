package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#874BFD",

		// Status
		InProgress:       "#FFD700",
		Testing:          "#5F87D7",
		Winning:          "#5FD75F",
		NeedsImprovement: "#FF5F5F",
		Complete:         "#00AFAF",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Messages
		Info:    "#00AFFF",
		Warning: "#FFD700",
		Error:   "#FF0000",
	}
}
