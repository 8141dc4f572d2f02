package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/phaseboard/internal/config/colors"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Phase:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Subtasks", "Metrics"

	// Message styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	statusColors map[models.Status]string
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(scheme colors.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Info))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Error))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Warning))

	statusColors = map[models.Status]string{
		models.StatusInProgress:       scheme.InProgress,
		models.StatusTesting:          scheme.Testing,
		models.StatusWinning:          scheme.Winning,
		models.StatusNeedsImprovement: scheme.NeedsImprovement,
		models.StatusComplete:         scheme.Complete,
	}
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderStatus renders a status badge in its scheme color
func RenderStatus(status models.Status) string {
	label := strings.ReplaceAll(string(status), "_", " ")
	return BoldColoredText(label, statusColors[status])
}

// RenderTagChip renders a tag as "[label]" with the tag's color
func RenderTagChip(tag models.Tag) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tag.Color)).
		Bold(true).
		Render("[" + tag.Label + "]")
}

// RenderSubtask renders a checklist line
// Format: "[x] Title (Name -> Next)"
func RenderSubtask(st models.Subtask) string {
	box := "[ ]"
	if st.Completed {
		box = "[x]"
	}
	owner := "unassigned"
	if st.AssignedTo != nil {
		owner = st.AssignedTo.Name
	}
	if st.NextAssignee != nil {
		owner = fmt.Sprintf("%s -> %s", owner, st.NextAssignee.Name)
	}
	return fmt.Sprintf("%s %s %s", box, st.Title, SubtitleStyle.Render("("+owner+")"))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
