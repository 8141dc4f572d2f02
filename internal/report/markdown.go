package report

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Markdown renders the report as a markdown document for terminal display
func Markdown(r *PhaseReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Phase %d: %s\n\n", r.PhaseNumber, r.PhaseTitle)
	fmt.Fprintf(&b, "_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total cards: **%d**\n", r.Summary.TotalCards)
	fmt.Fprintf(&b, "- Completed: **%d**\n", r.Summary.CompletedCards)
	fmt.Fprintf(&b, "- Winning: **%d**\n\n", r.Summary.WinningCards)

	b.WriteString("## Metrics\n\n")
	b.WriteString("| CTR | Conversion rate | ROAS |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| %.2f%% | %.2f%% | %.2fx |\n\n",
		r.Metrics.AverageCTR, r.Metrics.AverageConversionRate, r.Metrics.AverageROAS)
	if top := r.Metrics.TopPerformer; top != nil {
		fmt.Fprintf(&b, "Top performer: **%s** (ROAS %.2fx)\n\n", top.Title, top.Metrics.ROAS)
	} else {
		b.WriteString("No card has metrics yet.\n\n")
	}

	if len(r.Variants) > 0 {
		b.WriteString("## Variants\n\n")
		b.WriteString("| Variant | Cards | CTR | Conversion rate | ROAS | Best |\n|---|---|---|---|---|---|\n")
		for _, id := range slices.Sorted(maps.Keys(r.Variants)) {
			v := r.Variants[id]
			best := "-"
			if v.BestPerformer != nil {
				best = v.BestPerformer.Title
			}
			fmt.Fprintf(&b, "| %s | %d | %.2f%% | %.2f%% | %.2fx | %s |\n",
				tableCell(id), v.Count, v.AverageMetrics.CTR, v.AverageMetrics.ConversionRate, v.AverageMetrics.ROAS, tableCell(best))
		}
		b.WriteString("\n")
	}

	if len(r.WinningCards) > 0 {
		b.WriteString("## Winning cards\n\n")
		for _, card := range r.WinningCards {
			fmt.Fprintf(&b, "- %s\n", card.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Team\n\n")
	b.WriteString("| Member | Tasks completed | Cards owned |\n|---|---|---|\n")
	for _, tc := range r.TeamContributions {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", tableCell(tc.Name), tc.TasksCompleted, tc.CardsOwned)
	}

	return b.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// tableCell keeps free text from breaking a table row
func tableCell(s string) string {
	return cellEscaper.Replace(s)
}
