package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/fireball-picks/internal/predict"
)

// GenerateConsoleReport formats the accuracy report for terminal output
func GenerateConsoleReport(report Report) string {
	var builder strings.Builder
	builder.WriteString("Fireball Accuracy Report\n")
	builder.WriteString("========================\n")
	if report.Since != nil {
		builder.WriteString(fmt.Sprintf("Since: %s\n", *report.Since))
	}
	builder.WriteString(fmt.Sprintf("Games graded: %d\n", report.GamesGraded))
	writeMarketSection(&builder, "ATS Picks", report.ATS)
	writeMarketSection(&builder, "Total Picks", report.Total)
	return builder.String()
}

func writeMarketSection(builder *strings.Builder, title string, market MarketReport) {
	builder.WriteString(fmt.Sprintf("\n%s\n", title))
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	for rating := 5; rating >= 1; rating-- {
		count := market.ByFireballs[rating]
		builder.WriteString(fmt.Sprintf("%-12s W %-4d L %-4d %s\n",
			predict.FireballString(rating), count.Wins, count.Losses, formatAccuracy(count)))
	}
	builder.WriteString(fmt.Sprintf("%-12s W %-4d L %-4d %s\n",
		"Overall", market.Overall.Wins, market.Overall.Losses, formatAccuracy(market.Overall)))
	builder.WriteString(fmt.Sprintf("Pushes excluded: %d\n", market.Pushes))
}

func formatAccuracy(count GradeCount) string {
	accuracy := count.Accuracy()
	if accuracy == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *accuracy*100)
}

// GenerateCSVExport writes per-rating counts for spreadsheets
func GenerateCSVExport(report Report, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString("market,fireballs,wins,losses,accuracy\n")
	for _, market := range []MarketReport{report.ATS, report.Total} {
		for rating := 5; rating >= 1; rating-- {
			count := market.ByFireballs[rating]
			builder.WriteString(fmt.Sprintf("%s,%d,%d,%d,%s\n",
				market.Market, rating, count.Wins, count.Losses, csvAccuracy(count)))
		}
		builder.WriteString(fmt.Sprintf("%s,overall,%d,%d,%s\n",
			market.Market, market.Overall.Wins, market.Overall.Losses, csvAccuracy(market.Overall)))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}

func csvAccuracy(count GradeCount) string {
	accuracy := count.Accuracy()
	if accuracy == nil {
		return "NA"
	}
	return fmt.Sprintf("%.4f", *accuracy)
}
