package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/billscout/internal/model"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Score band labels.
const (
	ExcellentValue = "Excellent"
	GoodValue      = "Good"
	FairValue      = "Fair"
	PoorValue      = "Poor"
)

// Color variables for score bands.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	GoodColor      = color.New(color.FgCyan)
	FairColor      = color.New(color.FgYellow)
	PoorColor      = color.New(color.FgRed)
)

// ScoreLabel returns the band a 0-100 score falls into.
func ScoreLabel(score int) string {
	switch {
	case score >= 85:
		return ExcellentValue
	case score >= 70:
		return GoodValue
	case score >= 55:
		return FairValue
	default:
		return PoorValue
	}
}

// ColorScore renders a score colored by its band.
func ColorScore(score int) string {
	text := strconv.Itoa(score)

	switch ScoreLabel(score) {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// WritePlacesTable writes scored places in the order given.
func WritePlacesTable(w io.Writer, places []model.ScoredPlace) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Name", "Type", "Distance", "Price", "Quality", "Service"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(places))
	for i, p := range places {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			p.Name,
			p.Type,
			fmt.Sprintf("%.2f km", p.DistanceKm),
			ColorScore(p.PriceScore),
			ColorScore(p.QualityScore),
			ColorScore(p.ServiceScore),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteRulesTable writes the rule table in evaluation order.
func WriteRulesTable(w io.Writer, rules []model.CategoryRule) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Category", "Confidence", "Keywords", "Subcategories"})

	data := make([][]string, 0, len(rules))
	for i, r := range rules {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Category,
			strconv.FormatFloat(r.BaseConfidence, 'f', 2, 64),
			strings.Join(r.Keywords, ", "),
			strings.Join(r.Subcategories, ", "),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteBillsTable writes stored bill classifications.
func WriteBillsTable(w io.Writer, bills []model.BillRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Classified", "Company", "Category", "Subcategory", "Confidence"})

	data := make([][]string, 0, len(bills))
	for _, b := range bills {
		data = append(data, []string{
			strconv.FormatInt(b.ID, 10),
			b.ClassifiedAt.Format("2006-01-02 15:04"),
			b.CompanyName,
			b.Match.Category,
			b.Match.Subcategory,
			FormatConfidence(b.Match.Confidence),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteSnapshotsTable writes stored ranking runs.
func WriteSnapshotsTable(w io.Writer, snapshots []model.PlaceSnapshot) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Scored", "Query", "Reference"})

	data := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		data = append(data, []string{
			strconv.FormatInt(s.ID, 10),
			s.ScoredAt.Format("2006-01-02 15:04"),
			s.Query,
			fmt.Sprintf("%.4f, %.4f", s.RefLat, s.RefLon),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// FormatConfidence renders a confidence as a percentage.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

// FormatMatch renders a classification result and its tags in a box.
func FormatMatch(match model.CategoryMatch, tags []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category:    %s\n", BoldStyle.Render(match.Category))
	if match.Subcategory != "" {
		fmt.Fprintf(&b, "Subcategory: %s\n", match.Subcategory)
	}
	fmt.Fprintf(&b, "Confidence:  %s\n", FormatConfidence(match.Confidence))
	if len(match.MatchedKeywords) > 0 {
		fmt.Fprintf(&b, "Keywords:    %s\n", strings.Join(match.MatchedKeywords, ", "))
	}
	fmt.Fprintf(&b, "%s Tags:     %s", TagIcon, SubtleStyle.Render(strings.Join(tags, " ")))

	title := "Classification"
	if match.IsOther() {
		title = "Unclassified"
	}
	return RenderBox(title, b.String())
}
