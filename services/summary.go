package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"car-integration/models"
	"car-integration/utils"
)

const labelWidth = 32

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Generate(r *models.Result) *models.Summary {
	summary := &models.Summary{
		ByCarType:   make(map[string]int),
		ByColor:     make(map[string]int),
		ByCondition: make(map[string]int),
		ByZip:       make(map[string]int),
		ByMake:      make(map[string]int),
	}
	if r == nil {
		return summary
	}

	summary.RunID = r.RunID
	summary.RawRows = r.RawRows
	summary.Vehicles = len(r.Aggregated)
	summary.Integrated = len(r.Integrated)

	for _, rec := range r.Integrated {
		summary.ByCarType[rec.CarType]++
		summary.ByColor[rec.Color]++
		summary.ByCondition[rec.Condition]++
		summary.ByZip[rec.Zip]++
		summary.ByMake[models.Cell(rec.Make)]++
	}
	return summary
}

func (s *SummaryService) Print(w io.Writer, sum *models.Summary) {
	tw := newTable(w)
	tw.SetTitle("Supplier integration run %s", sum.RunID)
	tw.AppendHeader(table.Row{"Stage", "Records"})
	tw.AppendRows([]table.Row{
		{"Raw rows", sum.RawRows},
		{"Aggregated vehicles", sum.Vehicles},
		{"Integrated records", sum.Integrated},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	tw.Render()

	for _, section := range sections(sum) {
		if len(section.counts) == 0 {
			continue
		}
		fmt.Fprintln(w)
		renderCounts(w, section.title, section.counts)
	}
}

// Log writes one line per summary section through the logger.
func (s *SummaryService) Log(sum *models.Summary) {
	s.logger.Info("[summary] %d raw rows → %d vehicles → %d integrated records",
		sum.RawRows, sum.Vehicles, sum.Integrated)
	for _, section := range sections(sum) {
		counts := SortedCounts(section.counts)
		parts := make([]string, 0, len(counts))
		for _, lc := range counts {
			parts = append(parts, formatCount(lc))
		}
		s.logger.Debug("[summary] %s: %s", section.title, strings.Join(parts, ", "))
	}
}

type summarySection struct {
	title  string
	counts map[string]int
}

func sections(sum *models.Summary) []summarySection {
	return []summarySection{
		{"carType", sum.ByCarType},
		{"color", sum.ByColor},
		{"condition", sum.ByCondition},
		{"zip", sum.ByZip},
		{"make", sum.ByMake},
	}
}

// newTable keeps header labels as written; column names are case-sensitive.
func newTable(w io.Writer) table.Writer {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(style)
	return tw
}

func renderCounts(w io.Writer, title string, counts map[string]int) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{title, "Count", ""})

	for _, lc := range SortedCounts(counts) {
		bar := strings.Repeat("█", lc.Count)
		tw.AppendRow(table.Row{truncate(lc.Label, labelWidth), lc.Count, truncate(bar, 40)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	tw.Render()
}

// LabelCount is one row of a frequency table.
type LabelCount struct {
	Label string
	Count int
}

// SortedCounts orders labels by count descending, then label ascending.
func SortedCounts(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

func formatCount(lc LabelCount) string {
	return lc.Label + "=" + strconv.Itoa(lc.Count)
}
