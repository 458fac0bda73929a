package responses

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-formbuilder/pkg/document"
)

// SubmittedHeader titles the timestamp column.
const SubmittedHeader = "Submitted"

// Empty-state copy for forms without submissions.
const (
	EmptyTitle = "No responses yet"
	EmptyHint  = "Share your form to collect responses"
)

const timestampLayout = "2006-01-02 15:04"

// Column describes one question column.
type Column struct {
	ID    string                `json:"id"`
	Label string                `json:"label"`
	Type  document.QuestionType `json:"type"`
}

// Columns projects questions onto table columns in document order.
func Columns(questions []document.Question) []Column {
	out := make([]Column, 0, len(questions))
	for _, q := range questions {
		label := strings.TrimSpace(q.Label)
		if label == "" {
			label = q.Type.Label()
		}
		out = append(out, Column{ID: q.ID, Label: label, Type: q.Type})
	}
	return out
}

// Table is a plain header plus rows grid.
type Table struct {
	Headers []string
	Rows    [][]string
}

// BuildTable lays records out one row each, the timestamp first and then one
// cell per question. Missing answers are empty and lists are joined by ", ".
func BuildTable(questions []document.Question, records []Record) Table {
	columns := Columns(questions)
	t := Table{Headers: make([]string, 0, len(columns)+1)}
	t.Headers = append(t.Headers, SubmittedHeader)
	for _, col := range columns {
		t.Headers = append(t.Headers, col.Label)
	}

	t.Rows = make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, 0, len(columns)+1)
		row = append(row, formatTimestamp(record.SubmittedAt))
		for _, col := range columns {
			row = append(row, FormatAnswer(record.Data[col.ID]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FormatAnswer renders one answer as table text.
func FormatAnswer(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatAnswer(item))
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(v)
	}
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(timestampLayout)
}

// Render draws the table with lipgloss, or the empty-state copy when there
// are no rows.
func (t Table) Render() string {
	if len(t.Rows) == 0 {
		return EmptyTitle + "\n" + EmptyHint + "\n"
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	out := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return out.String() + "\n"
}
