package cli

import (
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	okColor       = color.New(color.FgGreen)
	warnColor     = color.New(color.FgYellow)
	criticalColor = color.New(color.FgRed, color.Bold)
	dimColor      = color.New(color.Faint)
	titleCaser    = cases.Title(language.English)
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// label turns identifiers such as "flight_time" into "Flight Time".
func label(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// severityText renders an evaluation outcome.
func severityText(severity string) string {
	switch severity {
	case "":
		return okColor.Sprint("ok")
	case "critical":
		return criticalColor.Sprint(severity)
	default:
		return warnColor.Sprint(severity)
	}
}

// statusText renders a disruption or version status.
func statusText(status string) string {
	switch status {
	case "open":
		return warnColor.Sprint(status)
	case "resolved", "published":
		return okColor.Sprint(status)
	default:
		return status
	}
}
