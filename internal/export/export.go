// Package export converts report rows into CSV text for one of three fixed
// column layouts (default, Jira import, Azure DevOps import). It is the
// single home of the CSV logic; the export handler and the export service are
// both thin callers of Generate and Filename.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"feedloop-server/internal/models"
)

type Template string

const (
	TemplateDefault Template = "default"
	TemplateJira    Template = "jira"
	TemplateAzure   Template = "azure"
)

// ParseTemplate resolves a template name, falling back to the default layout.
func ParseTemplate(s string) Template {
	switch Template(s) {
	case TemplateJira:
		return TemplateJira
	case TemplateAzure:
		return TemplateAzure
	default:
		return TemplateDefault
	}
}

// Options selects the column layout and the optional appended columns.
type Options struct {
	Template           Template
	IncludeAttachments bool
	IncludeDiagnostic  bool
}

// consoleErrorsCap limits the JSON dump of console logs per exported row.
const consoleErrorsCap = 100

var baseColumns = map[Template][]string{
	TemplateDefault: {"ID", "Type", "Title", "Description", "Status", "Priority", "Created At", "User Name", "User Email"},
	TemplateJira:    {"Issue Type", "Summary", "Description", "Priority", "Status", "Reporter"},
	TemplateAzure:   {"Work Item Type", "Title", "Description", "State", "Priority", "Created By"},
}

// Generate renders reports as CSV: a header line plus one line per report,
// joined with \n and no trailing newline. It has no failure path; unknown
// enum values degrade to the documented defaults.
func Generate(reports []models.Report, opts Options) string {
	lines := make([]string, 0, len(reports)+1)
	lines = append(lines, joinRow(headerColumns(opts)))
	for i := range reports {
		lines = append(lines, joinRow(rowValues(&reports[i], opts)))
	}
	return strings.Join(lines, "\n")
}

func headerColumns(opts Options) []string {
	cols := append([]string(nil), baseColumns[ParseTemplate(string(opts.Template))]...)
	if opts.IncludeAttachments {
		cols = append(cols, "Attachments")
	}
	if opts.IncludeDiagnostic {
		cols = append(cols, "Browser", "OS", "Page URL", "Console Errors")
	}
	return cols
}

func rowValues(r *models.Report, opts Options) []string {
	var vals []string
	switch ParseTemplate(string(opts.Template)) {
	case TemplateJira:
		vals = []string{
			mapTypeToJira(string(r.Type)),
			r.Title,
			r.Description,
			string(r.Priority),
			mapStatusToJira(string(r.Status)),
			r.ReporterEmail,
		}
	case TemplateAzure:
		vals = []string{
			mapTypeToAzure(string(r.Type)),
			r.Title,
			r.Description,
			mapStatusToAzure(string(r.Status)),
			string(r.Priority),
			r.ReporterEmail,
		}
	default:
		vals = []string{
			r.ID.String(),
			string(r.Type),
			r.Title,
			r.Description,
			string(r.Status),
			string(r.Priority),
			r.CreatedAt.Format(time.RFC3339),
			r.ReporterName,
			r.ReporterEmail,
		}
	}
	if opts.IncludeAttachments {
		vals = append(vals, attachmentNames(r))
	}
	if opts.IncludeDiagnostic {
		vals = append(vals, diagnosticValues(r)...)
	}
	return vals
}

func attachmentNames(r *models.Report) string {
	if len(r.Attachments) == 0 {
		return ""
	}
	names := make([]string, len(r.Attachments))
	for i, a := range r.Attachments {
		names[i] = a.Filename
	}
	return strings.Join(names, "; ")
}

func diagnosticValues(r *models.Report) []string {
	if r.Diagnostic == nil {
		return []string{"", "", "", ""}
	}
	return []string{
		detectBrowser(r.Diagnostic.UserAgent),
		detectOS(r.Diagnostic.UserAgent),
		r.Diagnostic.PageURL,
		consoleErrors(r.Diagnostic.ConsoleLogs),
	}
}

func consoleErrors(logs []models.ConsoleLog) string {
	if len(logs) == 0 {
		return ""
	}
	raw, err := json.Marshal(logs)
	if err != nil {
		return ""
	}
	s := string(raw)
	if len(s) > consoleErrorsCap {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := consoleErrorsCap
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}

// Filename builds the download filename. The project name is slugified, with
// the project ID as fallback; the template suffix is omitted for the default
// layout.
func Filename(projectName string, projectID uuid.UUID, tpl Template, now time.Time) string {
	base := slugify(projectName)
	if base == "" {
		base = projectID.String()
	}
	suffix := ""
	if t := ParseTemplate(string(tpl)); t != TemplateDefault {
		suffix = "-" + string(t)
	}
	return fmt.Sprintf("feedloop-export-%s%s-%s.csv", base, suffix, now.Format("2006-01-02"))
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
