package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"feedloop-server/internal/models"
)

func sampleReport() models.Report {
	return models.Report{
		ID:            uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Type:          models.ReportTypeBug,
		Status:        models.ReportStatusActive,
		Priority:      models.ReportPriorityHigh,
		Title:         "Login button broken",
		Description:   "Clicking login does nothing",
		ReporterName:  "Ada Lovelace",
		ReporterEmail: "ada@example.com",
		CreatedAt:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestGenerateEmptyList(t *testing.T) {
	got := Generate(nil, Options{Template: TemplateDefault})
	want := "ID,Type,Title,Description,Status,Priority,Created At,User Name,User Email"
	if got != want {
		t.Errorf("empty export = %q, want header only %q", got, want)
	}
	if strings.Contains(got, "\n") {
		t.Error("empty export must not contain data rows")
	}
}

func TestGenerateHeaders(t *testing.T) {
	cases := []struct {
		tpl  Template
		want string
	}{
		{TemplateJira, "Issue Type,Summary,Description,Priority,Status,Reporter"},
		{TemplateAzure, "Work Item Type,Title,Description,State,Priority,Created By"},
	}
	for _, c := range cases {
		got := Generate(nil, Options{Template: c.tpl})
		if got != c.want {
			t.Errorf("template %s header = %q, want %q", c.tpl, got, c.want)
		}
	}
}

func TestGenerateRoundTripsThroughCSVParser(t *testing.T) {
	r := sampleReport()
	out := Generate([]models.Report{r}, Options{Template: TemplateDefault})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	row := records[1]
	if row[0] != r.ID.String() {
		t.Errorf("ID column = %q, want %q", row[0], r.ID.String())
	}
	if row[2] != r.Title {
		t.Errorf("Title column = %q, want %q", row[2], r.Title)
	}
	if row[6] != "2026-03-14T09:26:53Z" {
		t.Errorf("Created At column = %q", row[6])
	}
	if row[8] != r.ReporterEmail {
		t.Errorf("User Email column = %q, want %q", row[8], r.ReporterEmail)
	}
}

func TestGenerateQuotesFieldsWithCommas(t *testing.T) {
	r := sampleReport()
	r.Title = "broken, badly"
	out := Generate([]models.Report{r}, Options{Template: TemplateDefault})

	if !strings.Contains(out, `"broken, badly"`) {
		t.Errorf("field with comma not quoted: %q", out)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if records[1][2] != "broken, badly" {
		t.Errorf("parsed title = %q, want original", records[1][2])
	}
}

func TestGenerateEscapesQuotesAndNewlines(t *testing.T) {
	r := sampleReport()
	r.Description = "said \"no\"\nthen crashed"
	out := Generate([]models.Report{r}, Options{Template: TemplateJira})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if records[1][2] != r.Description {
		t.Errorf("parsed description = %q, want %q", records[1][2], r.Description)
	}
}

func TestGenerateDoesNotQuotePlainFields(t *testing.T) {
	out := Generate([]models.Report{sampleReport()}, Options{Template: TemplateDefault})
	if strings.Contains(out, `"`) {
		t.Errorf("plain fields must not be quoted: %q", out)
	}
}

func TestGenerateJiraRow(t *testing.T) {
	r := sampleReport()
	out := Generate([]models.Report{r}, Options{Template: TemplateJira})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	want := "Bug,Login button broken,Clicking login does nothing,high,To Do,ada@example.com"
	if lines[1] != want {
		t.Errorf("jira row = %q, want %q", lines[1], want)
	}
}

func TestGenerateAttachmentsColumn(t *testing.T) {
	r := sampleReport()
	r.Attachments = []models.Attachment{
		{Filename: "a.png"},
		{Filename: "b.png"},
	}
	out := Generate([]models.Report{r}, Options{Template: TemplateDefault, IncludeAttachments: true})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	header, row := records[0], records[1]
	if header[len(header)-1] != "Attachments" {
		t.Errorf("last header column = %q, want Attachments", header[len(header)-1])
	}
	if row[len(row)-1] != "a.png; b.png" {
		t.Errorf("attachments column = %q, want %q", row[len(row)-1], "a.png; b.png")
	}
}

func TestGenerateDiagnosticColumns(t *testing.T) {
	r := sampleReport()
	r.Diagnostic = &models.Diagnostic{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		PageURL:   "https://app.example.com/checkout",
		ConsoleLogs: []models.ConsoleLog{
			{Level: "error", Message: "Uncaught TypeError: cannot read properties of undefined reading submit handler state"},
		},
	}
	out := Generate([]models.Report{r}, Options{Template: TemplateDefault, IncludeDiagnostic: true})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	header, row := records[0], records[1]
	n := len(header)
	if header[n-4] != "Browser" || header[n-3] != "OS" || header[n-2] != "Page URL" || header[n-1] != "Console Errors" {
		t.Fatalf("diagnostic header columns wrong: %v", header[n-4:])
	}
	if row[n-4] != "Chrome" {
		t.Errorf("browser = %q, want Chrome", row[n-4])
	}
	if row[n-3] != "Windows" {
		t.Errorf("os = %q, want Windows", row[n-3])
	}
	if row[n-2] != "https://app.example.com/checkout" {
		t.Errorf("page url = %q", row[n-2])
	}
	errs := row[n-1]
	if !strings.HasSuffix(errs, "...") {
		t.Errorf("long console errors should be truncated with ellipsis: %q", errs)
	}
	if len(errs) != consoleErrorsCap+3 {
		t.Errorf("console errors length = %d, want %d", len(errs), consoleErrorsCap+3)
	}
}

func TestConsoleErrorsTruncateOnRuneBoundary(t *testing.T) {
	// 60 two-byte runes put the cut offset in the middle of a rune.
	logs := []models.ConsoleLog{{Level: "error", Message: strings.Repeat("é", 60)}}
	got := consoleErrors(logs)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated output, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated console errors are not valid UTF-8: %q", got)
	}
	if len(got) > consoleErrorsCap+3 {
		t.Errorf("length = %d, want at most %d", len(got), consoleErrorsCap+3)
	}
}

func TestGenerateDiagnosticColumnsEmptyWithoutPayload(t *testing.T) {
	r := sampleReport()
	out := Generate([]models.Report{r}, Options{Template: TemplateDefault, IncludeDiagnostic: true})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	row := records[1]
	for _, v := range row[len(row)-4:] {
		if v != "" {
			t.Errorf("diagnostic column should be empty without payload, got %q", v)
		}
	}
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	at := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	got := Filename("Acme Widgets", id, TemplateDefault, at)
	if got != "feedloop-export-acme-widgets-2026-08-31.csv" {
		t.Errorf("default filename = %q", got)
	}

	got = Filename("Acme Widgets", id, TemplateJira, at)
	if got != "feedloop-export-acme-widgets-jira-2026-08-31.csv" {
		t.Errorf("jira filename = %q", got)
	}

	// Names with no usable characters fall back to the project ID.
	got = Filename("***", id, TemplateAzure, at)
	if got != "feedloop-export-"+id.String()+"-azure-2026-08-31.csv" {
		t.Errorf("fallback filename = %q", got)
	}
}
