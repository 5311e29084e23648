// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package report renders the validation issues of a descriptor document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/propmap/propmap/pkg/types"
)

// Supported report formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats returns the supported report formats.
func Formats() []string {
	return []string{FormatTable, FormatMarkdown, FormatCSV, FormatJSON}
}

// messageWidth wraps long messages in the table format.
const messageWidth = 80

// Row is one issue with its content type coordinates.
type Row struct {
	ChannelID   int            `json:"channelId"`
	ContentType string         `json:"contentType"`
	TemplateID  int            `json:"templateId"`
	Field       string         `json:"field"`
	Severity    types.Severity `json:"severity"`
	Message     string         `json:"message"`
}

// Summary counts the report content.
type Summary struct {
	ContentTypes int `json:"contentTypes"`
	Properties   int `json:"properties"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Collisions   int `json:"collisions"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d error(s), %d warning(s), %d collision(s) in %d content type(s) with %d properties",
		s.Errors, s.Warnings, s.Collisions, s.ContentTypes, s.Properties)
}

// Report is the issue listing of one document, grouped by channel and
// content type.
type Report struct {
	Rows       []Row             `json:"issues"`
	Collisions []types.Collision `json:"collisions"`
	Summary    Summary           `json:"summary"`
}

// New builds the report of a document. Rows are ordered by channel, then
// content type; issues of one content type keep their recorded order.
func New(doc *types.Document) *Report {
	r := &Report{
		Rows:       []Row{},
		Collisions: []types.Collision{},
	}
	if doc == nil {
		return r
	}

	for _, ct := range doc.ContentTypes {
		r.Summary.ContentTypes++
		r.Summary.Properties += len(ct.AllProperties())
		for _, issue := range ct.Issues {
			r.Rows = append(r.Rows, Row{
				ChannelID:   ct.Context.ChannelID,
				ContentType: ct.Context.ContentType,
				TemplateID:  ct.Context.TemplateID,
				Field:       issue.FieldName,
				Severity:    issue.Severity,
				Message:     issue.Message,
			})
		}
		errs, warns := ct.Issues.Count()
		r.Summary.Errors += errs
		r.Summary.Warnings += warns
	}

	sort.SliceStable(r.Rows, func(i, j int) bool {
		a, b := r.Rows[i], r.Rows[j]
		if a.ChannelID != b.ChannelID {
			return a.ChannelID < b.ChannelID
		}
		if a.ContentType != b.ContentType {
			return a.ContentType < b.ContentType
		}
		return a.TemplateID < b.TemplateID
	})

	r.Collisions = append(r.Collisions, doc.Collisions...)
	r.Summary.Collisions = len(doc.Collisions)

	return r
}

// HasErrors reports whether any error severity issue was recorded.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// Render writes the report in the given format.
func (r *Report) Render(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return r.renderTable(w)
	case FormatMarkdown, "md":
		return r.renderMarkdown(w)
	case FormatCSV:
		return r.renderCSV(w)
	case FormatJSON:
		return r.renderJSON(w)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

var issueHeader = table.Row{"Channel", "Content Type", "Template", "Field", "Severity", "Message"}

func (r *Report) issueTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(issueHeader)
	for _, row := range r.Rows {
		t.AppendRow(table.Row{row.ChannelID, row.ContentType, row.TemplateID, row.Field, string(row.Severity), row.Message})
	}
	return t
}

func (r *Report) collisionTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Property", "Generated For"})
	for _, c := range r.Collisions {
		t.AppendRow(table.Row{c.Name, strings.Join(c.Sources, "; ")})
	}
	return t
}

func (r *Report) renderTable(w io.Writer) error {
	if len(r.Rows) == 0 && len(r.Collisions) == 0 {
		_, _ = fmt.Fprintln(w, "No issues found.")
		_, _ = fmt.Fprintln(w, r.Summary)
		return nil
	}

	if len(r.Rows) > 0 {
		t := r.issueTable(w)
		t.SetStyle(table.StyleLight)
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Channel", AutoMerge: true},
			{Name: "Content Type", AutoMerge: true},
			{Name: "Message", WidthMax: messageWidth, WidthMaxEnforcer: text.WrapSoft},
		})
		t.Render()
	}

	if len(r.Collisions) > 0 {
		t := r.collisionTable(w)
		t.SetStyle(table.StyleLight)
		t.Render()
	}

	_, _ = fmt.Fprintln(w, r.Summary)
	return nil
}

func (r *Report) renderMarkdown(w io.Writer) error {
	if len(r.Rows) == 0 && len(r.Collisions) == 0 {
		_, _ = fmt.Fprintln(w, "No issues found.")
		return nil
	}

	if len(r.Rows) > 0 {
		r.issueTable(w).RenderMarkdown()
		_, _ = fmt.Fprintln(w)
	}
	if len(r.Collisions) > 0 {
		r.collisionTable(w).RenderMarkdown()
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "_%s_\n", r.Summary)
	return nil
}

func (r *Report) renderCSV(w io.Writer) error {
	r.issueTable(w).RenderCSV()
	return nil
}

func (r *Report) renderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
