package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"capgate/internal/api"
	"capgate/internal/registry"
	"capgate/internal/server"
	textutil "capgate/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatWide  OutputFormat = "wide"
	OutputFormatJSON  OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, wide or json)", s)
	}
}

// Printer renders command results.
type Printer struct {
	out     io.Writer
	format  OutputFormat
	noColor bool
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, format OutputFormat, noColor bool) *Printer {
	return &Printer{out: out, format: format, noColor: noColor}
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	style := table.StyleLight
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Format.Header = text.FormatUpper
	t.SetStyle(style)
	return t
}

func (p *Printer) state(enabled bool) string {
	label, color := "disabled", text.FgHiBlack
	if enabled {
		label, color = "enabled", text.FgGreen
	}
	if p.noColor {
		return label
	}
	return color.Sprint(label)
}

// description keeps narrow tables on one line per row; wide output shows
// descriptions in full.
func (p *Printer) description(s string) string {
	if p.format == OutputFormatWide {
		return s
	}
	return textutil.TruncateLine(s, textutil.DescriptionColumnWidth)
}

func (p *Printer) json(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Categories prints the category table.
func (p *Printer) Categories(categories []registry.CategoryInfo) error {
	if p.format == OutputFormatJSON {
		return p.json(categories)
	}

	t := p.newTable()
	header := table.Row{"Category", "State", "Operations", "Description"}
	if p.format == OutputFormatWide {
		header = append(header, "Names")
	}
	t.AppendHeader(header)

	total, enabled := 0, 0
	for _, c := range categories {
		row := table.Row{c.Key, p.state(c.Enabled), c.OperationCount, p.description(c.Description)}
		if p.format == OutputFormatWide {
			row = append(row, strings.Join(c.Operations, ", "))
		}
		t.AppendRow(row)
		total += c.OperationCount
		if c.Enabled {
			enabled += c.OperationCount
		}
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d categories", len(categories)), fmt.Sprintf("%d enabled", enabled), total})
	t.Render()
	return nil
}

// Search prints search matches.
func (p *Printer) Search(query string, matches []registry.OperationInfo) error {
	if p.format == OutputFormatJSON {
		return p.json(matches)
	}
	if len(matches) == 0 {
		_, err := fmt.Fprintf(p.out, "No operations match %q.\n", query)
		return err
	}

	t := p.newTable()
	header := table.Row{"Operation", "Category", "State", "Description"}
	if p.format == OutputFormatWide {
		header = append(header, "Access", "Method")
	}
	t.AppendHeader(header)
	for _, m := range matches {
		row := table.Row{m.Definition.Name, m.Category, p.state(m.Enabled), p.description(m.Definition.Description)}
		if p.format == OutputFormatWide {
			row = append(row, m.Definition.Metadata[api.MetadataAccess], m.Definition.Metadata[api.MetadataMethod])
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

// Health prints a server health report.
func (p *Printer) Health(endpoint string, h server.Health) error {
	if p.format == OutputFormatJSON {
		return p.json(h)
	}

	t := p.newTable()
	t.AppendHeader(table.Row{"Endpoint", "Status", "Mode", "Categories", "Operations", "Enabled", "Tools"})
	t.AppendRow(table.Row{endpoint, h.Status, h.Mode, h.Categories, h.TotalOperations, h.EnabledOperations, h.ExposedTools})
	t.Render()
	return nil
}
