package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

// printer renders command results as a table or as JSON
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, mode string) *printer {
	return &printer{w: w, json: mode == "json"}
}

// table renders rows under header, or v as JSON in json mode
func (p *printer) table(v any, header table.Row, rows []table.Row) error {
	if p.json {
		return p.JSON(v)
	}
	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
	return nil
}

// JSON writes v indented
func (p *printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// line prints a message in table mode only
func (p *printer) line(format string, args ...any) {
	if p.json {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

var familyColors = map[string]text.Colors{
	"green":  {text.FgGreen},
	"red":    {text.FgRed},
	"blue":   {text.FgBlue},
	"yellow": {text.FgYellow},
	"gray":   {text.FgHiBlack},
}

// statusText colors a status label by its color family
func statusText(s domain.StandardStatus) string {
	return familyColors[s.ColorFamily()].Sprint(s.DisplayText())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
