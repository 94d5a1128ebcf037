package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/venicegeo/bf-eo-catalog/eo"
	cli "gopkg.in/urfave/cli.v1"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func bandsTable() string {
	names := eo.CommonNames()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		r, _ := eo.BandRange(name)
		rows = append(rows, []string{name, fmt.Sprintf("%.2f", r.Min), fmt.Sprintf("%.2f", r.Max), eo.BandDescription(name)})
	}
	return renderTable(
		[]string{"Common name", "Min (µm)", "Max (µm)", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
}

func bandsAction(*cli.Context) error {
	_, err := fmt.Fprintln(stdout, bandsTable())
	return err
}
