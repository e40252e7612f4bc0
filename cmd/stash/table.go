package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stash/internal/store"
)

const titleColumnWidth = 40

// videoColumn binds a table column to the record field it displays. A
// maxWidth of zero leaves the cell untruncated.
type videoColumn struct {
	header   string
	align    text.Align
	maxWidth int
	cell     func(v *store.SavedVideo) string
}

var videoColumns = []videoColumn{
	{"ID", text.AlignRight, 0, func(v *store.SavedVideo) string {
		return strconv.FormatInt(v.ID, 10)
	}},
	{"Video", text.AlignLeft, 0, func(v *store.SavedVideo) string {
		return v.VideoID
	}},
	{"Title", text.AlignLeft, titleColumnWidth, func(v *store.SavedVideo) string {
		return v.Title
	}},
	{"Lang", text.AlignLeft, 0, func(v *store.SavedVideo) string {
		return v.Language
	}},
	{"Summary", text.AlignLeft, 0, func(v *store.SavedVideo) string {
		return boolMark(v.HasSummary())
	}},
	{"Segments", text.AlignRight, 0, func(v *store.SavedVideo) string {
		return strconv.Itoa(v.SegmentsCount)
	}},
	{"Saved", text.AlignLeft, 0, func(v *store.SavedVideo) string {
		return v.CreatedAt.Local().Format("2006-01-02 15:04")
	}},
}

func renderVideoTable(videos []*store.SavedVideo) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(videoColumns))
	configs := make([]table.ColumnConfig, 0, len(videoColumns))
	for i, column := range videoColumns {
		header[i] = column.header
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       column.align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, video := range videos {
		row := make(table.Row, len(videoColumns))
		for i, column := range videoColumns {
			cell := column.cell(video)
			if column.maxWidth > 0 {
				cell = truncateCell(cell, column.maxWidth)
			}
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	return tw.Render()
}

func truncateCell(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}

func boolMark(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
