// Package render lays out certificates and personnel listings for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"shoulu/internal/domain"
	"shoulu/internal/engine"
)

var (
	crimson = lipgloss.Color("#7a0000")
	umber   = lipgloss.Color("#5c2e14")
	stone   = lipgloss.Color("#78716c")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(crimson)
	labelStyle   = lipgloss.NewStyle().Foreground(stone)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	officeStyle  = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(crimson).
			PaddingLeft(1)
	scrollStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(umber).
			Padding(1, 3)
)

func field(label, value string) string {
	return labelStyle.Render(label+"：") + valueStyle.Render(value)
}

// Certificate renders the ordination certificate of a disciple. An empty name
// leaves the disciple line out.
func Certificate(name string, r domain.Result) string {
	var parts []string
	parts = append(parts, headingStyle.Render("授 籙 職 牒"), "")
	parts = append(parts, field("法銜職級", r.Title))
	parts = append(parts, field("法號尊稱", r.HonorificTitle))
	if strings.TrimSpace(name) != "" {
		parts = append(parts, field("正一弟子", name))
	}
	parts = append(parts, "")
	parts = append(parts, officeStyle.Render(strings.Join(r.Office.Lines(), "\n")))
	parts = append(parts, field("職能特性", r.AuthorityDesc))
	parts = append(parts, "")
	parts = append(parts,
		field("所隸院司", string(r.Department)),
		field("補授職品", r.Rank),
		field("奏立壇號", r.Altar),
		field("所屬靖號", r.Jing),
		"",
		headingStyle.Render("撥發召請元帥與兵馬"),
		field(r.Marshal.Role, r.Marshal.FullName),
		field(r.SecondaryMarshal.Role, r.SecondaryMarshal.FullName),
		field("心恩主將", r.HeartMarshal),
		field("撥發兵馬", r.Troops),
		"",
		field("受治名稱", r.GovernanceSeat),
		field("領座仙官", r.Deity),
		field("五行臟腑", r.Organ),
		field("本命庫藏", fmt.Sprintf("%s（%s曹官）", r.Treasury, r.Official)),
		"",
		headingStyle.Render("張天師三十六員天將參隨"),
		generalsGrid(6),
	)
	return scrollStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func generalsGrid(perRow int) string {
	var rows []string
	for i := 0; i < len(engine.CelestialGenerals); i += perRow {
		end := i + perRow
		if end > len(engine.CelestialGenerals) {
			end = len(engine.CelestialGenerals)
		}
		rows = append(rows, labelStyle.Render(strings.Join(engine.CelestialGenerals[i:end], "　")))
	}
	return strings.Join(rows, "\n")
}

// EmptyRegistry is printed instead of an empty table.
const EmptyRegistry = "清冊目前尚無登記人員。"

// PersonnelTable writes the registry listing.
func PersonnelTable(w io.Writer, recs []domain.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, EmptyRegistry)
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "弟子姓名", "生辰八字", "法銜職級", "壇號 / 主將"})
	for _, rec := range recs {
		tw.AppendRow(table.Row{rec.ID, rec.Name, rec.LunarInfo, rec.Title, rec.Altar + " / " + rec.Marshal.Name})
	}
	tw.AppendFooter(table.Row{"", "", "", "合計", len(recs)})
	tw.Render()
}

// EventTable writes audit events.
func EventTable(w io.Writer, evts []domain.Event) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "Time", "Type", "Entity", "Actor", "Payload"})
	for _, e := range evts {
		tw.AppendRow(table.Row{e.ID, e.TS, e.Type, e.EntityKind + ":" + e.EntityID, e.ActorID, e.Payload})
	}
	tw.Render()
}
