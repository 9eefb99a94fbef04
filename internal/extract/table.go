// Package extract turns raw query results into display payloads: a flat
// table projection for the table view and an ordered image list for the
// grid view. Everything here is recomputed per request; nothing is
// cached or persisted.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"notiongrid/internal/notion"
)

// Placeholder is rendered for cells whose property is absent on a row or
// whose kind has no display rule. Never blank, never an error.
const Placeholder = "—"

// TableView is the table projection of a query result.
type TableView struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TableRow is one rendered row.
type TableRow struct {
	PageID string   `json:"pageId"`
	Cells  []string `json:"cells"`
}

// Table projects rows onto the column set of the first row. Later rows
// missing a column render the placeholder in that cell. No rows means no
// columns.
func Table(rows []notion.Page) TableView {
	if len(rows) == 0 {
		return TableView{}
	}

	columns := columnOrder(&rows[0])
	view := TableView{Columns: columns}

	for i := range rows {
		row := TableRow{PageID: rows[i].ID, Cells: make([]string, len(columns))}
		for j, col := range columns {
			pv, ok := rows[i].Properties[col]
			if !ok {
				row.Cells[j] = Placeholder
				continue
			}
			row.Cells[j] = FormatValue(pv)
		}
		view.Rows = append(view.Rows, row)
	}

	return view
}

// columnOrder uses the response's JSON property order when available,
// falling back to sorted names for pages constructed in code.
func columnOrder(p *notion.Page) []string {
	if order := p.PropertyOrder(); len(order) > 0 {
		return order
	}
	names := make([]string, 0, len(p.Properties))
	for name := range p.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatValue renders a property value for a table cell. The switch is
// closed over the kinds the service understands; every other kind falls
// through to the placeholder.
func FormatValue(pv notion.PropertyValue) string {
	var s string

	switch pv.Type {
	case notion.PropertyTypeTitle:
		s = notion.PlainText(pv.Title)
	case notion.PropertyTypeRichText:
		s = notion.PlainText(pv.RichText)
	case notion.PropertyTypeSelect:
		if pv.Select != nil {
			s = pv.Select.Name
		}
	case notion.PropertyTypeStatus:
		if pv.Status != nil {
			s = pv.Status.Name
		}
	case notion.PropertyTypeMultiSelect:
		names := make([]string, 0, len(pv.MultiSelect))
		for _, opt := range pv.MultiSelect {
			names = append(names, opt.Name)
		}
		s = strings.Join(names, ", ")
	case notion.PropertyTypeDate:
		if pv.Date != nil {
			s = calendarDate(pv.Date.Start)
		}
	case notion.PropertyTypeCheckbox:
		if pv.Checkbox != nil {
			if *pv.Checkbox {
				s = "✓"
			} else {
				s = "✗"
			}
		}
	case notion.PropertyTypeNumber:
		if pv.Number != nil {
			s = strconv.FormatFloat(*pv.Number, 'f', -1, 64)
		}
	case notion.PropertyTypeURL:
		s = pv.URL
	case notion.PropertyTypeEmail:
		s = pv.Email
	case notion.PropertyTypePhone:
		s = pv.PhoneNumber
	case notion.PropertyTypePeople:
		names := make([]string, 0, len(pv.People))
		for _, u := range pv.People {
			if u.Name != "" {
				names = append(names, u.Name)
			}
		}
		s = strings.Join(names, ", ")
	case notion.PropertyTypeFiles:
		names := make([]string, 0, len(pv.Files))
		for _, f := range pv.Files {
			if f.Name != "" {
				names = append(names, f.Name)
			}
		}
		s = strings.Join(names, ", ")
	default:
		return Placeholder
	}

	if s == "" {
		return Placeholder
	}
	return s
}

// calendarDate trims a Notion date start value to its calendar-date
// portion. Date-only values pass through unchanged.
func calendarDate(start string) string {
	if i := strings.IndexByte(start, 'T'); i >= 0 {
		return start[:i]
	}
	return start
}
