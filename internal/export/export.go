// Package export renders customer listings as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"crmapi/internal/model"
)

// Mode selects how customers with several addresses are laid out.
type Mode string

const (
	// Separate writes one row per address; customers without addresses get one row with blank address cells.
	Separate Mode = "separate"
	// Combined writes one row per customer, joining the address columns with Delimiter.
	Combined Mode = "combined"
)

const (
	SheetName   = "Customers"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	Delimiter   = "; "

	timeLayout = "2006-01-02 15:04:05"
)

// Columns is the header row of every export.
var Columns = []string{"ID", "Name", "Email", "Phone", "Created At", "Street", "City", "State", "Country", "Zip Code"}

// ParseMode validates s. An empty string selects Separate.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Separate:
		return Separate, nil
	case Combined:
		return Combined, nil
	default:
		return "", fmt.Errorf("unknown export mode %q", s)
	}
}

// Filename returns the attachment name for an export generated at t, stamped in loc (UTC when nil).
func Filename(mode Mode, t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("customers_%s_%s.xlsx", mode, t.In(loc).Format("20060102_150405"))
}

// Rows shapes customers into data rows (header excluded) according to mode.
func Rows(customers []model.Customer, mode Mode, loc *time.Location) [][]string {
	if loc == nil {
		loc = time.UTC
	}

	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		base := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			deref(c.Phone),
			c.CreatedAt.In(loc).Format(timeLayout),
		}

		if mode == Combined {
			cols := make([][]string, 5)
			for _, a := range c.Addresses {
				for i, v := range addressCells(a) {
					cols[i] = append(cols[i], v)
				}
			}
			row := base
			for _, col := range cols {
				row = append(row, strings.Join(col, Delimiter))
			}
			rows = append(rows, row)
			continue
		}

		if len(c.Addresses) == 0 {
			rows = append(rows, append(base, "", "", "", "", ""))
			continue
		}
		for _, a := range c.Addresses {
			row := append(append([]string{}, base...), addressCells(a)...)
			rows = append(rows, row)
		}
	}
	return rows
}

func addressCells(a model.Address) []string {
	return []string{
		a.Street,
		a.City.Name,
		a.City.State.Name,
		a.City.State.Country.Name,
		deref(a.ZipCode),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Workbook streams the header and rows into a single-sheet xlsx document and returns its bytes.
func Workbook(rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, name := range Columns {
		header[i] = excelize.Cell{StyleID: bold, Value: name}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}
	return f.WriteToBuffer()
}
