// Package scheduleexport renders a solved Assignment as the 52-week
// spreadsheet grid, using github.com/xuri/excelize/v2 the way the
// pack's payroll export service builds its workbooks: one sheet, a
// header row, then one row per subject with SetCellValue calls.
package scheduleexport

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
)

const sheetName = "Schedule"

// summaryCategories are the per-resident totals shown in the trailing
// columns, in column order.
var summaryCategories = []model.Category{
	model.CategoryFloors,
	model.CategoryICU,
	model.CategoryICUNight,
	model.CategoryNF,
	model.CategorySwing,
	model.CategoryClinic,
	model.CategoryED,
	model.CategoryCardio,
	model.CategoryElective,
	model.CategoryVacation,
}

var summaryHeaders = []string{"FLOORS", "ICU", "ICU_N", "NF", "SWING", "CLINIC", "ED", "CARDIO", "ELECTIVE", "VACATION"}

// categoryFill is the fixed fill colour per rotation category, applied
// to every week cell so the grid reads visually by rotation type.
var categoryFill = map[model.Category]string{
	model.CategoryFloors:     "FFF2CC",
	model.CategoryICU:        "F4CCCC",
	model.CategoryICUNight:   "EA9999",
	model.CategoryNF:         "D9EAD3",
	model.CategorySwing:      "B6D7A8",
	model.CategoryClinic:     "CFE2F3",
	model.CategoryED:         "D9D2E9",
	model.CategoryCardio:     "FCE5CD",
	model.CategoryID:         "FFE599",
	model.CategoryNeuro:      "A2C4C9",
	model.CategoryGeriatrics: "B4A7D6",
	model.CategoryGenSurg:    "D5A6BD",
	model.CategoryTYClinic:   "9FC5E8",
	model.CategoryElective:   "E6B8AF",
	model.CategoryVacation:   "CCCCCC",
}

// rosterRow is one resident plus the rotation code recorded for every
// week.
type rosterRow struct {
	resident model.Resident
	weeks    map[int]string
}

// Build renders assignment for residents into an .xlsx workbook and
// returns its bytes. cohortName resolves a resident's CohortID (nil
// cohorts sort last, grouped together).
func Build(cat *catalog.Catalogue, residents []model.Resident, assignment model.Assignment, cohortName func(*model.Resident) string) ([]byte, error) {
	rows := make([]rosterRow, 0, len(residents))
	for _, r := range residents {
		rows = append(rows, rosterRow{resident: r, weeks: assignment[r.ID]})
	}
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := rows[i].resident, rows[j].resident
		ci, cj := cohortName(&ri), cohortName(&rj)
		if ci != cj {
			return ci < cj
		}
		if ri.PGY != rj.PGY {
			return ri.PGY < rj.PGY
		}
		return ri.Name < rj.Name
	})

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	fills := make(map[model.Category]int, len(categoryFill))
	for cat, color := range categoryFill {
		style, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}})
		if err != nil {
			return nil, fmt.Errorf("build fill style: %w", err)
		}
		fills[cat] = style
	}

	writeHeader(f)
	for i, row := range rows {
		writeRow(f, cat, fills, i+2, row)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File) {
	col := 1
	for _, label := range []string{"Cohort", "PGY", "Name"} {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		f.SetCellValue(sheetName, cell, label)
		col++
	}
	for block := 0; block < 13; block++ {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		f.SetCellValue(sheetName, cell, fmt.Sprintf("Weeks %d-%d", block*4+1, block*4+4))
		col++
	}
	for _, label := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		f.SetCellValue(sheetName, cell, label)
		col++
	}
}

func writeRow(f *excelize.File, cat *catalog.Catalogue, fills map[model.Category]int, rowNum int, row rosterRow) {
	col := 1
	set := func(v any) {
		cell, _ := excelize.CoordinatesToCellName(col, rowNum)
		f.SetCellValue(sheetName, cell, v)
		col++
	}
	cohort := ""
	if row.resident.CohortID != nil {
		cohort = row.resident.CohortID.String()
	}
	set(cohort)
	set(string(row.resident.PGY))
	set(row.resident.Name)

	summary := make(map[model.Category]int, len(summaryCategories))
	for block := 0; block < 13; block++ {
		codes := make([]string, 0, 4)
		var blockCategory model.Category
		for w := block*4 + 1; w <= block*4+4; w++ {
			code := row.weeks[w]
			codes = append(codes, code)
			if rot, ok := cat.Lookup(code); ok {
				for _, c := range rot.Categories {
					summary[c]++
					if blockCategory == "" {
						blockCategory = c
					}
				}
			}
		}
		cell, _ := excelize.CoordinatesToCellName(col, rowNum)
		f.SetCellValue(sheetName, cell, joinCodes(codes))
		if style, ok := fills[blockCategory]; ok {
			_ = f.SetCellStyle(sheetName, cell, cell, style)
		}
		col++
	}
	for _, c := range summaryCategories {
		set(summary[c])
	}
}

func joinCodes(codes []string) string {
	out := ""
	for i, c := range codes {
		if i > 0 {
			out += "/"
		}
		out += c
	}
	return out
}
