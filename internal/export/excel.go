package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"roombook/internal/domain"
	"roombook/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Lịch tuần"

// Exporter выгружает расписание текущей недели в Excel
type Exporter struct {
	service domain.BookingService
	dir     string
	logger  *zerolog.Logger
}

func NewExporter(service domain.BookingService, dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		service: service,
		dir:     dir,
		logger:  logger,
	}
}

// ExportWeek создает Excel файл с сеткой текущей недели и возвращает путь к нему
func (e *Exporter) ExportWeek(ctx context.Context) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	weekStart, grid, err := e.service.ListCurrentWeek(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Tuần bắt đầu: %s", weekStart))

	writeDayHeaders(f)
	writeHourColumn(f)
	writeGrid(f, grid)

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	for i := 'B'; i <= 'H'; i++ {
		_ = f.SetColWidth(sheetName, string(i), string(i), 24)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(models.Days)+1, 1)
	_ = f.MergeCell(sheetName, "A1", lastCol)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("schedule_%s.xlsx", weekStart)
	filePath := filepath.Join(e.dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Str("week_start", weekStart).Msg("excel file created")
	return filePath, nil
}

func writeDayHeaders(f *excelize.File) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, day := range models.Days {
		cell, _ := excelize.CoordinatesToCellName(i+2, 2)
		_ = f.SetCellValue(sheetName, cell, day)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeHourColumn(f *excelize.File) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	for hour := models.FirstHour; hour <= models.LastHour; hour++ {
		row := hour - models.FirstHour + 3
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("%02d:00", hour))
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeGrid(f *excelize.File, grid models.Grid) {
	freeStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFFFFF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	})
	bookedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	})

	for dayIdx, day := range models.Days {
		for hour := models.FirstHour; hour <= models.LastHour; hour++ {
			row := hour - models.FirstHour + 3
			cell, _ := excelize.CoordinatesToCellName(dayIdx+2, row)

			slot := grid[day][hour]
			if slot == nil {
				_ = f.SetCellValue(sheetName, cell, "Trống")
				_ = f.SetCellStyle(sheetName, cell, cell, freeStyle)
				continue
			}

			value := fmt.Sprintf("%s (%s)", slot.Name, slot.Phone)
			if slot.Notes != "" {
				value += fmt.Sprintf("\n%s", slot.Notes)
			}
			_ = f.SetCellValue(sheetName, cell, value)
			_ = f.SetCellStyle(sheetName, cell, cell, bookedStyle)
		}
	}
}
