package export

import (
	"context"
	"io"
	"testing"

	"roombook/internal/domain"
	"roombook/internal/models"
	"roombook/internal/schedule"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubService struct {
	weekStart string
	bookings  []*models.Booking
}

func (s *stubService) ListCurrentWeek(_ context.Context) (string, models.Grid, error) {
	grid, _ := schedule.BuildGrid(s.bookings)
	return s.weekStart, grid, nil
}

func (s *stubService) Create(context.Context, domain.CreateRequest) (*models.Booking, error) {
	return nil, nil
}
func (s *stubService) Remove(context.Context, int64) (bool, error)        { return false, nil }
func (s *stubService) ResetCurrentWeek(context.Context) (string, int64, error) {
	return "", 0, nil
}
func (s *stubService) Stats(context.Context) (models.Stats, error) { return models.Stats{}, nil }

func TestExportWeek(t *testing.T) {
	svc := &stubService{
		weekStart: "2025-09-01",
		bookings: []*models.Booking{
			{ID: 1, Name: "Nguyễn Văn A", Phone: "0123456789", Day: "Thứ 2", Hour: 8, Notes: "họp nhóm"},
		},
	}

	logger := zerolog.New(io.Discard)
	exporter := NewExporter(svc, t.TempDir(), &logger)

	path, err := exporter.ExportWeek(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tuần bắt đầu: 2025-09-01", title)

	// "Thứ 2" is the first day column (B), hour 8 is the second grid row (row 4)
	header, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Thứ 2", header)

	cell, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	assert.Contains(t, cell, "Nguyễn Văn A")
	assert.Contains(t, cell, "0123456789")
	assert.Contains(t, cell, "họp nhóm")

	// untouched slots render as free
	free, err := f.GetCellValue(sheetName, "C4")
	require.NoError(t, err)
	assert.Equal(t, "Trống", free)
}
