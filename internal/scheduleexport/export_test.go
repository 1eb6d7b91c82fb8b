package scheduleexport_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tolga/resident-scheduler/internal/catalog"
	"github.com/tolga/resident-scheduler/internal/model"
	"github.com/tolga/resident-scheduler/internal/scheduleexport"
)

func TestBuild_ProducesReadableWorkbookWithHeaderAndRow(t *testing.T) {
	cat := catalog.New()
	resident := model.Resident{ID: uuid.New(), Name: "Alice", PGY: model.PGY1}
	assignment := model.Assignment{
		resident.ID: {1: catalog.CodeA, 2: catalog.CodeA, 3: catalog.CodeA, 4: catalog.CodeA},
	}
	cohortName := func(*model.Resident) string { return "Cohort 2027" }

	xlsx, err := scheduleexport.Build(cat, []model.Resident{resident}, assignment, cohortName)
	require.NoError(t, err)
	require.NotEmpty(t, xlsx)

	f, err := excelize.OpenReader(bytes.NewReader(xlsx))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Schedule", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cohort", name)

	residentName, err := f.GetCellValue("Schedule", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", residentName)

	block1, err := f.GetCellValue("Schedule", "D2")
	require.NoError(t, err)
	assert.Equal(t, "A/A/A/A", block1)
}
