package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into a fresh workbook's default sheet and
// returns its bytes.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseWorkbook_HeaderMappedRows(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"fid", "ids", "disease"},
		{"ncc_1", "1", "폐암"},
		{"ncc_2", "2", "백혈병"},
	})

	rows, err := ParseWorkbook(data, "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ncc_1", rows[0]["fid"])
	assert.Equal(t, "폐암", rows[0]["disease"])
	assert.Equal(t, "ncc_2", rows[1]["fid"])
}

func TestParseWorkbook_ShortRowsReadAsEmpty(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"fid", "ids", "disease"},
		{"ncc_1"},
	})

	rows, err := ParseWorkbook(data, "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "ncc_1", rows[0]["fid"])
	assert.Equal(t, "", rows[0]["ids"])
	assert.Equal(t, "", rows[0]["disease"])
}

func TestParseWorkbook_FallsBackToFirstSheet(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"fid"},
		{"ncc_1"},
	})

	// the configured sheet name is absent from the workbook
	rows, err := ParseWorkbook(data, "NoSuchSheet")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ncc_1", rows[0]["fid"])
}

func TestParseWorkbook_HeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"fid", "ids"},
	})

	rows, err := ParseWorkbook(data, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseWorkbook_RejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook([]byte("not a workbook"), "")
	assert.Error(t, err)
}
