package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)

		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Items": {
			{"Quote 42"},
			{"Item", "Qty", "Unit_Price"},
			{"Widget", 2, 9.99},
			{"Bolt", "10", "0.25"},
		},
	})

	got, err := importer.ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Widget", "Bolt"}, got.Names)
	assert.Equal(t, []string{"2", "10"}, got.Quantities)
	assert.Equal(t, []string{"9.99", "0.25"}, got.Prices)
}

func TestParseWorkbook_NoHeader(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Items": {{"just", "some", "cells"}},
	})

	_, err := importer.ParseWorkbook(bytes.NewReader(data))
	assert.ErrorIs(t, err, importer.ErrNoHeader)
}

func TestParseWorkbook_NotAWorkbook(t *testing.T) {
	_, err := importer.ParseWorkbook(strings.NewReader("name,quantity,price\n"))
	assert.Error(t, err)
}

func TestParse_DispatchesOnFormat(t *testing.T) {
	assert.Equal(t, importer.FormatXLSX, importer.FormatFromFilename("items.XLSX"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromFilename("items.csv"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromFilename("items"))

	rows, err := importer.Parse(importer.FormatCSV, strings.NewReader("name,quantity,price\nWidget,1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget"}, rows.Names)

	_, err = importer.Parse(importer.Format("ods"), strings.NewReader(""))
	assert.Error(t, err)
}
