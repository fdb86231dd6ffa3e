package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Tag,Length,Quantity\nA,1000,2\n", ','},
		{"semicolon", "Tag;Length;Quantity\nA;1000;2\n", ';'},
		{"tab", "Tag\tLength\tQuantity\nA\t1000\t2\n", '\t'},
		{"pipe", "Tag|Length|Quantity\nA|1000|2\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

func TestDetectCutColumns_ByHeader(t *testing.T) {
	mapping, ok := DetectCutColumns([]string{"Qty", "Cut Length (mm)", "Tag", "Note"})
	require.True(t, ok)
	assert.Equal(t, 2, mapping.Tag)
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, 0, mapping.Quantity)
	assert.Equal(t, 3, mapping.Note)
	assert.Equal(t, -1, mapping.Cost)
}

func TestDetectCutColumns_PositionalFallback(t *testing.T) {
	mapping, ok := DetectCutColumns([]string{"A", "FLAT 50x5", "1000", "2"})
	assert.False(t, ok)
	assert.Equal(t, 0, mapping.Tag)
	assert.Equal(t, 2, mapping.Length)
	assert.Equal(t, 3, mapping.Quantity)
}

func TestDetectStockColumns(t *testing.T) {
	mapping, ok := DetectStockColumns([]string{"Stock Length (mm)", "Bars Available", "Label"})
	require.True(t, ok)
	assert.Equal(t, 0, mapping.Length)
	assert.Equal(t, 1, mapping.Quantity)
	assert.Equal(t, 2, mapping.Label)
}

func TestImportCuts_WithHeader(t *testing.T) {
	csv := "Tag,Section,Length,Quantity,Cost/m,Note\n" +
		"Braces,FLAT 50x5,1200,4,85.50,priority\n" +
		"Posts,SHS 50x50x2,2400,2,,\n"

	result := ImportCutsFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Requirements, 2)

	first := result.Requirements[0]
	assert.Equal(t, "Braces", first.Tag)
	assert.Equal(t, "FLAT 50x5", first.Section)
	assert.Equal(t, 1200.0, first.Length)
	assert.Equal(t, 4, first.Quantity)
	assert.InDelta(t, 85.50, first.CostPerMeter, 1e-6)
	assert.Equal(t, "priority", first.Note)
	assert.NotEmpty(t, first.ID)

	assert.Equal(t, 0.0, result.Requirements[1].CostPerMeter)
}

func TestImportCuts_NoHeader(t *testing.T) {
	csv := "A,FLAT,1000,2\nB,ANGLE,500,3\n"
	result := ImportCutsFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Requirements, 2)
	assert.Equal(t, "A", result.Requirements[0].Tag)
	assert.Equal(t, 3, result.Requirements[1].Quantity)
}

func TestImportCuts_SkipsBadRowsAndContinues(t *testing.T) {
	csv := "Tag,Length,Quantity\n" +
		"A,1000,2\n" +
		",500,1\n" +
		"B,abc,1\n" +
		"C,800,0\n" +
		"\n" +
		"D,600,1\n"

	result := ImportCutsFromReader(strings.NewReader(csv), ',')

	assert.Len(t, result.Errors, 3)
	require.Len(t, result.Requirements, 2)
	assert.Equal(t, "A", result.Requirements[0].Tag)
	assert.Equal(t, "D", result.Requirements[1].Tag)
}

func TestImportCuts_InvalidCostIsWarningOnly(t *testing.T) {
	csv := "Tag,Length,Quantity,Cost\nA,1000,2,cheap\n"
	result := ImportCutsFromReader(strings.NewReader(csv), ',')

	require.Len(t, result.Requirements, 1)
	assert.Equal(t, 0.0, result.Requirements[0].CostPerMeter)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Invalid cost") {
			found = true
		}
	}
	assert.True(t, found, "expected an invalid cost warning, got %v", result.Warnings)
}

func TestImportCuts_MissingRequiredColumn(t *testing.T) {
	csv := "Tag,Note\nA,hello\n"
	result := ImportCutsFromReader(strings.NewReader(csv), ',')

	assert.Empty(t, result.Requirements)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Length")
	assert.Contains(t, result.Errors[0], "Quantity")
}

func TestImportCutsCSV_DetectsSemicolon(t *testing.T) {
	path := writeTempFile(t, "cuts.csv", "Tag;Length;Quantity\nA;1000;2\n")

	result := ImportCutsCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Requirements, 1)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	assert.True(t, found, "expected a delimiter warning, got %v", result.Warnings)
}

func TestImportCutsCSV_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "  \n")
	result := ImportCutsCSV(path)
	assert.Empty(t, result.Requirements)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "empty")
}

func TestImportCutsCSV_MissingFile(t *testing.T) {
	result := ImportCutsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Empty(t, result.Requirements)
	assert.NotEmpty(t, result.Errors)
}

func TestImportStockCSV_QuantityExpansion(t *testing.T) {
	path := writeTempFile(t, "stock.csv",
		"Label,Length,Quantity\nRack A,6000,3\nOffcut,2350,1\n")

	result := ImportStockCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Units, 4)

	for i := 0; i < 3; i++ {
		assert.Equal(t, "Rack A", result.Units[i].Label)
		assert.Equal(t, 6000.0, result.Units[i].Length)
		assert.NotEmpty(t, result.Units[i].ID)
	}
	assert.Equal(t, 2350.0, result.Units[3].Length)
}

func TestImportStockCSV_DefaultQuantity(t *testing.T) {
	// A missing quantity cell means one bar.
	path := writeTempFile(t, "stock.csv", "Rack,6000\n")

	result := ImportStockCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Units, 1)
	assert.Equal(t, 6000.0, result.Units[0].Length)
}

func TestImportStockCSV_RejectsNonPositive(t *testing.T) {
	path := writeTempFile(t, "stock.csv",
		"Label,Length,Quantity\nBad,-100,1\nWorse,6000,0\nGood,6000,1\n")

	result := ImportStockCSV(path)
	assert.Len(t, result.Errors, 2)
	require.Len(t, result.Units, 1)
	assert.Equal(t, "Good", result.Units[0].Label)
}

func TestCutsFromRows_UnrecognizedHeaderSkipped(t *testing.T) {
	// A first row whose length cell is not numeric is treated as an
	// unknown header and skipped.
	rows := [][]string{
		{"Part", "Profil", "Laenge", "Anzahl"},
		{"A", "FLAT", "1000", "2"},
	}
	result := cutsFromRows(rows, "Row", nil)
	require.Empty(t, result.Errors)
	require.Len(t, result.Requirements, 1)
	assert.Equal(t, "A", result.Requirements[0].Tag)
}
