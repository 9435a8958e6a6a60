package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Sheet:   "Attendance",
		Headers: []string{"Employee", "Date", "Status"},
		Rows: [][]string{
			{"Ana Silva", "2025-09-17", "Present"},
			{"Budi Santoso", "2025-09-17", "Late"},
		},
	}
}

func TestCSV(t *testing.T) {
	data, err := CSV(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Employee,Date,Status", lines[0])
	assert.Equal(t, "Ana Silva,2025-09-17,Present", lines[1])
}

func TestCSVEscapesCommas(t *testing.T) {
	table := Table{
		Headers: []string{"Employee"},
		Rows:    [][]string{{"Silva, Ana"}},
	}

	data, err := CSV(table)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Silva, Ana"`)
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee", "Date", "Status"}, rows[0])
	assert.Equal(t, "Budi Santoso", rows[2][0])
}
