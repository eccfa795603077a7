package table_test

import (
	"bytes"
	"strings"
	"testing"

	// Packages
	config "github.com/mutablelogic/go-species/pkg/config"
	schema "github.com/mutablelogic/go-species/pkg/schema"
	table "github.com/mutablelogic/go-species/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

func Test_Table_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(""))
	assert.Equal("-", table.FormatCell(0))
	assert.Equal("-", table.FormatCell([]string{}))
	assert.Equal("a, b", table.FormatCell([]string{"a", "b"}))
	assert.Equal("42", table.FormatCell(42))
	assert.Equal("owl", table.FormatCell("owl"))
	assert.Contains(table.FormatCell(table.Bold{"owl"}), "owl")
}

func Test_Table_002(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("short", table.Truncate("short", 10))
	assert.Equal("a b", table.Truncate("a\nb", 10))
	assert.Equal("abcd…", table.Truncate("abcdefgh", 5))
}

func Test_Table_003(t *testing.T) {
	assert := assert.New(t)
	data := table.SpeciesTable{
		{ObjectName: "salted fish", ImageURL: "https://cdn.example.com/fish.png"},
		{ObjectName: "night owl"},
	}
	out := table.Render(data, 0)
	assert.Contains(out, "SPECIES")
	assert.Contains(out, "salted fish")
	assert.Contains(out, "https://cdn.example.com/fish.png")
	assert.Contains(out, "night owl")

	// Writing to a buffer is not sized to a terminal
	var buf bytes.Buffer
	assert.NoError(table.Write(&buf, data))
	assert.Equal(out+"\n", buf.String())
	assert.Zero(table.Width(&buf))
}

func Test_Table_004(t *testing.T) {
	assert := assert.New(t)
	data := table.EndpointTable{config.NewEndpoints("http://api.example.com")}
	assert.Equal(3, data.Len())
	out := table.Render(data, 0)
	assert.Contains(out, "http://api.example.com/api/preset-species")
	assert.Contains(out, "http://api.example.com/api/diagnose/stream")
	assert.Contains(out, "diagnose-stream")
}

func Test_Table_005(t *testing.T) {
	assert := assert.New(t)
	assert.Zero(table.DiagnosisTable{}.Len())

	data := table.DiagnosisTable{&schema.DiagnoseResponse{
		ObjectName: "night owl",
		Keywords:   []string{"late", "hungry"},
		SequenceNo: 7,
	}}
	out := table.Render(data, 0)
	assert.Contains(out, "late, hungry")
	assert.Contains(out, "7")

	// Name falls back to the object name
	assert.Equal(2, strings.Count(out, "night owl"))
}

func Test_Table_006(t *testing.T) {
	assert := assert.New(t)
	data := table.SpeciesTable{
		{ObjectName: strings.Repeat("long name ", 10), ImageURL: "https://cdn.example.com/x.png"},
	}
	for _, line := range strings.Split(table.Render(data, 60), "\n") {
		assert.LessOrEqual(len([]rune(line)), 60)
	}
}
