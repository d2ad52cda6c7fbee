package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

func TestMark(t *testing.T) {
	m := DefaultMarkers()
	limits := models.Limits{Min: 10, Max: 20}

	tests := []struct {
		cell string
		want string
	}{
		{"5", "↓"},
		{"25", "↑"},
		{"0", ""},
		{"0.0", ""},
		{"15", ""},
		{"10", ""},
		{"20", ""},
		{"-3", "↓"},
		{"20,5", "↑"},
		{"n/a", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Mark(tt.cell, limits))
		})
	}
}

func TestMarkerNames(t *testing.T) {
	m := DefaultMarkers()

	assert.Equal(t, "Flow ⚠", m.MarkerName("Flow"))
	assert.True(t, m.IsMarker("Flow ⚠"))
	assert.False(t, m.IsMarker("Flow"))
	assert.Equal(t, "Flow", m.BaseName("Flow ⚠"))
	assert.Equal(t, "Flow", m.BaseName("Flow"))
}

func TestAnnotate(t *testing.T) {
	rt, err := rules.Parse("rules.csv", [][]string{
		{"pattern", "source", "target", "node", "parameter", "min", "max"},
		{"a", "x", "Flow", "N1", "Flow", "10", "20"},
		{"a", "y", "Temp", "N1", "Temperature"},
	})
	require.NoError(t, err)

	tbl := &models.Table{Columns: []models.Column{
		{Name: "Время", Values: []string{"t1", "t2", "t3", "t4"}, Time: true},
		{Name: "Flow", Values: []string{"5", "25", "0", "15"}},
		{Name: "Temp", Values: []string{"1", "2", "3", "4"}},
	}}
	before := tbl.Clone()

	out, nodes := Annotate(tbl, rt, DefaultMarkers())

	assert.Equal(t, []string{"Время", "Flow", "Flow ⚠", "Temp"}, out.Names())
	assert.Equal(t, []string{"↓", "↑", "", ""}, out.Columns[2].Values)
	assert.Equal(t, map[string]string{"Flow": "N1", "Temp": "N1"}, nodes)
	assert.Equal(t, before, tbl)
}

func TestAnnotateCustomMarkers(t *testing.T) {
	rt, err := rules.Parse("rules.csv", [][]string{
		{"pattern", "source", "target", "node", "parameter", "min", "max"},
		{"a", "x", "P", "N1", "Pressure", "1", "2"},
	})
	require.NoError(t, err)

	tbl := &models.Table{Columns: []models.Column{
		{Name: "Время", Values: []string{"t1", "t2"}, Time: true},
		{Name: "P", Values: []string{"3"}},
	}}
	m := Markers{Suffix: "!", Below: "low", Above: "high"}

	out, _ := Annotate(tbl, rt, m)

	require.Len(t, out.Columns, 3)
	assert.Equal(t, "P !", out.Columns[2].Name)
	assert.Equal(t, []string{"high", ""}, out.Columns[2].Values)
}
