package merger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/resolver"
)

var hours = []string{
	"2024-01-02 10:00:00",
	"2024-01-02 11:00:00",
	"2024-01-02 12:00:00",
	"2024-01-02 13:00:00",
}

func timeCol(name string, values ...string) models.Column {
	return models.Column{Name: name, Values: values, Time: true}
}

func col(name string, values ...string) models.Column {
	return models.Column{Name: name, Values: values}
}

func at(s string) *time.Time {
	t, ok := models.ParseTime(s)
	if !ok {
		panic(s)
	}
	return &t
}

func sources() []models.Table {
	return []models.Table{
		{Name: "a.xlsx", Columns: []models.Column{
			timeCol("Время", hours...),
			col("FT-1", "1", "2", "3", "4"),
			col("junk", "x", "x", "x", "x"),
		}},
		{Name: "b.xlsx", Columns: []models.Column{
			timeCol("Timestamp", hours...),
			col("FT-2", "5", "6", "7", "8"),
		}},
		{Name: "c.csv", Columns: []models.Column{
			col("Время", hours...),
			col("FT-3", "9", "10", "11", "12"),
			col("empty", "", "", "", ""),
		}},
	}
}

func renames() []resolver.RenameMap {
	return []resolver.RenameMap{
		{"FT-1": "Q1"},
		{"FT-2": "Q2"},
		{"FT-3": "Q3"},
	}
}

func TestMerge(t *testing.T) {
	res, err := Merge(sources(), renames(), models.NewSet("Q1", "Q2", "Q3"), Options{})
	require.NoError(t, err)

	tbl := res.Table
	assert.Equal(t, []string{"Время", "Q1", "Q2", "Q3"}, tbl.Names())
	assert.True(t, tbl.Columns[0].Time)
	assert.Equal(t, hours, tbl.Columns[0].Values)
	assert.Equal(t, []string{"5", "6", "7", "8"}, tbl.Columns[2].Values)
	assert.Empty(t, res.Diagnostics)
}

func TestMergePreconditions(t *testing.T) {
	_, err := Merge(nil, nil, models.NewSet("Q1"), Options{})
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = Merge(sources(), renames(), models.NewSet(), Options{})
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = Merge(sources(), renames()[:1], models.NewSet("Q1"), Options{})
	assert.ErrorIs(t, err, ErrRenameCount)

	_, err = Merge(sources(), renames(), models.NewSet("Q1"), Options{
		Window: models.TimeWindow{Start: at(hours[2]), End: at(hours[1])},
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestMergeFollowsFileOrder(t *testing.T) {
	src := sources()
	ren := renames()
	allowed := models.NewSet("Q1", "Q2", "Q3")

	forward, err := Merge(src, ren, allowed, Options{})
	require.NoError(t, err)

	reversed, err := Merge(
		[]models.Table{src[2], src[1], src[0]},
		[]resolver.RenameMap{ren[2], ren[1], ren[0]},
		allowed, Options{},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Время", "Q1", "Q2", "Q3"}, forward.Table.Names())
	assert.Equal(t, []string{"Время", "Q3", "Q2", "Q1"}, reversed.Table.Names())
	assert.ElementsMatch(t, forward.Table.Names(), reversed.Table.Names())
}

func TestMergeTimeWindowInclusive(t *testing.T) {
	res, err := Merge(sources(), renames(), models.NewSet("Q1"), Options{
		Window: models.TimeWindow{Start: at(hours[1]), End: at(hours[2])},
	})
	require.NoError(t, err)

	assert.Equal(t, hours[1:3], res.Table.Columns[0].Values)
	assert.Equal(t, []string{"2", "3"}, res.Table.Columns[1].Values)
}

func TestMergeOneSidedWindow(t *testing.T) {
	res, err := Merge(sources(), renames(), models.NewSet("Q1"), Options{
		Window: models.TimeWindow{Start: at(hours[2])},
	})
	require.NoError(t, err)
	assert.Equal(t, hours[2:], res.Table.Columns[0].Values)

	res, err = Merge(sources(), renames(), models.NewSet("Q1"), Options{
		Window: models.TimeWindow{End: at(hours[0])},
	})
	require.NoError(t, err)
	assert.Equal(t, hours[:1], res.Table.Columns[0].Values)
}

func TestMergeDropsColumnsEmptyAfterWindow(t *testing.T) {
	src := sources()
	src[1].Columns[1] = col("FT-2", "5", "", "", "")

	res, err := Merge(src, renames(), models.NewSet("Q1", "Q2"), Options{
		Window: models.TimeWindow{Start: at(hours[1])},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Время", "Q1"}, res.Table.Names())
}

func TestMergeEmptyWindowKeepsTimeKey(t *testing.T) {
	res, err := Merge(sources(), renames(), models.NewSet("Q1", "Q2"), Options{
		Window: models.TimeWindow{Start: at("2030-01-01 00:00:00")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Время"}, res.Table.Names())
	assert.True(t, res.Table.Columns[0].Time)
	assert.Equal(t, 0, res.Table.RowCount())
}

func TestMergePadsShortFiles(t *testing.T) {
	src := sources()
	src[1] = models.Table{Name: "b.xlsx", Columns: []models.Column{
		timeCol("Timestamp", hours[:2]...),
		col("FT-2", "5", "6"),
	}}

	res, err := Merge(src, renames(), models.NewSet("Q1", "Q2"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"5", "6", "", ""}, res.Table.Columns[2].Values)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.DiagColumnAlignment, res.Diagnostics[0].Kind)
	assert.Equal(t, "b.xlsx", res.Diagnostics[0].File)
}

func TestMergeReportsUnmatchedColumns(t *testing.T) {
	res, err := Merge(sources(), renames(), models.NewSet("Q1", "Q9"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Время", "Q1"}, res.Table.Names())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.DiagUnmatchedColumn, res.Diagnostics[0].Kind)
	assert.Equal(t, "Q9", res.Diagnostics[0].Column)
}

func TestMergeReportsDuplicateColumns(t *testing.T) {
	ren := renames()
	ren[1] = resolver.RenameMap{"FT-2": "Q1"}

	res, err := Merge(sources(), ren, models.NewSet("Q1"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Время", "Q1", "Q1"}, res.Table.Names())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.DiagDuplicateColumn, res.Diagnostics[0].Kind)
}

func TestTimeRange(t *testing.T) {
	src := sources()
	src[1].Columns[0] = timeCol("Timestamp", "2023-12-31 23:00:00", "bad")

	first, last, ok := TimeRange(src, "")
	require.True(t, ok)
	assert.Equal(t, *at("2023-12-31 23:00:00"), first)
	assert.Equal(t, *at(hours[3]), last)

	_, _, ok = TimeRange([]models.Table{{Columns: []models.Column{col("x", "1")}}}, "")
	assert.False(t, ok)
}
