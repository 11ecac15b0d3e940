package export

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"
	"chartdeck/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixedStats struct{}

func (fixedStats) Summarize(_ context.Context, d catalog.Descriptor) ([]stats.Summary, error) {
	out := make([]stats.Summary, len(d.Config.Series))
	for i, s := range d.Config.Series {
		sd := 1.5
		out[i] = stats.Summary{Series: s.Label, Count: int64(len(s.Values)), Mean: 2, StdDev: &sd}
	}
	return out, nil
}

func TestExportWritesExpectedFiles(t *testing.T) {
	cat, err := catalog.Full()
	require.NoError(t, err)
	dir := t.TempDir()

	ex := New(Options{
		Dir:         dir,
		Formats:     []string{FormatPNG, FormatSVG, FormatXLSX},
		Concurrency: 3,
		Surface:     render.Surface{Width: 480, Height: 320},
		Stats:       fixedStats{},
	})
	files, err := ex.Export(context.Background(), cat.All())
	require.NoError(t, err)

	var pngs, svgs, books int
	for _, f := range files {
		switch filepath.Ext(f) {
		case ".png":
			pngs++
		case ".svg":
			svgs++
		case ".xlsx":
			books++
		}
	}
	assert.Equal(t, 10, pngs)
	assert.Equal(t, 8, svgs, "hbar and radar have no svg")
	assert.Equal(t, 1, books)

	assert.NoFileExists(t, filepath.Join(dir, "03-hbar.svg"))
	assert.NoFileExists(t, filepath.Join(dir, "09-radar.svg"))

	// radar goes through the fallback drawer
	f, err := os.Open(filepath.Join(dir, "09-radar.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
}

func TestWorkbookSheets(t *testing.T) {
	cat, err := catalog.Simple()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), WorkbookName)

	sums := make([][]stats.Summary, cat.Len())
	for i, d := range cat.All() {
		sums[i], _ = fixedStats{}.Summarize(context.Background(), d)
	}
	require.NoError(t, WriteWorkbook(path, cat.All(), sums))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"01-line", "02-bar", "03-pie", "04-scatter", "05-radar", StatsSheet}, wb.GetSheetList())

	v, err := wb.GetCellValue("01-line", "A1")
	require.NoError(t, err)
	assert.Equal(t, "label", v)

	v, err = wb.GetCellValue(StatsSheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "1.5", v)
}

func TestDataTableShapes(t *testing.T) {
	cat, err := catalog.Full()
	require.NoError(t, err)

	hist := DataTable(cat.At(4))
	assert.Equal(t, []string{"bin", "count"}, hist.Header)
	assert.Len(t, hist.Rows, 8)

	box := DataTable(cat.At(7))
	assert.Len(t, box.Rows, 5)
	assert.Equal(t, "median", box.Rows[2][0])

	errbar := DataTable(cat.At(9))
	assert.Contains(t, errbar.Header[len(errbar.Header)-1], "error")
}

func TestExportCancelled(t *testing.T) {
	cat, err := catalog.Full()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(Options{Dir: t.TempDir(), Formats: []string{FormatPNG}}).Export(ctx, cat.All())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFileBase(t *testing.T) {
	assert.Equal(t, "03-hbar", FileBase(2, catalog.Descriptor{Kind: catalog.KindHorizontalBar}))
}
