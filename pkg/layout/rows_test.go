package layout

import (
	"math/rand/v2"
	"reflect"
	"strconv"
	"testing"

	"github.com/matzehuels/photogrid/pkg/photo"
)

func pic(id string, w, h int) photo.Photo {
	return photo.Photo{ID: id, Width: w, Height: h, SourceURL: "https://picsum.photos/id/" + id + "/" + strconv.Itoa(w) + "/" + strconv.Itoa(h)}
}

func TestComputeRowsScenario(t *testing.T) {
	photos := []photo.Photo{pic("1", 400, 300), pic("2", 600, 300), pic("3", 800, 300)}
	rows := ComputeRows(photos, Options{ContainerWidth: 1000, TargetRowHeight: 240, Gap: 10})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Height != 297 {
		t.Errorf("row 1 height = %d, want 297", first.Height)
	}
	if got := photo.IDs(rows[:1]); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("row 1 ids = %v, want [1 2]", got)
	}
	wantWidths := []int{396, 594}
	for i, p := range first.Photos {
		if p.DisplayHeight != 297 {
			t.Errorf("row 1 photo %s height = %d, want 297", p.ID, p.DisplayHeight)
		}
		if p.DisplayWidth != wantWidths[i] {
			t.Errorf("row 1 photo %s width = %d, want %d", p.ID, p.DisplayWidth, wantWidths[i])
		}
	}
	if w := first.Width(10); w != 1000 {
		t.Errorf("row 1 width = %d, want 1000", w)
	}

	last := rows[1]
	if last.Height != 240 || last.Len() != 1 {
		t.Fatalf("tail row = %+v, want one photo at 240", last)
	}
	if p := last.Photos[0]; p.ID != "3" || p.DisplayWidth != 640 || p.DisplayHeight != 240 {
		t.Errorf("tail photo = %+v, want id 3 at 640x240", p)
	}
}

func TestComputeRowsEmpty(t *testing.T) {
	photos := []photo.Photo{pic("1", 400, 300)}
	tests := []struct {
		name   string
		photos []photo.Photo
		opts   Options
	}{
		{"no photos", nil, Options{ContainerWidth: 1000, TargetRowHeight: 240}},
		{"zero width", photos, Options{ContainerWidth: 0, TargetRowHeight: 240}},
		{"negative width", photos, Options{ContainerWidth: -10, TargetRowHeight: 240}},
		{"zero target", photos, Options{ContainerWidth: 1000, TargetRowHeight: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rows := ComputeRows(tt.photos, tt.opts); rows != nil {
				t.Errorf("ComputeRows() = %v, want nil", rows)
			}
		})
	}
}

func TestComputeRowsWidePhotoAlone(t *testing.T) {
	photos := []photo.Photo{pic("pano", 12000, 1000), pic("a", 300, 300), pic("b", 300, 300)}
	rows := ComputeRows(photos, Options{ContainerWidth: 800, TargetRowHeight: 240, Gap: 8})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	pano := rows[0]
	if pano.Len() != 1 || pano.Photos[0].ID != "pano" {
		t.Fatalf("first row should hold the panorama alone, got %v", photo.IDs(rows[:1]))
	}
	// 800/2880 of 240 is 66.67.
	if pano.Height != 66 {
		t.Errorf("panorama row height = %d, want 66", pano.Height)
	}
	if w := pano.Photos[0].DisplayWidth; w > 800 || w < 790 {
		t.Errorf("panorama width = %d, want close to 800", w)
	}
}

func TestComputeRowsExtremePanoramaKeepsPositiveHeight(t *testing.T) {
	photos := []photo.Photo{pic("strip", 1_000_000, 10), pic("next", 10, 10)}
	rows := ComputeRows(photos, Options{ContainerWidth: 100, TargetRowHeight: 240})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Height < 1 || rows[0].Photos[0].DisplayWidth < 1 {
		t.Errorf("row = %+v, want positive height and width", rows[0])
	}
}

func TestComputeRowsSkipsUnscalablePhotos(t *testing.T) {
	photos := []photo.Photo{pic("a", 400, 300), pic("zero", 400, 0), pic("b", 400, 300)}
	rows := ComputeRows(photos, Options{ContainerWidth: 2000, TargetRowHeight: 240})
	if got := photo.IDs(rows); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ids = %v, want [a b]", got)
	}
}

func TestComputeRowsNegativeGapIsZero(t *testing.T) {
	photos := []photo.Photo{pic("1", 400, 300), pic("2", 600, 300), pic("3", 800, 300)}
	neg := ComputeRows(photos, Options{ContainerWidth: 1000, TargetRowHeight: 240, Gap: -5})
	zero := ComputeRows(photos, Options{ContainerWidth: 1000, TargetRowHeight: 240, Gap: 0})
	if !reflect.DeepEqual(neg, zero) {
		t.Error("negative gap should behave like zero gap")
	}
}

func TestComputeRowsDeterministic(t *testing.T) {
	photos := randomPhotos(rand.New(rand.NewPCG(7, 11)), 200)
	opts := Options{ContainerWidth: 1280, TargetRowHeight: 240, Gap: 8}
	if a, b := ComputeRows(photos, opts), ComputeRows(photos, opts); !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different rows")
	}
}

func TestComputeRowsDoesNotMutateInput(t *testing.T) {
	photos := randomPhotos(rand.New(rand.NewPCG(3, 5)), 50)
	before := make([]photo.Photo, len(photos))
	copy(before, photos)

	rows := ComputeRows(photos, Options{ContainerWidth: 900, TargetRowHeight: 200, Gap: 4})
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}
	if !reflect.DeepEqual(photos, before) {
		t.Error("ComputeRows modified its input")
	}
	for _, p := range photos {
		if p.DisplayWidth != 0 || p.DisplayHeight != 0 {
			t.Fatalf("input photo %s gained display fields", p.ID)
		}
	}
}

// TestComputeRowsWidthInvariant checks every justified row against the
// container width. Flooring the row height loses less than one pixel of
// height, which costs less than the row's summed aspect ratio in width; each
// per-photo floor costs less than one more pixel.
func TestComputeRowsWidthInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 1))
	for trial := range 200 {
		photos := randomPhotos(r, 1+r.IntN(80))
		opts := Options{
			ContainerWidth:  200 + r.IntN(3000),
			TargetRowHeight: 80 + r.IntN(400),
			Gap:             r.IntN(24),
		}
		rows := ComputeRows(photos, opts)

		total := 0
		for _, row := range rows {
			total += row.Len()
		}
		if total != len(photos) {
			t.Fatalf("trial %d: laid out %d of %d photos", trial, total, len(photos))
		}

		for i, row := range rows[:len(rows)-1] {
			var aspect float64
			for _, p := range row.Photos {
				aspect += p.AspectRatio()
				if p.DisplayHeight != row.Height {
					t.Fatalf("trial %d row %d: photo height %d != row height %d", trial, i, p.DisplayHeight, row.Height)
				}
			}
			short := opts.ContainerWidth - row.Width(opts.Gap)
			if row.Len() == 1 {
				// A lone photo has no rounding slack to share; it only shrinks.
				if short < 0 {
					t.Fatalf("trial %d row %d: lone photo overflows by %d", trial, i, -short)
				}
				continue
			}
			if short < 0 || float64(short) > float64(row.Len())+aspect {
				t.Fatalf("trial %d row %d: width %d vs container %d (n=%d, aspect=%.2f)",
					trial, i, row.Width(opts.Gap), opts.ContainerWidth, row.Len(), aspect)
			}
		}

		if tailRow := rows[len(rows)-1]; tailRow.Height != opts.TargetRowHeight {
			t.Fatalf("trial %d: tail height %d, want %d", trial, tailRow.Height, opts.TargetRowHeight)
		}
	}
}

func TestSummarize(t *testing.T) {
	photos := []photo.Photo{pic("1", 400, 300), pic("2", 600, 300), pic("3", 800, 300)}
	opts := Options{ContainerWidth: 1000, TargetRowHeight: 240, Gap: 10}
	s := Summarize(ComputeRows(photos, opts), opts)
	want := Summary{Rows: 2, Photos: 3, TailPhotos: 1, MaxDeviation: 0}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
}

func TestHeight(t *testing.T) {
	rows := []photo.Row{{Height: 297}, {Height: 240}}
	tests := []struct {
		rows []photo.Row
		gap  int
		want int
	}{
		{nil, 8, 0},
		{rows[:1], 8, 297},
		{rows, 10, 547},
		{rows, -3, 537},
	}
	for _, tt := range tests {
		if got := Height(tt.rows, tt.gap); got != tt.want {
			t.Errorf("Height(%d rows, %d) = %d, want %d", len(tt.rows), tt.gap, got, tt.want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions().WithWidth(1200)
	if o.TargetRowHeight != 240 || o.Gap != 8 || o.ContainerWidth != 1200 {
		t.Errorf("DefaultOptions().WithWidth(1200) = %+v", o)
	}
}

func randomPhotos(r *rand.Rand, n int) []photo.Photo {
	photos := make([]photo.Photo, n)
	for i := range photos {
		photos[i] = pic(strconv.Itoa(i), 200+r.IntN(5000), 200+r.IntN(4000))
	}
	return photos
}
