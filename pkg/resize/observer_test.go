package resize

import (
	"reflect"
	"testing"
)

func TestObserver(t *testing.T) {
	tests := []struct {
		name  string
		steps func(o *Observer)
		want  []int
	}{
		{
			name:  "attach fires once",
			steps: func(o *Observer) { o.Attach(800) },
			want:  []int{800},
		},
		{
			name:  "attach zero is silent",
			steps: func(o *Observer) { o.Attach(0) },
			want:  nil,
		},
		{
			name: "height only changes ignored",
			steps: func(o *Observer) {
				o.Attach(800)
				o.Resize(800, 100)
				o.Resize(800, 900)
			},
			want: []int{800},
		},
		{
			name: "width changes fire",
			steps: func(o *Observer) {
				o.Attach(800)
				o.Resize(640, 0)
				o.Resize(640, 0)
				o.Resize(1024, 0)
			},
			want: []int{800, 640, 1024},
		},
		{
			name:  "resize before attach attaches",
			steps: func(o *Observer) { o.Resize(500, 300) },
			want:  []int{500},
		},
		{
			name: "attach twice acts as resize",
			steps: func(o *Observer) {
				o.Attach(500)
				o.Attach(500)
				o.Attach(600)
			},
			want: []int{500, 600},
		},
		{
			name: "stop silences",
			steps: func(o *Observer) {
				o.Attach(500)
				o.Stop()
				o.Stop()
				o.Resize(700, 0)
			},
			want: []int{500},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			o := New(func(w int) { got = append(got, w) })
			tt.steps(o)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("widths = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObserverReady(t *testing.T) {
	ready := false
	var got []int
	o := New(func(w int) { got = append(got, w) }, WithReady(func() bool { return ready }))

	o.Attach(800)
	if len(got) != 0 {
		t.Fatalf("fired before ready: %v", got)
	}
	if o.Width() != 800 {
		t.Errorf("Width() = %d, want 800 recorded while not ready", o.Width())
	}
	ready = true
	o.Resize(900, 0)
	if !reflect.DeepEqual(got, []int{900}) {
		t.Errorf("widths = %v, want [900]", got)
	}
}
