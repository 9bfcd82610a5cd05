package services

import "testing"

func TestScheduleLineTotal(t *testing.T) {
	tests := []struct {
		name string
		line ScheduleLine
		want float64
	}{
		{"basic", ScheduleLine{Qty: 180000, UnitPrice: 18.5}, 3330000},
		{"zero qty", ScheduleLine{UnitPrice: 20}, 0},
		{"zero price", ScheduleLine{Qty: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Total(); !floatClose(got, tt.want) {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduleTotal(t *testing.T) {
	lines := []ScheduleLine{
		{Sequence: 1, Qty: 100, UnitPrice: 10},
		{Sequence: 2, Qty: 50, UnitPrice: 20},
		{Sequence: 3, Qty: 0, UnitPrice: 99},
	}
	if got := ScheduleTotal(lines); !floatClose(got, 2000) {
		t.Errorf("ScheduleTotal = %v, want 2000", got)
	}
	if got := ScheduleTotal(nil); got != 0 {
		t.Errorf("ScheduleTotal(nil) = %v, want 0", got)
	}
}

func TestResequence(t *testing.T) {
	lines := []ScheduleLine{
		{Sequence: 1, WorkItem: "a"},
		{Sequence: 3, WorkItem: "b"},
		{Sequence: 7, WorkItem: "c"},
	}
	got := Resequence(lines)
	for i, line := range got {
		if line.Sequence != i+1 {
			t.Errorf("line %d sequence = %d, want %d", i, line.Sequence, i+1)
		}
	}
}

func TestFullySpecified(t *testing.T) {
	if (ScheduleLine{Qty: 1, UnitPrice: 1}).FullySpecified() != true {
		t.Error("filled line should be fully specified")
	}
	if (ScheduleLine{Qty: 1}).FullySpecified() {
		t.Error("missing price should not be fully specified")
	}
	if (ScheduleLine{UnitPrice: 1}).FullySpecified() {
		t.Error("missing qty should not be fully specified")
	}
}
