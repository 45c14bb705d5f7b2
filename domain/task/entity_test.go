package task

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false, want true", s)
		}
	}
	for _, s := range []Status{"", "done", "Completed"} {
		if s.Valid() {
			t.Errorf("Status(%q).Valid() = true, want false", s)
		}
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities {
		if !p.Valid() {
			t.Errorf("Priority(%q).Valid() = false, want true", p)
		}
	}
	for _, p := range []Priority{"", "urgent", "HIGH"} {
		if p.Valid() {
			t.Errorf("Priority(%q).Valid() = true, want false", p)
		}
	}
}

func TestChangesIsEmpty(t *testing.T) {
	if !(Changes{}).IsEmpty() {
		t.Error("zero Changes should be empty")
	}

	empty := ""
	if (Changes{Category: &empty}).IsEmpty() {
		t.Error("Changes clearing a field should not be empty")
	}

	status := StatusCompleted
	if (Changes{Status: &status}).IsEmpty() {
		t.Error("Changes with a status should not be empty")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name         string
		count, total int64
		want         int64
	}{
		{name: "zero total", count: 0, total: 0, want: 0},
		{name: "half", count: 2, total: 4, want: 50},
		{name: "quarter", count: 1, total: 4, want: 25},
		{name: "one third rounds down", count: 1, total: 3, want: 33},
		{name: "two thirds rounds up", count: 2, total: 3, want: 67},
		{name: "one eighth rounds half up", count: 1, total: 8, want: 13},
		{name: "all", count: 7, total: 7, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.count, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.count, tt.total, got, tt.want)
			}
		})
	}
}
