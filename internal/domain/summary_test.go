package domain

import "testing"

func TestSummarize(t *testing.T) {
	roadmap := &Roadmap{
		Title: "Go",
		Topics: []Topic{
			{ID: "a"}, {ID: "b"}, {ID: "c"},
		},
	}

	tests := []struct {
		name    string
		setup   func(*ProgressStore)
		want    Summary
		roadmap *Roadmap
	}{
		{
			name:    "nothing stored",
			setup:   func(*ProgressStore) {},
			roadmap: roadmap,
			want:    Summary{Total: 3, Remaining: 3},
		},
		{
			name: "one of three completed rounds to 33",
			setup: func(s *ProgressStore) {
				s.Update("a", ProgressPatch{Status: statusPtr(StatusCompleted)})
				s.Update("b", ProgressPatch{Status: statusPtr(StatusInProgress)})
			},
			roadmap: roadmap,
			want:    Summary{Total: 3, Completed: 1, InProgress: 1, Remaining: 2, Percent: 33},
		},
		{
			name: "two of three completed rounds to 67",
			setup: func(s *ProgressStore) {
				s.Update("a", ProgressPatch{Status: statusPtr(StatusCompleted)})
				s.Update("c", ProgressPatch{Status: statusPtr(StatusCompleted)})
			},
			roadmap: roadmap,
			want:    Summary{Total: 3, Completed: 2, Remaining: 1, Percent: 67},
		},
		{
			name: "orphans ignored",
			setup: func(s *ProgressStore) {
				s.Update("zzz", ProgressPatch{Status: statusPtr(StatusCompleted)})
			},
			roadmap: roadmap,
			want:    Summary{Total: 3, Remaining: 3},
		},
		{
			name:    "empty roadmap",
			setup:   func(*ProgressStore) {},
			roadmap: &Roadmap{Title: "Empty", Topics: []Topic{}},
			want:    Summary{},
		},
		{
			name:    "no roadmap",
			setup:   func(*ProgressStore) {},
			roadmap: nil,
			want:    Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewProgressStore()
			tt.setup(store)

			got := Summarize(tt.roadmap, store)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatDeadline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-01", "01.03.2026"},
		{"2026-12-31T10:00:00Z", "31.12.2026"},
		{"next week", InvalidDate},
		{"2026-13-01", InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatDeadline(tt.in); got != tt.want {
				t.Errorf("FormatDeadline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoadmap_FindTopic(t *testing.T) {
	r := &Roadmap{Topics: []Topic{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}

	topic, ok := r.FindTopic("b")
	if !ok || topic.Title != "B" {
		t.Errorf("expected topic B, got %+v (ok=%v)", topic, ok)
	}
	if _, ok := r.FindTopic("nope"); ok {
		t.Error("expected unknown topic to be missing")
	}

	var nilRoadmap *Roadmap
	if _, ok := nilRoadmap.FindTopic("a"); ok {
		t.Error("nil roadmap must not find topics")
	}
}
