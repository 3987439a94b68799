package matchresult

import (
	"errors"
	"testing"
	"time"
)

func TestParseOutcome(t *testing.T) {
	t.Parallel()

	for letter, want := range map[string]Result{"W": ResultWin, "l": ResultLoss, " D ": ResultDraw} {
		outcome, err := ParseOutcome(letter)
		if err != nil {
			t.Fatalf("ParseOutcome(%q) error: %v", letter, err)
		}
		got, ok := outcome.Result()
		if !ok || got != want {
			t.Fatalf("ParseOutcome(%q).Result()=%q,%v want=%q", letter, got, ok, want)
		}
	}

	if _, err := ParseOutcome("X"); !errors.Is(err, ErrUnknownOutcome) {
		t.Fatalf("expected ErrUnknownOutcome, got %v", err)
	}
}

func TestQueryValidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "valid", query: Query{Team: "A", Opponent: "B", StartYear: 2020}},
		{name: "no opponent", query: Query{Team: "A", StartYear: 2026}},
		{name: "missing team", query: Query{Opponent: "B", StartYear: 2020}, wantErr: true},
		{name: "same team", query: Query{Team: "A", Opponent: "A", StartYear: 2020}, wantErr: true},
		{name: "future year", query: Query{Team: "A", StartYear: 2027}, wantErr: true},
		{name: "ancient year", query: Query{Team: "A", StartYear: 1800}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Normalize().Validate(now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate()=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	got := Summarize(GoalsScored{
		Goals:   []int{2, 0, 1, 3},
		Results: []Result{ResultWin, ResultLoss, ResultDraw, ResultWin},
		Home:    []int{2, 1},
		Away:    []int{0, 3},
	})

	if got.Matches != 4 || got.Wins != 2 || got.Losses != 1 || got.Draws != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.TotalGoals != 6 || got.AverageGoals != 1.5 {
		t.Fatalf("unexpected goal totals: %+v", got)
	}
	if got.HomeMatches != 2 || got.AwayMatches != 2 {
		t.Fatalf("unexpected home/away split: %+v", got)
	}

	if empty := Summarize(NewGoalsScored()); empty.AverageGoals != 0 || empty.Matches != 0 {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}

func TestHeadToHeadMap_NoOpponent(t *testing.T) {
	t.Parallel()

	got := NewHeadToHead("A", "").Map()
	if len(got) != 1 {
		t.Fatalf("expected only the team key, got %v", got)
	}
}

func TestMatchRecord_ResultFor(t *testing.T) {
	tests := []struct {
		outcome Outcome
		asHome  bool
		want    Result
	}{
		{outcome: OutcomeWin, asHome: true, want: ResultWin},
		{outcome: OutcomeWin, asHome: false, want: ResultLoss},
		{outcome: OutcomeLoss, asHome: true, want: ResultLoss},
		{outcome: OutcomeLoss, asHome: false, want: ResultWin},
		{outcome: OutcomeDraw, asHome: true, want: ResultDraw},
		{outcome: OutcomeDraw, asHome: false, want: ResultDraw},
	}

	for _, tt := range tests {
		got, ok := MatchRecord{Outcome: tt.outcome}.ResultFor(tt.asHome)
		if !ok || got != tt.want {
			t.Fatalf("ResultFor(%s, home=%v)=%q,%v want=%q", tt.outcome, tt.asHome, got, ok, tt.want)
		}
	}

	if _, ok := (MatchRecord{Outcome: Outcome("P")}).ResultFor(false); ok {
		t.Fatalf("expected unknown outcome to have no result")
	}
}
