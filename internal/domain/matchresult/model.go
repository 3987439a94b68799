package matchresult

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMalformedBlock = errors.New("malformed match block")
	ErrUnknownOutcome = errors.New("unknown outcome letter")
	// ErrTeamNotFound is returned by a Source when the team search yields nothing.
	ErrTeamNotFound = errors.New("team not found")
)

const MinStartYear = 1900

const (
	SourceFlashscore = "flashscore"
	SourceBlockFile  = "blockfile"
)

// Outcome is the single-letter result shown by the results page, relative to the home team.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
	OutcomeDraw Outcome = "D"
)

type Result string

const (
	ResultWin  Result = "Win"
	ResultLoss Result = "Loss"
	ResultDraw Result = "Draw"
)

func ParseOutcome(letter string) (Outcome, error) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(letter))) {
	case OutcomeWin:
		return OutcomeWin, nil
	case OutcomeLoss:
		return OutcomeLoss, nil
	case OutcomeDraw:
		return OutcomeDraw, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, letter)
	}
}

func (o Outcome) Valid() bool {
	_, ok := o.Result()
	return ok
}

func (o Outcome) Result() (Result, bool) {
	switch o {
	case OutcomeWin:
		return ResultWin, true
	case OutcomeLoss:
		return ResultLoss, true
	case OutcomeDraw:
		return ResultDraw, true
	default:
		return "", false
	}
}

// Reverse returns the same outcome seen from the other side of the match.
func (o Outcome) Reverse() Outcome {
	switch o {
	case OutcomeWin:
		return OutcomeLoss
	case OutcomeLoss:
		return OutcomeWin
	default:
		return o
	}
}

// MatchRecord is one validated match row. SeasonYear is zero when the row's date marker had no year.
type MatchRecord struct {
	SeasonYear int
	HomeTeam   string
	AwayTeam   string
	HomeGoals  int
	AwayGoals  int
	Outcome    Outcome
}

// ResultFor maps the home-relative outcome to the result of the home side, or of the away side
// when asHome is false.
func (r MatchRecord) ResultFor(asHome bool) (Result, bool) {
	if asHome {
		return r.Outcome.Result()
	}
	return r.Outcome.Reverse().Result()
}

// ParsedBlock is a raw row after boundary validation. Record.SeasonYear is set whenever the
// date marker parses, even if Err is non-nil.
type ParsedBlock struct {
	Index  int
	Raw    string
	Record MatchRecord
	Err    error
}

type Query struct {
	Team      string
	Opponent  string
	StartYear int
}

func (q Query) Normalize() Query {
	return Query{
		Team:      strings.TrimSpace(q.Team),
		Opponent:  strings.TrimSpace(q.Opponent),
		StartYear: q.StartYear,
	}
}

func (q Query) Validate(now time.Time) error {
	if q.Team == "" {
		return errors.New("team name is required")
	}
	if q.Opponent != "" && q.Opponent == q.Team {
		return fmt.Errorf("opponent must differ from team %q", q.Team)
	}
	if q.StartYear < MinStartYear || q.StartYear > now.Year() {
		return fmt.Errorf("start year must be between %d and %d, got %d", MinStartYear, now.Year(), q.StartYear)
	}
	return nil
}

type GoalsScored struct {
	Goals   []int
	Results []Result
	Home    []int
	Away    []int
}

func NewGoalsScored() GoalsScored {
	return GoalsScored{
		Goals:   []int{},
		Results: []Result{},
		Home:    []int{},
		Away:    []int{},
	}
}

// HeadToHead holds goals from direct meetings; TeamGoals[i] and OpponentGoals[i] belong to the same match.
type HeadToHead struct {
	Team          string
	Opponent      string
	TeamGoals     []int
	OpponentGoals []int
}

func NewHeadToHead(team, opponent string) HeadToHead {
	return HeadToHead{
		Team:          team,
		Opponent:      opponent,
		TeamGoals:     []int{},
		OpponentGoals: []int{},
	}
}

// Map returns the head-to-head tallies keyed by team name.
func (h HeadToHead) Map() map[string][]int {
	out := map[string][]int{h.Team: h.TeamGoals}
	if h.Opponent != "" {
		out[h.Opponent] = h.OpponentGoals
	}
	return out
}

type RecordStatus string

const (
	RecordAccepted           RecordStatus = "accepted"
	RecordSkippedMalformed   RecordStatus = "skipped_malformed"
	RecordSkippedNotInvolved RecordStatus = "skipped_not_involved"
)

type RecordOutcome struct {
	Index  int
	Status RecordStatus
	Reason string
}

type Summary struct {
	Matches      int
	Wins         int
	Losses       int
	Draws        int
	TotalGoals   int
	HomeMatches  int
	AwayMatches  int
	AverageGoals float64
}

func Summarize(goals GoalsScored) Summary {
	out := Summary{
		Matches:     len(goals.Goals),
		HomeMatches: len(goals.Home),
		AwayMatches: len(goals.Away),
	}
	for _, g := range goals.Goals {
		out.TotalGoals += g
	}
	for _, r := range goals.Results {
		switch r {
		case ResultWin:
			out.Wins++
		case ResultLoss:
			out.Losses++
		case ResultDraw:
			out.Draws++
		}
	}
	if out.Matches > 0 {
		out.AverageGoals = float64(out.TotalGoals) / float64(out.Matches)
	}
	return out
}

type PaginationOutcome string

const (
	PageLoadedMore      PaginationOutcome = "loaded_more"
	PageNoMoreAvailable PaginationOutcome = "no_more_available"
	PageTimedOut        PaginationOutcome = "timed_out"
)

// ScrapeResult is what a Source hands to the extractor, newest match first.
type ScrapeResult struct {
	Blocks []string
	Pages  []PaginationOutcome
}

type Snapshot struct {
	Source      string
	TeamName    string
	StartYear   int
	Blocks      []string
	PayloadHash string
	ScrapedAt   time.Time
}
