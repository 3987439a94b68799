package matchresult

import "fmt"

// Extraction is the outcome of a single pass over match rows.
type Extraction struct {
	Goals      GoalsScored
	HeadToHead HeadToHead
	Records    []RecordOutcome
	// TruncatedAt is the position of the first row older than the start year, or -1.
	TruncatedAt int
}

func (e Extraction) Count(status RecordStatus) int {
	total := 0
	for _, item := range e.Records {
		if item.Status == status {
			total++
		}
	}
	return total
}

// Extract walks rows newest first and stops at the first row dated before the start year.
// Malformed rows and rows not involving the team are skipped; nothing here fails.
func Extract(query Query, blocks []ParsedBlock) Extraction {
	query = query.Normalize()
	out := Extraction{
		Goals:       NewGoalsScored(),
		HeadToHead:  NewHeadToHead(query.Team, query.Opponent),
		Records:     make([]RecordOutcome, 0, len(blocks)),
		TruncatedAt: -1,
	}

	for i, block := range blocks {
		if beforeStartYear(block.Record.SeasonYear, query.StartYear) {
			out.TruncatedAt = i
			break
		}

		if block.Err != nil {
			out.Records = append(out.Records, RecordOutcome{
				Index:  block.Index,
				Status: RecordSkippedMalformed,
				Reason: block.Err.Error(),
			})
			continue
		}

		status, reason := out.apply(query, block.Record)
		out.Records = append(out.Records, RecordOutcome{
			Index:  block.Index,
			Status: status,
			Reason: reason,
		})
	}

	return out
}

// ExtractRecords runs Extract over already validated records.
func ExtractRecords(query Query, records []MatchRecord) Extraction {
	blocks := make([]ParsedBlock, 0, len(records))
	for i, record := range records {
		blocks = append(blocks, ParsedBlock{Index: i, Record: record})
	}
	return Extract(query, blocks)
}

func (e *Extraction) apply(query Query, record MatchRecord) (RecordStatus, string) {
	if !record.Outcome.Valid() {
		return RecordSkippedMalformed, fmt.Sprintf("%v: %q", ErrUnknownOutcome, record.Outcome)
	}
	if record.HomeGoals < 0 || record.AwayGoals < 0 {
		return RecordSkippedMalformed, fmt.Sprintf("%v: negative score", ErrMalformedBlock)
	}

	var (
		scored   int
		conceded int
		isHome   bool
		other    string
	)
	switch {
	case record.HomeTeam == query.Team:
		scored, conceded, isHome, other = record.HomeGoals, record.AwayGoals, true, record.AwayTeam
	case record.AwayTeam == query.Team:
		scored, conceded, isHome, other = record.AwayGoals, record.HomeGoals, false, record.HomeTeam
	default:
		return RecordSkippedNotInvolved, ""
	}

	result, _ := record.ResultFor(isHome)

	e.Goals.Goals = append(e.Goals.Goals, scored)
	if isHome {
		e.Goals.Home = append(e.Goals.Home, scored)
	} else {
		e.Goals.Away = append(e.Goals.Away, scored)
	}
	e.Goals.Results = append(e.Goals.Results, result)

	if query.Opponent != "" && other == query.Opponent {
		e.HeadToHead.TeamGoals = append(e.HeadToHead.TeamGoals, scored)
		e.HeadToHead.OpponentGoals = append(e.HeadToHead.OpponentGoals, conceded)
	}

	return RecordAccepted, ""
}

func beforeStartYear(seasonYear, startYear int) bool {
	return seasonYear > 0 && seasonYear < startYear
}
