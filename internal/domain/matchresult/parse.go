package matchresult

import (
	"fmt"
	"strconv"
	"strings"
)

// A results row renders as: date marker, home team, away team, home goals, away goals,
// optional extras (half-time scores, notes), outcome letter.
const (
	fieldDateMarker = 0
	fieldHomeTeam   = 1
	fieldAwayTeam   = 2
	fieldHomeGoals  = 3
	fieldAwayGoals  = 4
	minBlockFields  = 6
)

// ParseBlock validates one raw row text into a MatchRecord.
func ParseBlock(index int, raw string) ParsedBlock {
	out := ParsedBlock{Index: index, Raw: raw}

	fields := SplitBlockFields(raw)
	if len(fields) > fieldDateMarker {
		out.Record.SeasonYear = ParseSeasonYear(fields[fieldDateMarker])
	}
	if len(fields) < minBlockFields {
		out.Err = fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedBlock, minBlockFields, len(fields))
		return out
	}

	homeGoals, err := parseGoals(fields[fieldHomeGoals])
	if err != nil {
		out.Err = fmt.Errorf("%w: home goals: %v", ErrMalformedBlock, err)
		return out
	}
	awayGoals, err := parseGoals(fields[fieldAwayGoals])
	if err != nil {
		out.Err = fmt.Errorf("%w: away goals: %v", ErrMalformedBlock, err)
		return out
	}

	outcome, err := ParseOutcome(fields[len(fields)-1])
	if err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrMalformedBlock, err)
		return out
	}

	out.Record.HomeTeam = fields[fieldHomeTeam]
	out.Record.AwayTeam = fields[fieldAwayTeam]
	out.Record.HomeGoals = homeGoals
	out.Record.AwayGoals = awayGoals
	out.Record.Outcome = outcome
	return out
}

func ParseBlocks(raws []string) []ParsedBlock {
	out := make([]ParsedBlock, 0, len(raws))
	for i, raw := range raws {
		out = append(out, ParseBlock(i, raw))
	}
	return out
}

// SplitBlockFields splits row text on newlines, trimming each field and dropping blank lines.
func SplitBlockFields(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		item := strings.TrimSpace(line)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ParseSeasonYear reads the trailing four digits of a date marker such as "12.05.2021".
// Markers without a year ("12.05. 20:00") yield zero.
func ParseSeasonYear(marker string) int {
	marker = strings.TrimSpace(marker)
	if len(marker) < 4 {
		return 0
	}
	tail := marker[len(marker)-4:]
	for _, r := range tail {
		if r < '0' || r > '9' {
			return 0
		}
	}
	year, err := strconv.Atoi(tail)
	if err != nil {
		return 0
	}
	return year
}

func parseGoals(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative score: %d", value)
	}
	return value, nil
}
