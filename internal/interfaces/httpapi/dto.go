package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	"github.com/riskibarqy/match-goals/internal/usecase"
)

type teamGoalsBatchRequest struct {
	Team      string   `json:"team" validate:"required,max=100"`
	Opponents []string `json:"opponents" validate:"required,min=1,dive,max=100"`
	StartYear int      `json:"start_year" validate:"required,gte=1900"`
}

// TeamGoalsResponse is the wire form of a team goals report. The CLI prints the same shape.
type TeamGoalsResponse struct {
	Team         string             `json:"team"`
	Opponent     string             `json:"opponent,omitempty"`
	StartYear    int                `json:"start_year"`
	GoalsScored  goalsScoredDTO     `json:"goals_scored"`
	HeadToHead   map[string][]int   `json:"head_to_head"`
	Summary      summaryDTO         `json:"summary"`
	Stats        extractionStatsDTO `json:"stats"`
	Source       string             `json:"source"`
	FromSnapshot bool               `json:"from_snapshot"`
	ScrapedAtUTC string             `json:"scraped_at_utc,omitempty"`
}

type goalsScoredDTO struct {
	Goals   []int    `json:"goals"`
	Results []string `json:"results"`
	Home    []int    `json:"home"`
	Away    []int    `json:"away"`
}

type summaryDTO struct {
	Matches      int     `json:"matches"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws"`
	TotalGoals   int     `json:"total_goals"`
	HomeMatches  int     `json:"home_matches"`
	AwayMatches  int     `json:"away_matches"`
	AverageGoals float64 `json:"average_goals"`
}

type extractionStatsDTO struct {
	Blocks             int      `json:"blocks"`
	Accepted           int      `json:"accepted"`
	SkippedMalformed   int      `json:"skipped_malformed"`
	SkippedNotInvolved int      `json:"skipped_not_involved"`
	TruncatedAt        int      `json:"truncated_at"`
	Pages              []string `json:"pages"`
}

type TeamGoalsBatchResponse struct {
	Team  string                  `json:"team"`
	Items []teamGoalsBatchItemDTO `json:"items"`
}

type teamGoalsBatchItemDTO struct {
	Opponent string             `json:"opponent"`
	Report   *TeamGoalsResponse `json:"report,omitempty"`
	Error    *batchItemErrorDTO `json:"error,omitempty"`
}

type batchItemErrorDTO struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// NewTeamGoalsResponse maps a report to its JSON shape. Empty sequences encode as [] rather than null.
func NewTeamGoalsResponse(report usecase.TeamGoalsReport) TeamGoalsResponse {
	results := make([]string, 0, len(report.GoalsScored.Results))
	for _, r := range report.GoalsScored.Results {
		results = append(results, string(r))
	}
	pages := make([]string, 0, len(report.Stats.Pages))
	for _, p := range report.Stats.Pages {
		pages = append(pages, string(p))
	}

	out := TeamGoalsResponse{
		Team:      report.Query.Team,
		Opponent:  report.Query.Opponent,
		StartYear: report.Query.StartYear,
		GoalsScored: goalsScoredDTO{
			Goals:   nonNilInts(report.GoalsScored.Goals),
			Results: results,
			Home:    nonNilInts(report.GoalsScored.Home),
			Away:    nonNilInts(report.GoalsScored.Away),
		},
		HeadToHead: headToHeadToDTO(report.HeadToHead),
		Summary:    summaryToDTO(report.Summary),
		Stats: extractionStatsDTO{
			Blocks:             report.Stats.Blocks,
			Accepted:           report.Stats.Accepted,
			SkippedMalformed:   report.Stats.SkippedMalformed,
			SkippedNotInvolved: report.Stats.SkippedNotInvolved,
			TruncatedAt:        report.Stats.TruncatedAt,
			Pages:              pages,
		},
		Source:       report.Source,
		FromSnapshot: report.FromSnapshot,
	}
	if !report.ScrapedAt.IsZero() {
		out.ScrapedAtUTC = report.ScrapedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func headToHeadToDTO(v matchresult.HeadToHead) map[string][]int {
	out := v.Map()
	for key, goals := range out {
		out[key] = nonNilInts(goals)
	}
	return out
}

func summaryToDTO(v matchresult.Summary) summaryDTO {
	return summaryDTO{
		Matches:      v.Matches,
		Wins:         v.Wins,
		Losses:       v.Losses,
		Draws:        v.Draws,
		TotalGoals:   v.TotalGoals,
		HomeMatches:  v.HomeMatches,
		AwayMatches:  v.AwayMatches,
		AverageGoals: v.AverageGoals,
	}
}

func NewTeamGoalsBatchResponse(ctx context.Context, team string, items []usecase.TeamGoalsBatchItem) TeamGoalsBatchResponse {
	ctx, span := startSpan(ctx, "httpapi.NewTeamGoalsBatchResponse")
	defer span.End()

	out := TeamGoalsBatchResponse{
		Team:  team,
		Items: make([]teamGoalsBatchItemDTO, 0, len(items)),
	}
	for _, item := range items {
		dto := teamGoalsBatchItemDTO{Opponent: item.Opponent}
		if item.Err != nil {
			mapped := mapError(ctx, item.Err)
			dto.Error = &batchItemErrorDTO{
				Code:    mapped.HTTPStatus,
				Status:  mapped.Status,
				Reason:  mapped.Reason,
				Message: item.Err.Error(),
			}
		} else {
			report := NewTeamGoalsResponse(item.Report)
			dto.Report = &report
		}
		out.Items = append(out.Items, dto)
	}
	return out
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
