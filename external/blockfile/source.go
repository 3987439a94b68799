package blockfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
)

// Source replays match rows recorded on disk. The file holds either a JSON array of row
// texts or an object {"team": ..., "blocks": [...]}.
type Source struct {
	path string
}

type document struct {
	Team   string   `json:"team"`
	Blocks []string `json:"blocks"`
}

func NewSource(path string) *Source {
	return &Source{path: strings.TrimSpace(path)}
}

func (s *Source) FetchMatchBlocks(ctx context.Context, teamName string, _ int) (matchresult.ScrapeResult, error) {
	if err := ctx.Err(); err != nil {
		return matchresult.ScrapeResult{}, err
	}
	if s.path == "" {
		return matchresult.ScrapeResult{}, fmt.Errorf("blocks file path is required")
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return matchresult.ScrapeResult{}, fmt.Errorf("read blocks file: %w", err)
	}

	doc, err := decode(raw)
	if err != nil {
		return matchresult.ScrapeResult{}, fmt.Errorf("decode blocks file %s: %w", s.path, err)
	}
	if doc.Team != "" && !strings.EqualFold(strings.TrimSpace(doc.Team), strings.TrimSpace(teamName)) {
		return matchresult.ScrapeResult{}, fmt.Errorf("%w: blocks file holds %q", matchresult.ErrTeamNotFound, doc.Team)
	}

	blocks := doc.Blocks
	if blocks == nil {
		blocks = []string{}
	}
	return matchresult.ScrapeResult{Blocks: blocks}, nil
}

func decode(raw []byte) (document, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var blocks []string
		if err := sonic.UnmarshalString(trimmed, &blocks); err != nil {
			return document{}, err
		}
		return document{Blocks: blocks}, nil
	}

	var doc document
	if err := sonic.UnmarshalString(trimmed, &doc); err != nil {
		return document{}, err
	}
	return doc, nil
}

// Write stores blocks in the object form so a later replay can check the team.
func Write(path, teamName string, blocks []string) error {
	raw, err := sonic.ConfigStd.MarshalIndent(document{Team: teamName, Blocks: blocks}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blocks file: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write blocks file: %w", err)
	}
	return nil
}
