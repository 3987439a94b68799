package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-goals/external/blockfile"
	"github.com/riskibarqy/match-goals/internal/interfaces/httpapi"
)

var chelseaRows = []string{
	"12.03.2023\nArsenal\nChelsea\n2\n1\nW",
	"04.02.2023\nChelsea\nArsenal\n0\n3\nL",
	"20.01.2023\nArsenal\nFulham\n1\n1\nD",
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SNAPSHOT_STORE", "memory")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
}

func writeRows(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arsenal.json")
	if err := blockfile.Write(path, "Arsenal", chelseaRows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestGoalsCommand_PrintsReport(t *testing.T) {
	setupEnv(t)
	rows := writeRows(t)
	saved := filepath.Join(t.TempDir(), "saved.json")

	out, err := execute(t, "goals", "--team", "Arsenal", "--opponent", "Chelsea", "--start-year", "2020", "--blocks-file", rows, "--save-blocks", saved)
	if err != nil {
		t.Fatalf("goals command: %v", err)
	}

	var report httpapi.TeamGoalsResponse
	if err := sonic.UnmarshalString(out, &report); err != nil {
		t.Fatalf("decode output: %v (out=%s)", err, out)
	}
	if !slices.Equal(report.GoalsScored.Goals, []int{2, 3, 1}) {
		t.Fatalf("unexpected goals: %v", report.GoalsScored.Goals)
	}
	if !slices.Equal(report.HeadToHead["Chelsea"], []int{1, 0}) {
		t.Fatalf("unexpected head-to-head: %v", report.HeadToHead)
	}
	if report.Source != "blockfile" {
		t.Fatalf("unexpected source: %q", report.Source)
	}

	if _, err := os.Stat(saved); err != nil {
		t.Fatalf("expected saved rows file: %v", err)
	}
	replayed, err := blockfile.NewSource(saved).FetchMatchBlocks(context.Background(), "Arsenal", 2020)
	if err != nil {
		t.Fatalf("replay saved rows: %v", err)
	}
	if !slices.Equal(replayed.Blocks, chelseaRows) {
		t.Fatalf("saved rows differ: %q", replayed.Blocks)
	}
}

func TestGoalsCommand_RequiresTeam(t *testing.T) {
	setupEnv(t)

	if _, err := execute(t, "goals", "--start-year", "2020"); err == nil {
		t.Fatalf("expected missing --team to fail")
	}
}

func TestGoalsCommand_InvalidStartYear(t *testing.T) {
	setupEnv(t)
	rows := writeRows(t)

	if _, err := execute(t, "goals", "--team", "Arsenal", "--start-year", "1800", "--blocks-file", rows); err == nil {
		t.Fatalf("expected start year 1800 to fail")
	}
}

func TestBatchCommand_PrintsItemsInOrder(t *testing.T) {
	setupEnv(t)
	rows := writeRows(t)

	out, err := execute(t, "batch", "--team", "Arsenal", "--opponents", "Fulham,Chelsea", "--start-year", "2020", "--blocks-file", rows)
	if err != nil {
		t.Fatalf("batch command: %v", err)
	}

	var resp httpapi.TeamGoalsBatchResponse
	if err := sonic.UnmarshalString(out, &resp); err != nil {
		t.Fatalf("decode output: %v (out=%s)", err, out)
	}
	if len(resp.Items) != 2 || resp.Items[0].Opponent != "Fulham" || resp.Items[1].Opponent != "Chelsea" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
	if resp.Items[1].Report == nil || !slices.Equal(resp.Items[1].Report.HeadToHead["Arsenal"], []int{2, 3}) {
		t.Fatalf("unexpected Chelsea report: %+v", resp.Items[1].Report)
	}
}

func TestMigrateCommand_RequiresVerb(t *testing.T) {
	setupEnv(t)

	if _, err := execute(t, "migrate"); err == nil {
		t.Fatalf("expected migrate without a verb to fail")
	}
}
