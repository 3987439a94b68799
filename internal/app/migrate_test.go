package app

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/match-goals/internal/config"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", want: 1},
		{name: "explicit steps", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSteps(%v) err=%v wantErr=%v", tt.args, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("parseSteps(%v)=%d want=%d", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("1"); err != nil || got != 1 {
		t.Fatalf("parseVersion(1)=%d,%v", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("2"); err != nil || got != 2 {
		t.Fatalf("parseTarget(2)=%d,%v", got, err)
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}

func TestIgnoreNoChange(t *testing.T) {
	logger := logging.NewNop()
	if err := ignoreNoChange(migrate.ErrNoChange, logger); err != nil {
		t.Fatalf("expected ErrNoChange to be ignored, got %v", err)
	}
	boom := errors.New("boom")
	if err := ignoreNoChange(boom, logger); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRunMigration_RequiresDBURL(t *testing.T) {
	if err := RunMigration(config.Config{DBURL: " "}, logging.NewNop(), "up", nil); err == nil {
		t.Fatalf("expected error for empty DB_URL")
	}
}
