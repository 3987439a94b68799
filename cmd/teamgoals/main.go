package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/match-goals/cmd/teamgoals/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
