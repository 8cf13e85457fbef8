package main

import (
	"context"
	"log/slog"

	"recipevault/cmd/recipevault/commands"
	"recipevault/lib/telemetry"
)

func main() {
	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, "recipevault")
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
	} else {
		defer tel.Shutdown(ctx)
	}

	commands.Execute()
}
