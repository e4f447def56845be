package main

import (
	"context"
	"log/slog"
	"os"

	"collegeatlas-backend/lib/restyutil"
	"collegeatlas-backend/lib/serviceutil"
	"collegeatlas-backend/lib/telemetry"
	"collegeatlas-backend/services/colleges"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	t, err := telemetry.SetupFromEnv(ctx, "server")
	if os.IsNotExist(err) {
		slog.Info("no telemetry.json5 found, exporters disabled")
	} else if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		t.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}
	colleges.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput("dev_state/resty_telemetry/colleges"),
	)
}
