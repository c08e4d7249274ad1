package main

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/liavyona/covid-overview/pkg"
)

var source pkg.OverviewSource
var recorder pkg.SnapshotRecorder

func setup() {
	cfg, err := pkg.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	pkg.ConfigureLogger(cfg.LogLevel)
	source = cfg.ApiMetadata()

	if !cfg.HistoryEnabled() {
		log.Info().Msg("ARANGO_ENDPOINT not set, snapshots will not be recorded")
		return
	}
	if err := cfg.ValidateHistory(); err != nil {
		log.Fatal().Err(err).Msg("Incomplete ArangoDB configuration")
	}
	arangoDb, err := pkg.ConnectToArango(
		cfg.ArangoEndpoint,
		cfg.ArangoUsername,
		cfg.ArangoPassword,
		cfg.ArangoCertificate,
		cfg.ArangoDatabase,
		&log.Logger,
	)
	if err != nil {
		log.Fatal().Str("endpoint", cfg.ArangoEndpoint).Err(err).Msg("Error while connecting to arango db")
	}
	recorder = arangoDb
}

func handleRefresh(
	ctx context.Context,
	source pkg.OverviewSource,
	recorder pkg.SnapshotRecorder,
	now time.Time,
) (*pkg.Dashboard, error) {
	overview, err := source.GetCovidOverview(ctx)
	if err != nil {
		log.Err(err).Str("kind", pkg.ErrorKind(err)).Msg("Failed to get covid overview")
		return nil, err
	}
	dashboard := pkg.NewDashboard(overview, now)
	log.Info().Str("total_case", dashboard.Summary.TotalCase).Str("new_case", dashboard.Summary.NewCase).
		Int("entries", len(dashboard.Entries)).Msg("Fetched covid overview")

	if recorder == nil {
		return dashboard, nil
	}
	currentRun, prevRun := pkg.RunKeys(now)
	if err := recorder.RecordSnapshot(ctx, currentRun, prevRun, overview); err != nil {
		log.Err(err).Str("current_run", currentRun).Msg("Failed to record snapshot")
		return nil, errors.New("failed to record snapshot")
	}
	log.Info().Str("current_run", currentRun).Msg("Recorded snapshot")
	return dashboard, nil
}

func refreshCovidOverview(ctx context.Context) (*pkg.Dashboard, error) {
	return handleRefresh(ctx, source, recorder, time.Now())
}

func main() {
	setup()
	lambda.Start(refreshCovidOverview)
}
