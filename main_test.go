package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liavyona/covid-overview/pkg"
)

// MockSource implements pkg.OverviewSource
type MockSource struct {
	GetCovidOverviewFunc func(ctx context.Context) (*pkg.CityCovidOverview, error)
}

func (m *MockSource) GetCovidOverview(ctx context.Context) (*pkg.CityCovidOverview, error) {
	return m.GetCovidOverviewFunc(ctx)
}

// MockRecorder implements pkg.SnapshotRecorder
type MockRecorder struct {
	RecordSnapshotFunc func(ctx context.Context, run, prevRun string, overview *pkg.CityCovidOverview) error
}

func (m *MockRecorder) RecordSnapshot(ctx context.Context, run, prevRun string, overview *pkg.CityCovidOverview) error {
	return m.RecordSnapshotFunc(ctx, run, prevRun, overview)
}

var runTime = time.Date(2021, 9, 1, 6, 0, 0, 0, time.UTC)

func okSource(overview *pkg.CityCovidOverview) *MockSource {
	return &MockSource{
		GetCovidOverviewFunc: func(ctx context.Context) (*pkg.CityCovidOverview, error) { return overview, nil },
	}
}

func TestHandleRefresh_RecordsSnapshot(t *testing.T) {
	overview := &pkg.CityCovidOverview{Korea: pkg.CovidOverview{CountryName: "한국", TotalCase: "1000", NewCase: "50"}}
	recorded := false
	recorder := &MockRecorder{
		RecordSnapshotFunc: func(ctx context.Context, run, prevRun string, got *pkg.CityCovidOverview) error {
			recorded = true
			assert.Equal(t, "2021-09-01", run)
			assert.Equal(t, "2021-08-31", prevRun)
			assert.Same(t, overview, got)
			return nil
		},
	}

	dashboard, err := handleRefresh(context.Background(), okSource(overview), recorder, runTime)

	require.NoError(t, err)
	assert.True(t, recorded)
	assert.Equal(t, "1000명", dashboard.Summary.TotalCase)
	assert.Len(t, dashboard.Entries, 13)
	assert.Equal(t, runTime, dashboard.FetchedAt)
}

func TestHandleRefresh_WithoutRecorder(t *testing.T) {
	dashboard, err := handleRefresh(context.Background(), okSource(&pkg.CityCovidOverview{}), nil, runTime)

	require.NoError(t, err)
	assert.NotNil(t, dashboard)
}

func TestHandleRefresh_FetchError(t *testing.T) {
	fetchErr := &pkg.TransportError{URL: pkg.DefaultURL, StatusCode: 502}
	source := &MockSource{
		GetCovidOverviewFunc: func(ctx context.Context) (*pkg.CityCovidOverview, error) { return nil, fetchErr },
	}
	recorder := &MockRecorder{
		RecordSnapshotFunc: func(ctx context.Context, run, prevRun string, overview *pkg.CityCovidOverview) error {
			t.Fatal("nothing should be recorded when the fetch fails")
			return nil
		},
	}

	dashboard, err := handleRefresh(context.Background(), source, recorder, runTime)

	assert.Nil(t, dashboard)
	assert.Equal(t, fetchErr, err)
}

func TestHandleRefresh_RecordError(t *testing.T) {
	recorder := &MockRecorder{
		RecordSnapshotFunc: func(ctx context.Context, run, prevRun string, overview *pkg.CityCovidOverview) error {
			return errors.New("arango unavailable")
		},
	}

	dashboard, err := handleRefresh(context.Background(), okSource(&pkg.CityCovidOverview{}), recorder, runTime)

	assert.Nil(t, dashboard)
	assert.EqualError(t, err, "failed to record snapshot")
}
