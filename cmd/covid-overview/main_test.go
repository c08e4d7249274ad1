package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liavyona/covid-overview/pkg"
)

type stubSource struct {
	overview *pkg.CityCovidOverview
}

func (s stubSource) GetCovidOverview(ctx context.Context) (*pkg.CityCovidOverview, error) {
	return s.overview, nil
}

func sampleOverview() *pkg.CityCovidOverview {
	return &pkg.CityCovidOverview{
		Korea: pkg.CovidOverview{CountryName: "한국", TotalCase: "1000", NewCase: "50"},
		Seoul: pkg.CovidOverview{CountryName: "서울", TotalCase: "300", NewCase: "10"},
		Jeju:  pkg.CovidOverview{CountryName: "제주", TotalCase: "1,020", NewCase: "2"},
	}
}

func TestPrintDashboard(t *testing.T) {
	var out bytes.Buffer

	err := printDashboard(&out, pkg.NewDashboard(sampleOverview(), time.Now()))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "코로나 발생 현황")
	assert.Contains(t, out.String(), "total: 1000명")
	assert.Contains(t, out.String(), "new:   50명")
	assert.Regexp(t, `0\s+서울\s+10\s+300`, out.String())
	assert.Regexp(t, `12\s+제주\s+2\s+1,020`, out.String())
}

func TestPrintDashboard_AlignsHangulLabels(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printDashboard(&out, pkg.NewDashboard(sampleOverview(), time.Now())))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	var table []string
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			table = lines[i:]
			break
		}
	}
	require.Len(t, table, 14)

	header := table[0]
	newColumn := lipgloss.Width(header[:strings.Index(header, "NEW")])
	totalColumn := lipgloss.Width(header[:strings.Index(header, "TOTAL")])

	seoul := table[1]
	require.True(t, strings.HasPrefix(seoul, "0 "), seoul)
	assert.Equal(t, newColumn, lipgloss.Width(seoul[:strings.Index(seoul, "10")]), "NEW column misaligned: %q", seoul)
	assert.Equal(t, totalColumn, lipgloss.Width(seoul[:strings.Index(seoul, "300")]), "TOTAL column misaligned: %q", seoul)
	for _, line := range table {
		assert.Equal(t, lipgloss.Width(header), lipgloss.Width(line), "row width differs: %q", line)
	}
}

func TestRun_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := fmt.Sprintf("http://%s", listener.Addr().String())

	var wg sync.WaitGroup
	wg.Add(1)

	var runErr error
	go func() {
		defer wg.Done()
		runErr = run(ctx, stubSource{overview: sampleOverview()}, listener)
	}()

	serverIsReady := false
	for i := 0; i < 20; i++ {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			serverIsReady = true
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.True(t, serverIsReady, "Server did not start in time")

	resp, err := http.Get(baseURL + "/overview")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	wg.Wait()

	assert.NoError(t, runErr, "Expected a clean shutdown")
}
