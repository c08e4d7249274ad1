package pkg

import (
	"net/http"
	"time"
)

// CovidOverview is one region's case count snapshot as reported by the API.
type CovidOverview struct {
	CountryName string `json:"countryName" structs:"countryName"`
	TotalCase   string `json:"totalCase" structs:"totalCase"`
	NewCase     string `json:"newCase" structs:"newCase"`
}

// CityCovidOverview is the full API response: the national aggregate plus
// one overview per administrative region.
type CityCovidOverview struct {
	Korea     CovidOverview `json:"korea"`
	Seoul     CovidOverview `json:"seoul"`
	Busan     CovidOverview `json:"busan"`
	Daegu     CovidOverview `json:"daegu"`
	Incheon   CovidOverview `json:"incheon"`
	Gwangju   CovidOverview `json:"gwangju"`
	Daejeon   CovidOverview `json:"daejeon"`
	Ulsan     CovidOverview `json:"ulsan"`
	Sejong    CovidOverview `json:"sejong"`
	Gyeonggi  CovidOverview `json:"gyeonggi"`
	Chungbuk  CovidOverview `json:"chungbuk"`
	Gyeongbuk CovidOverview `json:"gyeongbuk"`
	Gyeongnam CovidOverview `json:"gyeongnam"`
	Jeju      CovidOverview `json:"jeju"`
}

type Summary struct {
	TotalCase string `json:"totalCase"`
	NewCase   string `json:"newCase"`
}

// ChartEntry is one pie slice. Overview is returned on selection.
type ChartEntry struct {
	Label    string        `json:"label"`
	Value    float64       `json:"value"`
	Overview CovidOverview `json:"overview"`
}

// Dashboard is everything a chart front end renders for one fetch.
type Dashboard struct {
	Title     string       `json:"title"`
	Summary   Summary      `json:"summary"`
	Entries   []ChartEntry `json:"entries"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

type ApiMetadata struct {
	URL             string
	ServiceKeyParam string
	ServiceKey      string
	Timeout         time.Duration
	HTTPClient      *http.Client
}
