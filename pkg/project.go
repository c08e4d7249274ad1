package pkg

import (
	"fmt"
	"time"
)

const (
	// ChartTitle labels the pie chart data set.
	ChartTitle = "코로나 발생 현황"
	caseUnit   = "명"
)

// Project flattens overview into the region overviews in chart order. The
// national aggregate is not included.
func Project(overview *CityCovidOverview) []CovidOverview {
	list := make([]CovidOverview, 0, len(regionTable))
	for _, r := range regionTable {
		list = append(list, *r.field(overview))
	}
	return list
}

func SummaryOf(korea CovidOverview) Summary {
	return Summary{
		TotalCase: korea.TotalCase + caseUnit,
		NewCase:   korea.NewCase + caseUnit,
	}
}

// ChartEntries builds one slice per overview, sized by its new cases.
func ChartEntries(list []CovidOverview) []ChartEntry {
	entries := make([]ChartEntry, 0, len(list))
	for _, overview := range list {
		entries = append(entries, ChartEntry{
			Label:    overview.CountryName,
			Value:    ToNumber(overview.NewCase),
			Overview: overview,
		})
	}
	return entries
}

func NewDashboard(overview *CityCovidOverview, fetchedAt time.Time) *Dashboard {
	return &Dashboard{
		Title:     ChartTitle,
		Summary:   SummaryOf(overview.Korea),
		Entries:   ChartEntries(Project(overview)),
		FetchedAt: fetchedAt,
	}
}

// Select returns the record behind the chart entry at index.
func (d *Dashboard) Select(index int) (CovidOverview, error) {
	if index < 0 || index >= len(d.Entries) {
		return CovidOverview{}, fmt.Errorf("%w: %d", ErrNoSelection, index)
	}
	return d.Entries[index].Overview, nil
}
