package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/structs"
)

const (
	runsCollection      = "Runs"
	overviewsCollection = "CovidOverviews"
	edgesCollection     = "CovidOverviewEdges"
	runsGraph           = "covid-runs-graph"

	runDateLayout = "2006-01-02"
)

// SnapshotRecorder stores one fetched overview under a run key.
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, run, prevRun string, overview *CityCovidOverview) error
}

func RunKeys(t time.Time) (current, previous string) {
	return t.Format(runDateLayout), t.AddDate(0, 0, -1).Format(runDateLayout)
}

func overviewKey(run, region string) string {
	return fmt.Sprintf("%s-%s", run, region)
}

// SnapshotNodes builds one document per region, national aggregate first.
// prevRunNodes are the previous run's documents indexed by region; when a
// region has one, the node carries the total case difference and the id of
// the document it follows.
func SnapshotNodes(
	overview *CityCovidOverview,
	run string,
	prevRunNodes map[string]interface{},
) ([]map[string]interface{}, error) {
	nodes := make([]map[string]interface{}, 0, len(regionTable)+1)
	for _, r := range allRegions() {
		data := *r.field(overview)
		node := structs.Map(data)
		node["_key"] = overviewKey(run, r.key)
		node["region"] = r.key
		node["date"] = run
		node["collection"] = overviewsCollection
		node["totalCaseValue"] = ToNumber(data.TotalCase)
		node["newCaseValue"] = ToNumber(data.NewCase)

		if prevNodeObj, ok := prevRunNodes[r.key]; ok {
			prevNode, ok := prevNodeObj.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("unknown format of previous run node for %s", r.key)
			}
			prevTotal, ok := prevNode["totalCaseValue"].(float64)
			if !ok {
				return nil, fmt.Errorf("previous run node for %s has no totalCaseValue", r.key)
			}
			node["diff"] = node["totalCaseValue"].(float64) - prevTotal
			node["prevOverviewId"] = prevNode["_id"]
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
