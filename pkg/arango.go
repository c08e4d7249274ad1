package pkg

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/arangodb/go-driver"
	"github.com/arangodb/go-driver/http"
	"github.com/rs/zerolog"

	"golang.org/x/net/context"
)

type ArangoDB struct {
	db     driver.Database
	logger *zerolog.Logger
}

type OverviewEdge struct {
	Key        string `json:"_key"`
	From       string `json:"_from"`
	To         string `json:"_to"`
	Collection string `json:"collection"`
}

// ConnectToArango opens database over HTTPS. arangoCertificate is an
// optional base64 encoded PEM CA bundle.
func ConnectToArango(endpoint, username, password, arangoCertificate, database string, logger *zerolog.Logger) (
	*ArangoDB,
	error,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tlsConfig := &tls.Config{}
	if arangoCertificate != "" {
		caCertificate, err := base64.StdEncoding.DecodeString(arangoCertificate)
		if err != nil {
			return nil, fmt.Errorf("failed decoding certificate: %w", err)
		}
		certpool := x509.NewCertPool()
		if success := certpool.AppendCertsFromPEM(caCertificate); !success {
			return nil, errors.New("invalid certificate")
		}
		tlsConfig.RootCAs = certpool
	}

	conn, err := http.NewConnection(http.ConnectionConfig{
		Endpoints: []string{endpoint},
		TLSConfig: tlsConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating HTTP connection: %w", err)
	}

	c, err := driver.NewClient(driver.ClientConfig{
		Connection:     conn,
		Authentication: driver.BasicAuthentication(username, password),
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating driver connection: %w", err)
	}

	db, err := c.Database(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("failed getting database %q: %w", database, err)
	}

	return &ArangoDB{db: db, logger: logger}, nil
}

// RecordSnapshot stores overview as run, linking it to prevRun when that
// run exists.
func (graph *ArangoDB) RecordSnapshot(
	ctx context.Context,
	run,
	prevRun string,
	overview *CityCovidOverview,
) error {
	prevNodes, err := graph.GetOverviewNodes(ctx, prevRun)
	if err != nil {
		graph.logger.Warn().Err(err).Str("prev_run", prevRun).Msg("Failed to load previous run, recording without diff")
		prevNodes = nil
	}
	prevRunNodes, err := GroupByKey(prevNodes, "region")
	if err != nil {
		return fmt.Errorf("unknown format of previous run nodes: %w", err)
	}

	if err := graph.CreateRunNode(ctx, run); err != nil {
		return fmt.Errorf("failed to create run node: %w", err)
	}
	if len(prevNodes) > 0 {
		if err := graph.CreateEdgeBetweenRuns(ctx, prevRun, run); err != nil {
			return fmt.Errorf("failed to create edge between runs: %w", err)
		}
	}

	nodes, err := SnapshotNodes(overview, run, prevRunNodes)
	if err != nil {
		return err
	}
	return graph.SaveOverviewNodes(ctx, run, nodes)
}

func (graph *ArangoDB) CreateRunNode(
	ctx context.Context,
	run string,
) error {
	cursor, err := graph.db.Query(
		driver.WithQueryCount(ctx),
		"UPSERT { _key: @key } INSERT { _key: @key, createdAt: @createdAt, collection: 'Runs' } UPDATE { updatedAt: @createdAt } IN Runs",
		map[string]interface{}{
			"key":       run,
			"createdAt": time.Now().Unix(),
		},
	)
	if err != nil {
		return err
	}

	return cursor.Close()
}

func (graph *ArangoDB) CreateEdgeBetweenRuns(
	ctx context.Context,
	prevRun,
	run string,
) error {
	return graph.importEdges(ctx, []OverviewEdge{{
		Key:        fmt.Sprintf("run-%s-%s", prevRun, run),
		From:       fmt.Sprintf("%s/%s", runsCollection, prevRun),
		To:         fmt.Sprintf("%s/%s", runsCollection, run),
		Collection: edgesCollection,
	}})
}

// GetOverviewNodes returns the overview documents attached to run.
func (graph *ArangoDB) GetOverviewNodes(
	ctx context.Context,
	run string,
) (overviewNodes []map[string]interface{}, err error) {
	cursor, err := graph.db.Query(
		driver.WithQueryCount(ctx),
		"FOR v IN 1..1 OUTBOUND @run GRAPH @graph FILTER v.collection == @collection RETURN v",
		map[string]interface{}{
			"run":        fmt.Sprintf("%s/%s", runsCollection, run),
			"graph":      runsGraph,
			"collection": overviewsCollection,
		},
	)
	if err != nil {
		return overviewNodes, fmt.Errorf("failed querying database: %w", err)
	}

	defer cursor.Close() // nolint: errcheck

	for {
		var node map[string]interface{}
		_, err := cursor.ReadDocument(ctx, &node)
		if driver.IsNoMoreDocuments(err) {
			break
		} else if err != nil {
			return overviewNodes, fmt.Errorf("failed reading document: %w", err)
		}

		overviewNodes = append(overviewNodes, node)
	}

	return overviewNodes, nil
}

// SaveOverviewNodes writes nodes, replacing any from an earlier record of
// the same run, and links them to the run and to their previous documents.
func (graph *ArangoDB) SaveOverviewNodes(
	ctx context.Context,
	run string,
	nodes []map[string]interface{},
) error {
	col, err := graph.db.Collection(ctx, overviewsCollection)
	if err != nil {
		graph.logger.Err(err).Msg("An error occurred while trying to use CovidOverviews collection")
		return fmt.Errorf("failed getting %q collection: %w", overviewsCollection, err)
	}

	stats, err := col.ImportDocuments(ctx, nodes, &driver.ImportDocumentOptions{
		OnDuplicate: driver.ImportOnDuplicateReplace,
	})
	if err != nil {
		graph.logger.Err(err).Int("overviews", len(nodes)).Msg("An error occurred while trying to save in collection")
		return fmt.Errorf("failed creating overview documents: %w", err)
	}
	if err := importError(overviewsCollection, len(nodes), stats); err != nil {
		graph.logger.Err(err).Msg("Some overviews were not saved")
		return err
	}
	graph.logger.Info().Int("expected", len(nodes)).Int64("created", stats.Created).
		Int64("updated", stats.Updated).Int64("internal_errors", stats.Errors).Msg("Saved overviews successfully")

	edges := make([]OverviewEdge, 0, 2*len(nodes))
	for _, node := range nodes {
		key, _ := node["_key"].(string)
		id := fmt.Sprintf("%s/%s", overviewsCollection, key)
		edges = append(edges, OverviewEdge{
			Key:        key,
			From:       fmt.Sprintf("%s/%s", runsCollection, run),
			To:         id,
			Collection: edgesCollection,
		})
		if prevID, ok := node["prevOverviewId"].(string); ok {
			edges = append(edges, OverviewEdge{
				Key:        "prev-" + key,
				From:       prevID,
				To:         id,
				Collection: edgesCollection,
			})
		}
	}
	return graph.importEdges(ctx, edges)
}

func (graph *ArangoDB) importEdges(ctx context.Context, edges []OverviewEdge) error {
	col, err := graph.db.Collection(ctx, edgesCollection)
	if err != nil {
		graph.logger.Err(err).Msg("An error occurred while trying to use CovidOverviewEdges collection")
		return err
	}

	stats, err := col.ImportDocuments(ctx, edges, &driver.ImportDocumentOptions{
		OnDuplicate: driver.ImportOnDuplicateReplace,
	})
	if err != nil {
		graph.logger.Err(err).Msg("An error occurred while trying to save edges")
		return err
	}
	if err := importError(edgesCollection, len(edges), stats); err != nil {
		graph.logger.Err(err).Msg("Some edges were not saved")
		return err
	}

	graph.logger.Info().Int("expected", len(edges)).Int64("created", stats.Created).
		Int64("internal_errors", stats.Errors).Msg("Saved edges successfully")
	return nil
}

// importError reports documents ImportDocuments skipped; the driver only
// counts them in the statistics.
func importError(collection string, expected int, stats driver.ImportDocumentStatistics) error {
	if stats.Errors > 0 {
		return fmt.Errorf("importing into %s: %d of %d documents failed", collection, stats.Errors, expected)
	}
	return nil
}
