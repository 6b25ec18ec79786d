package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	rpcmetrics "github.com/filecoin-project/go-jsonrpc/metrics"

	"github.com/filebank-network/filebank/build"
)

// Distributions
var defaultMillisecondsDistribution = view.Distribution(
	0.01, 0.05, 0.1, 0.3, 0.6, 0.8, 1, 2, 3, 4, 5, 6, 8,
	10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
	150, 200, 250, 300, 350, 400, 450, 500,
	600, 700, 800, 900, 1000,
	2000, 3000, 4000, 5000, 10000, 20000, 30000,
)

var countDistribution = view.Distribution(0, 1, 2, 3, 5, 7, 10, 15, 25, 35, 50, 70, 90, 130, 200, 300, 500, 1000, 2000, 5000, 10000)

// Tags
var (
	// common
	Version, _  = tag.NewKey("version")
	Commit, _   = tag.NewKey("commit")
	NodeType, _ = tag.NewKey("node_type")
	Network, _  = tag.NewKey("network")
	Nickname, _ = tag.NewKey("nickname")

	// ledger
	Operation, _ = tag.NewKey("operation")
	Result, _    = tag.NewKey("result")
	ExitCode, _  = tag.NewKey("exit_code")
	Kind, _      = tag.NewKey("kind")

	// rpc
	Endpoint, _     = tag.NewKey("endpoint")
	APIInterface, _ = tag.NewKey("api") // to distinguish between gateway api and full node api endpoint calls
)

// Result tag values
const (
	ResultOk     = "ok"
	ResultFailed = "failed"
	ResultFatal  = "fatal"
)

// Measures
var (
	// common
	FilebankInfo = stats.Int64("info", "Arbitrary counter to tag filebank info to", stats.UnitDimensionless)

	// ledger
	OperationCount      = stats.Int64("ledger/operations", "Counter for ledger operations, tagged by result", stats.UnitDimensionless)
	OperationDuration   = stats.Float64("ledger/operation_ms", "Duration of ledger operations", stats.UnitMilliseconds)
	LedgerEpoch         = stats.Int64("ledger/epoch", "Last epoch applied to the ledger", stats.UnitDimensionless)
	SampledTargets      = stats.Int64("sampler/targets", "Number of challenge targets produced per audit round", stats.UnitDimensionless)
	SampleDuration      = stats.Float64("sampler/round_ms", "Duration of audit sampling rounds", stats.UnitMilliseconds)
	SweepRecordsVisited = stats.Int64("sweep/visited", "Quota records visited by the lease sweep", stats.UnitDimensionless)
	SweepPasses         = stats.Int64("sweep/passes", "Completed lease sweep passes", stats.UnitDimensionless)
	LeaseTransitions    = stats.Int64("sweep/transitions", "Quota state transitions made by the lease sweep", stats.UnitDimensionless)

	// api
	APIRequestDuration = stats.Float64("api/request_duration_ms", "Duration of API requests", stats.UnitMilliseconds)
)

var (
	InfoView = &view.View{
		Name:        "info",
		Description: "Filebank node information",
		Measure:     FilebankInfo,
		Aggregation: view.LastValue(),
		TagKeys:     []tag.Key{Version, Commit, NodeType, Network, Nickname},
	}
	OperationCountView = &view.View{
		Measure:     OperationCount,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Operation, Result, ExitCode},
	}
	OperationDurationView = &view.View{
		Measure:     OperationDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Operation},
	}
	LedgerEpochView = &view.View{
		Measure:     LedgerEpoch,
		Aggregation: view.LastValue(),
	}
	SampledTargetsView = &view.View{
		Measure:     SampledTargets,
		Aggregation: countDistribution,
		TagKeys:     []tag.Key{Kind},
	}
	SampleDurationView = &view.View{
		Measure:     SampleDuration,
		Aggregation: defaultMillisecondsDistribution,
	}
	SweepRecordsVisitedView = &view.View{
		Measure:     SweepRecordsVisited,
		Aggregation: view.Sum(),
	}
	SweepPassesView = &view.View{
		Measure:     SweepPasses,
		Aggregation: view.Count(),
	}
	LeaseTransitionsView = &view.View{
		Measure:     LeaseTransitions,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{Result},
	}
	APIRequestDurationView = &view.View{
		Measure:     APIRequestDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Endpoint},
	}
)

// DefaultViews is an array of OpenCensus views for metric gathering purposes
var DefaultViews = append([]*view.View{
	InfoView,
	APIRequestDurationView,
}, rpcmetrics.DefaultViews...)

var LedgerNodeViews = append([]*view.View{
	OperationCountView,
	OperationDurationView,
	LedgerEpochView,
	SampledTargetsView,
	SampleDurationView,
	SweepRecordsVisitedView,
	SweepPassesView,
	LeaseTransitionsView,
}, DefaultViews...)

// SinceInMilliseconds returns the duration of time since the provide time as a float64.
func SinceInMilliseconds(startTime time.Time) float64 {
	return float64(build.Clock.Since(startTime).Milliseconds())
}

// Timer is a function stopwatch, calling it starts the timer,
// calling the returned function will record the duration.
func Timer(ctx context.Context, m *stats.Float64Measure) func() time.Duration {
	start := build.Clock.Now()
	return func() time.Duration {
		stats.Record(ctx, m.M(SinceInMilliseconds(start)))
		return build.Clock.Since(start)
	}
}

func AddNetworkTag(ctx context.Context) context.Context {
	ctx, _ = tag.New(ctx, tag.Upsert(Network, build.NetworkName))
	return ctx
}
