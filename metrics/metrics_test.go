package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/raulk/clock"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"

	"github.com/filebank-network/filebank/build"
)

func TestTimerUsesBuildClock(t *testing.T) {
	mc := clock.NewMock()
	prev := build.Clock
	build.Clock = mc
	defer func() { build.Clock = prev }()

	require.NoError(t, view.Register(OperationDurationView))
	defer view.Unregister(OperationDurationView)

	stop := Timer(context.Background(), OperationDuration)
	mc.Add(1500 * time.Millisecond)
	require.Equal(t, 1500*time.Millisecond, stop())

	rows, err := view.RetrieveData(OperationDuration.Name())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	dist, ok := rows[0].Data.(*view.DistributionData)
	require.True(t, ok)
	require.EqualValues(t, 1, dist.Count)
	require.EqualValues(t, 1500, dist.Mean)
}
