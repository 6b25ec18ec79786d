package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestMonitorShutdown(t *testing.T) {
	trigger := make(chan struct{})

	var order []string
	bounded := true
	stopper := func(name string, err error) ShutdownHandler {
		return ShutdownHandler{
			Component: name,
			StopFunc: func(ctx context.Context) error {
				_, ok := ctx.Deadline()
				bounded = bounded && ok
				order = append(order, name)
				return err
			},
		}
	}

	done := MonitorShutdown(trigger,
		stopper("rpc server", xerrors.New("listener already closed")),
		stopper("node", nil),
	)

	select {
	case <-done:
		t.Fatal("shutdown finished before it was triggered")
	case <-time.After(10 * time.Millisecond):
	}

	close(trigger)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown did not finish")
	}

	// the node still stops after the rpc server failed to
	require.Equal(t, []string{"rpc server", "node"}, order)
	require.True(t, bounded, "handlers get a context with a deadline")
}
