package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

var errNoEventLog = errors.New("this store keeps no event log; use --store sqlite")

// openEvents opens the configured backend and returns its event log.
func openEvents(ctx context.Context, cmd *cobra.Command) (*store.Backend, store.EventRepo, error) {
	b, err := openBackend(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	if b.Events == nil {
		b.Close()
		return nil, nil, errNoEventLog
	}
	return b, b.Events, nil
}
