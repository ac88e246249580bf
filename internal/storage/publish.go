package storage

import (
	"context"
	"fmt"

	"InfiniteBoard/internal/export"
	"InfiniteBoard/internal/state"
)

// Publisher encodes snapshots and hands them to an Uploader.
type Publisher struct {
	Uploader Uploader
	Format   export.Format
	Options  export.Options
}

// Publish encodes snap and uploads it as "<base><ext>" for userID. The canvas is
// never touched, so a failure here leaves drawing unaffected.
func (p Publisher) Publish(ctx context.Context, userID, base string, snap state.Snapshot) (string, error) {
	data, err := export.Encode(snap, p.Format, p.Options)
	if err != nil {
		return "", err
	}
	stored, err := p.Uploader.Upload(ctx, userID, base+p.Format.Ext(), data)
	if err != nil {
		return "", fmt.Errorf("publish: %w", err)
	}
	return stored, nil
}
