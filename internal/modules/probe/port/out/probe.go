package out

import (
	"context"

	"sdu/internal/modules/probe/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	CollectSnapshot(ctx context.Context, manifest domain.Manifest) (domain.Snapshot, error)
	SampleLive(ctx context.Context, manifest domain.Manifest) (domain.LiveSample, error)
}
