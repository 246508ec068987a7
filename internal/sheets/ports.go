package sheets

import (
	"context"

	"waterlog/internal/core"
)

// VolumeAppender is the outbound port for exporting a volume record to
// an external sheet.
type VolumeAppender interface {
	Append(ctx context.Context, v core.Volume) (rowRef string, err error)
}
