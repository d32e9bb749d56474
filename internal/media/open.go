package media

import (
	"context"
	"fmt"

	"github.com/shinyyama/harvestx-backend/internal/config"
)

// Open returns the uploader selected by MEDIA_DRIVER, or nil when uploads
// are not configured.
func Open(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.MediaDriver {
	case "":
		return nil, nil
	case config.MediaGCS:
		u, err := NewGCSUploader(ctx, cfg.StorageBucket, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return u, nil
	case config.MediaS3:
		u, err := NewS3Uploader(ctx, S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.StorageBucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unknown media driver %q", cfg.MediaDriver)
	}
}
