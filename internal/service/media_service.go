package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinyyama/harvestx-backend/internal/media"
	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"go.uber.org/zap"
)

// ErrUploadsDisabled is returned when no object storage is configured.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

type MediaService interface {
	UploadOfferImage(ctx context.Context, callerUID string, data []byte) (string, error)
}

type mediaService struct {
	store    repository.Store
	uploader media.Uploader
	opts     Options
}

// NewMediaService accepts a nil uploader; uploads then fail with
// ErrUploadsDisabled.
func NewMediaService(store repository.Store, uploader media.Uploader, opts Options) MediaService {
	return &mediaService{store: store, uploader: uploader, opts: opts.withDefaults()}
}

func (s *mediaService) UploadOfferImage(ctx context.Context, callerUID string, data []byte) (string, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}
	err = s.store.View(ctx, func(tx repository.Tx) error {
		_, err := AuthorizeRole(ctx, tx.Users(), uid, ErrFarmerRequired, model.UserRoleFarmer, model.UserRoleAdmin)
		return err
	})
	if err != nil {
		return "", err
	}
	ct, err := media.Sniff(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	key := media.OfferImageKey(uid, ct)
	url, err := s.uploader.Upload(ctx, media.Object{Key: key, ContentType: ct, Data: data})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.opts.Logger.Info("offer image uploaded", zap.String("uid", uid), zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}
