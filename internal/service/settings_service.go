package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glamstore/internal/model"
	"glamstore/internal/repository"
	"glamstore/internal/ws"
)

type SettingsService interface {
	// FeaturedProducts never fails; an unset or unreadable setting yields an
	// empty list.
	FeaturedProducts(ctx context.Context) model.FeaturedProducts
	SetFeaturedProducts(ctx context.Context, ids []string, by *Principal) (*model.FeaturedProducts, error)
	Carousel(ctx context.Context) (*model.Carousel, error)
	SetCarousel(ctx context.Context, images []model.CarouselImage, by *Principal) (*model.Carousel, error)
}

type settingsService struct {
	settings repository.SettingsRepository
	images   ImageStore
	wsHub    Broadcaster
	log      logrus.FieldLogger
}

func NewSettingsService(settings repository.SettingsRepository, images ImageStore, hub Broadcaster, log logrus.FieldLogger) SettingsService {
	return &settingsService{
		settings: settings,
		images:   images,
		wsHub:    broadcasterOrNop(hub),
		log:      log.WithField("service", "settings"),
	}
}

func (s *settingsService) FeaturedProducts(ctx context.Context) model.FeaturedProducts {
	featured, err := loadFeatured(ctx, s.settings)
	if err != nil {
		s.log.WithError(err).Warn("failed to load featured products")
		return model.FeaturedProducts{FeaturedProductIDs: []string{}}
	}
	return featured
}

func (s *settingsService) SetFeaturedProducts(ctx context.Context, ids []string, by *Principal) (*model.FeaturedProducts, error) {
	if ids == nil {
		return nil, invalid("featured_product_ids must be a list")
	}
	featured := &model.FeaturedProducts{
		FeaturedProductIDs: ids,
		UpdatedAt:          time.Now().UTC(),
		UpdatedBy:          by.id(),
	}
	if err := s.put(ctx, model.SettingFeaturedProducts, featured, by); err != nil {
		return nil, err
	}
	s.wsHub.Publish(ws.Event{
		Type: "settings", Action: "featured_updated", Data: featured, User: by.actor(),
		Message: nameOf(by) + " updated featured products",
	})
	return featured, nil
}

func (s *settingsService) Carousel(ctx context.Context) (*model.Carousel, error) {
	carousel := &model.Carousel{Images: []model.CarouselImage{}}
	setting, err := s.settings.Get(ctx, model.SettingCarouselImages)
	if errors.Is(err, repository.ErrNotFound) {
		return carousel, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(setting.Value, carousel); err != nil {
		return nil, errors.Wrap(err, "decode carousel setting")
	}
	if carousel.Images == nil {
		carousel.Images = []model.CarouselImage{}
	}
	return carousel, nil
}

func (s *settingsService) SetCarousel(ctx context.Context, images []model.CarouselImage, by *Principal) (*model.Carousel, error) {
	if images == nil {
		images = []model.CarouselImage{}
	}
	for i := range images {
		if images[i].URL == "" && images[i].CID != "" && s.images != nil {
			images[i].URL = s.images.GatewayURL(images[i].CID)
		}
	}
	carousel := &model.Carousel{Images: images, UpdatedAt: time.Now().UTC(), UpdatedBy: by.id()}
	if err := validate(carousel); err != nil {
		return nil, err
	}
	if err := s.put(ctx, model.SettingCarouselImages, carousel, by); err != nil {
		return nil, err
	}
	return carousel, nil
}

func (s *settingsService) put(ctx context.Context, key string, value interface{}, by *Principal) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s setting", key)
	}
	return s.settings.Put(ctx, &model.Setting{
		Key:       key,
		Value:     raw,
		UpdatedBy: by.id(),
		UpdatedAt: time.Now().UTC(),
	})
}

// loadFeatured reads the featured-products setting. A missing setting is an
// empty list, not an error.
func loadFeatured(ctx context.Context, settings repository.SettingsRepository) (model.FeaturedProducts, error) {
	featured := model.FeaturedProducts{FeaturedProductIDs: []string{}}
	setting, err := settings.Get(ctx, model.SettingFeaturedProducts)
	if errors.Is(err, repository.ErrNotFound) {
		return featured, nil
	}
	if err != nil {
		return featured, err
	}
	if err := json.Unmarshal(setting.Value, &featured); err != nil {
		return model.FeaturedProducts{FeaturedProductIDs: []string{}}, errors.Wrap(err, "decode featured products setting")
	}
	if featured.FeaturedProductIDs == nil {
		featured.FeaturedProductIDs = []string{}
	}
	return featured, nil
}
