package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shenikar/incident_map/internal/apperr"
	"github.com/shenikar/incident_map/internal/cache"
	"github.com/sirupsen/logrus"
)

// AddressService - кеш адресов по округленным координатам.
// Записи не истекают, только перезаписываются.
type AddressService interface {
	Lookup(ctx context.Context, lat, lon float64) (string, bool, error)
	Remember(ctx context.Context, lat, lon float64, address string) error
}

type addressService struct {
	cache  *cache.Cache[string]
	logger *logrus.Logger
}

func NewAddressService(store cache.Store, logger *logrus.Logger) AddressService {
	return &addressService{
		cache:  cache.New[string](store),
		logger: logger,
	}
}

func (s *addressService) Lookup(ctx context.Context, lat, lon float64) (string, bool, error) {
	if err := checkCoordinates(lat, lon); err != nil {
		return "", false, err
	}
	addr, ok, err := s.cache.Get(ctx, cache.AddressKey(lat, lon))
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "address",
			"method":  "Lookup",
		}).WithError(err).Warn("Failed to read address cache")
		return "", false, fmt.Errorf("service: could not read address cache: %w", err)
	}
	return addr, ok, nil
}

func (s *addressService) Remember(ctx context.Context, lat, lon float64, address string) error {
	if err := checkCoordinates(lat, lon); err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return apperr.Validation("address must not be empty")
	}
	if err := s.cache.Put(ctx, cache.AddressKey(lat, lon), address); err != nil {
		return fmt.Errorf("service: could not write address cache: %w", err)
	}
	return nil
}

func checkCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return apperr.Validation("coordinates out of range")
	}
	return nil
}
