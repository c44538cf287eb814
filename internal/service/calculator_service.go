// Package service exposes e calculations behind a small interface with input
// limits and memoisation, for callers that issue many requests such as the
// interactive session.
package service

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agbru/eulercalc/internal/euler"
)

// DefaultCacheSize is the number of expansions kept by NewCalculatorService
// when no size is given.
const DefaultCacheSize = 64

// ErrMaxPlacesExceeded is returned when places exceeds the configured limit.
var ErrMaxPlacesExceeded = errors.New("maximum number of decimal places exceeded")

// Service computes expansions of e.
type Service interface {
	// Calculate returns e to places decimal places with the named algorithm,
	// rounded when round is true.
	Calculate(ctx context.Context, algoName string, places int, round bool) (string, error)
}

// CalculatorProvider resolves algorithm names. euler.CalculatorFactory
// satisfies it.
type CalculatorProvider interface {
	Get(name string) (euler.Calculator, error)
}

type cacheKey struct {
	algo   string
	places int
	round  bool
}

// CalculatorService validates requests, resolves calculators and memoises
// successful results in an LRU cache.
type CalculatorService struct {
	provider  CalculatorProvider
	maxPlaces int
	cache     *lru.Cache[cacheKey, string]
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a service. maxPlaces of 0 means no limit
// beyond the calculators' own; cacheSize of 0 selects DefaultCacheSize.
func NewCalculatorService(provider CalculatorProvider, maxPlaces, cacheSize int) (*CalculatorService, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &CalculatorService{provider: provider, maxPlaces: maxPlaces, cache: cache}, nil
}

// Calculate implements Service. Failed calculations are not cached.
func (s *CalculatorService) Calculate(ctx context.Context, algoName string, places int, round bool) (string, error) {
	if s.maxPlaces > 0 && places > s.maxPlaces {
		return "", fmt.Errorf("%w: %d > %d", ErrMaxPlacesExceeded, places, s.maxPlaces)
	}

	key := cacheKey{algo: algoName, places: places, round: round}
	if result, ok := s.cache.Get(key); ok {
		return result, nil
	}

	calc, err := s.provider.Get(algoName)
	if err != nil {
		return "", err
	}
	result, err := calc.Calculate(ctx, nil, 0, places, euler.Options{Round: round})
	if err != nil {
		return "", err
	}
	s.cache.Add(key, result)
	return result, nil
}

// Cached returns the number of memoised expansions.
func (s *CalculatorService) Cached() int {
	return s.cache.Len()
}

// Purge empties the cache.
func (s *CalculatorService) Purge() {
	s.cache.Purge()
}
