package usecase

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/policy"
	"github.com/allisson/panchayath-admin/internal/settings/domain"
)

// cachedSettingUseCase decorates SettingUseCase with a read-through LRU cache
// keyed by setting key. Every successful write invalidates the touched keys,
// so the store remains the single authority and a subsequent read refills the
// cache from it. List always goes to the store.
type cachedSettingUseCase struct {
	next      SettingUseCase
	evaluator *policy.Evaluator
	cache     *lru.Cache[string, *domain.Setting]
}

// NewCachedSettingUseCase wraps a SettingUseCase with an LRU read cache of the
// given size. A non-positive size disables caching and returns next unchanged.
func NewCachedSettingUseCase(
	next SettingUseCase,
	evaluator *policy.Evaluator,
	size int,
) (SettingUseCase, error) {
	if size <= 0 {
		return next, nil
	}

	cache, err := lru.New[string, *domain.Setting](size)
	if err != nil {
		return nil, err
	}
	return &cachedSettingUseCase{
		next:      next,
		evaluator: evaluator,
		cache:     cache,
	}, nil
}

// Get serves from cache when possible. Authorization still runs on every call;
// only the repository read is skipped on a hit.
func (c *cachedSettingUseCase) Get(
	ctx context.Context,
	actor *identityDomain.Admin,
	key string,
) (*domain.Setting, error) {
	if setting, ok := c.cache.Get(key); ok {
		if err := c.evaluator.AuthorizeRead(actor); err != nil {
			return nil, err
		}
		return setting, nil
	}

	setting, err := c.next.Get(ctx, actor, key)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, setting)
	return setting, nil
}

// List always reads through to the store.
func (c *cachedSettingUseCase) List(
	ctx context.Context,
	actor *identityDomain.Admin,
) ([]*domain.Setting, error) {
	return c.next.List(ctx, actor)
}

// Set invalidates the written key after a successful write.
func (c *cachedSettingUseCase) Set(
	ctx context.Context,
	actor *identityDomain.Admin,
	input *domain.SetInput,
) (*domain.Setting, error) {
	setting, err := c.next.Set(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	c.cache.Remove(input.Key)
	return setting, nil
}

// SetAll invalidates every written key after a successful transaction.
func (c *cachedSettingUseCase) SetAll(
	ctx context.Context,
	actor *identityDomain.Admin,
	inputs []*domain.SetInput,
) error {
	if err := c.next.SetAll(ctx, actor, inputs); err != nil {
		return err
	}

	for _, input := range inputs {
		c.cache.Remove(input.Key)
	}
	return nil
}
