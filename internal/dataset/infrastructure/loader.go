package infrastructure

import (
	"ecomdash/internal/dataset/domain"
	sharedinfra "ecomdash/internal/shared/infrastructure"
)

// Source abstraction d'une origine de dataset (fichier CSV, table PostgreSQL)
type Source interface {
	// Identity identifie la source; sert de clé de memoïsation
	Identity() string
	// Load parse la source entière en un Dataset immuable
	Load() (*domain.Dataset, error)
}

// CachedLoader memoïse le chargement du dataset par identité de source
// Le parsing est la seule opération coûteuse du pipeline: chaque changement de
// filtre recalcule les agrégations mais ne re-parse jamais l'entrée.
// L'invalidation n'a lieu que si la source change d'identité (ou explicitement)
type CachedLoader struct {
	cache sharedinfra.Cache
}

// NewCachedLoader crée un loader memoïsé
func NewCachedLoader(cache sharedinfra.Cache) *CachedLoader {
	return &CachedLoader{cache: cache}
}

// Load retourne le dataset memoïsé, en le chargeant au premier appel
func (l *CachedLoader) Load(src Source) (*domain.Dataset, error) {
	key := cacheKey(src)
	if cached, found := l.cache.Get(key); found {
		return cached.(*domain.Dataset), nil
	}

	ds, err := src.Load()
	if err != nil {
		return nil, err
	}

	l.cache.Set(key, ds, sharedinfra.NoExpiration)
	return ds, nil
}

// Invalidate oublie le dataset memoïsé d'une source
func (l *CachedLoader) Invalidate(src Source) {
	l.cache.Delete(cacheKey(src))
}

func cacheKey(src Source) string {
	return sharedinfra.NewCacheKeyBuilder().Add("dataset").Add(src.Identity()).Build()
}
