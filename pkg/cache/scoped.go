package cache

// ScopedKeyer prefixes every key of an inner Keyer. Servers sharing one Redis
// use it to keep their namespaces apart:
//
//	keyer := cache.NewScopedKeyer(nil, "skyline:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SceneHash is not prefixed; only storage keys are.
func (k *ScopedKeyer) SceneHash(scene any) string {
	return k.inner.SceneHash(scene)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
