package cache

// Keyer builds cache keys.
type Keyer interface {
	// SceneHash fingerprints a scene description; equal scenes hash equal.
	SceneHash(scene any) string
	// ArtifactKey names a rendered artifact of the scene with that hash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    int     `json:"scale,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneHash hashes the JSON encoding of scene.
func (DefaultKeyer) SceneHash(scene any) string {
	return hashKey("scene", scene)
}

// ArtifactKey combines the scene hash with the output options.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
