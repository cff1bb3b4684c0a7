package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"mazerunner/internal/logger"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingDefault = errors.New("texture manifest has no default texture")
	ErrEmptyTexture   = errors.New("texture has no pixels")
)

// Lookup resolves a map or sprite symbol to a texture. Unknown symbols
// resolve to the default texture, never to nil.
type Lookup interface {
	Texture(tag rune) *Texture
}

// TextureManifest is the assets/textures.yaml layout
type TextureManifest struct {
	Default string                    `yaml:"default"`
	Sets    map[string]TextureSetSpec `yaml:"sets"`
}

// TextureSetSpec groups textures that share a transparency policy
type TextureSetSpec struct {
	Transparency   string                 `yaml:"transparency"` // alpha_key or luminance_mask
	AlphaThreshold *int                   `yaml:"alpha_threshold"`
	ChromaKey      *[3]int                `yaml:"chroma_key"`
	LuminanceLow   int                    `yaml:"luminance_low"`
	LuminanceHigh  int                    `yaml:"luminance_high"`
	Size           int                    `yaml:"size"` // square size textures are scaled to, 0 keeps the source size
	Textures       map[string]TextureSpec `yaml:"textures"`
}

// TextureSpec is either an image file or a procedural pattern
type TextureSpec struct {
	File    string   `yaml:"file"`
	Pattern string   `yaml:"pattern"`
	Colors  [][3]int `yaml:"colors"`
}

// TextureManager owns every texture loaded at startup
type TextureManager struct {
	textures   map[rune]*Texture
	defaultTag rune
}

// NewTextureManager creates a manager holding only the given default texture
func NewTextureManager(def *Texture) *TextureManager {
	return &TextureManager{
		textures:   map[rune]*Texture{def.Tag: def},
		defaultTag: def.Tag,
	}
}

// Add registers a texture, replacing any with the same tag
func (tm *TextureManager) Add(t *Texture) {
	tm.textures[t.Tag] = t
}

// LoadTextureManifest reads a manifest and eagerly loads every texture it
// lists. File paths are relative to the manifest. Any failure is returned.
func LoadTextureManifest(path string) (*TextureManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture manifest: %w", err)
	}

	var manifest TextureManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse texture manifest: %w", err)
	}
	return BuildTextures(manifest, filepath.Dir(path))
}

// BuildTextures loads every texture in a parsed manifest
func BuildTextures(manifest TextureManifest, baseDir string) (*TextureManager, error) {
	defaultTag, err := tagOf(manifest.Default)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDefault, err)
	}

	tm := &TextureManager{
		textures:   make(map[rune]*Texture),
		defaultTag: defaultTag,
	}

	setNames := make([]string, 0, len(manifest.Sets))
	for name := range manifest.Sets {
		setNames = append(setNames, name)
	}
	sort.Strings(setNames)

	for _, setName := range setNames {
		spec := manifest.Sets[setName]
		policy, err := spec.policy()
		if err != nil {
			return nil, fmt.Errorf("texture set %q: %w", setName, err)
		}

		for key, texSpec := range spec.Textures {
			tag, err := tagOf(key)
			if err != nil {
				return nil, fmt.Errorf("texture set %q: %w", setName, err)
			}
			if prev, dup := tm.textures[tag]; dup {
				return nil, fmt.Errorf("texture %q defined in both %q and %q", key, prev.Set, setName)
			}

			img, err := texSpec.load(baseDir, spec.Size)
			if err != nil {
				return nil, fmt.Errorf("texture %q in set %q: %w", key, setName, err)
			}
			tex := NewTexture(tag, img, policy)
			tex.Set = setName
			tm.textures[tag] = tex
		}

		logger.Log.WithFields(logrus.Fields{
			"set":          setName,
			"textures":     len(spec.Textures),
			"transparency": policy.Name(),
		}).Info("texture set loaded")
	}

	if _, ok := tm.textures[defaultTag]; !ok {
		return nil, fmt.Errorf("%w: %q is not defined", ErrMissingDefault, manifest.Default)
	}
	return tm, nil
}

func tagOf(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("texture tag must be one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func (s TextureSetSpec) policy() (TransparencyPolicy, error) {
	switch s.Transparency {
	case "", "alpha_key":
		p := AlphaKey{Threshold: 128, Key: Magenta}
		if s.AlphaThreshold != nil {
			if *s.AlphaThreshold < 0 || *s.AlphaThreshold > 255 {
				return nil, fmt.Errorf("alpha_threshold %d out of range", *s.AlphaThreshold)
			}
			p.Threshold = uint8(*s.AlphaThreshold)
		}
		if s.ChromaKey != nil {
			p.Key = toRGBA(*s.ChromaKey)
		}
		return p, nil
	case "luminance_mask":
		low, high := s.LuminanceLow, s.LuminanceHigh
		if high == 0 {
			low, high = 16, 240
		}
		if low < 0 || high > 255 || low >= high {
			return nil, fmt.Errorf("luminance bounds %d..%d invalid", low, high)
		}
		return LuminanceMask{Low: uint8(low), High: uint8(high)}, nil
	default:
		return nil, fmt.Errorf("unknown transparency policy %q", s.Transparency)
	}
}

func (s TextureSpec) load(baseDir string, size int) (image.Image, error) {
	switch {
	case s.File != "" && s.Pattern != "":
		return nil, errors.New("file and pattern are mutually exclusive")
	case s.Pattern != "":
		if size <= 0 {
			size = 64
		}
		palette := make([]color.RGBA, len(s.Colors))
		for i, c := range s.Colors {
			palette[i] = toRGBA(c)
		}
		return GeneratePattern(s.Pattern, size, palette)
	case s.File != "":
		img, err := decodeFile(filepath.Join(baseDir, s.File))
		if err != nil {
			return nil, err
		}
		if size > 0 && (img.Bounds().Dx() != size || img.Bounds().Dy() != size) {
			scaled := image.NewRGBA(image.Rect(0, 0, size, size))
			xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
			img = scaled
		}
		return img, nil
	default:
		return nil, errors.New("needs a file or a pattern")
	}
}

// decodeFile decodes PNG, BMP or WebP images
func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTexture)
	}
	logger.Log.WithFields(logrus.Fields{
		"file":   path,
		"format": format,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("texture decoded")
	return img, nil
}

func toRGBA(c [3]int) color.RGBA {
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}

// Texture returns the texture for tag, or the default texture
func (tm *TextureManager) Texture(tag rune) *Texture {
	if t, ok := tm.textures[tag]; ok {
		return t
	}
	return tm.textures[tm.defaultTag]
}

// Has reports whether tag has its own texture
func (tm *TextureManager) Has(tag rune) bool {
	_, ok := tm.textures[tag]
	return ok
}

// Size returns the dimensions of the texture for tag
func (tm *TextureManager) Size(tag rune) (w, h int) {
	return tm.Texture(tag).Size()
}

// At samples the texture for tag with clamped coordinates
func (tm *TextureManager) At(tag rune, x, y int) color.RGBA {
	return tm.Texture(tag).At(x, y)
}

// Missing returns the tags among want that would fall back to the default
func (tm *TextureManager) Missing(want []rune) []rune {
	var missing []rune
	for _, tag := range want {
		if !tm.Has(tag) {
			missing = append(missing, tag)
		}
	}
	return missing
}
