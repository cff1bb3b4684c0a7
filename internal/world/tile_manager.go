package world

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"mazerunner/internal/config"

	"gopkg.in/yaml.v3"
)

var ErrUnknownSymbol = errors.New("unknown map symbol")

// TileInfo is the resolved legend entry for one map symbol
type TileInfo struct {
	Key    string
	Name   string
	Cell   Cell
	Sprite rune // 0 when the symbol spawns nothing
	AI     bool
}

// TileManager maps map symbols to cells and sprite spawns
type TileManager struct {
	tileData map[string]*config.TileData
	byLetter map[rune]*TileInfo
}

// NewTileManager creates an empty tile manager
func NewTileManager() *TileManager {
	return &TileManager{
		tileData: make(map[string]*config.TileData),
		byLetter: make(map[rune]*TileInfo),
	}
}

// LoadTileConfig loads the tile legend from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}
	return tm.ParseTileConfig(data)
}

// ParseTileConfig loads the tile legend from YAML bytes
func (tm *TileManager) ParseTileConfig(data []byte) error {
	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	tileData := make(map[string]*config.TileData, len(tileConfig.TileData))
	byLetter := make(map[rune]*TileInfo, len(tileConfig.TileData))
	for key, td := range tileConfig.TileData {
		tileCopy := td
		info, err := resolveTile(key, &tileCopy)
		if err != nil {
			return err
		}
		if prev, dup := byLetter[info.Cell.Symbol]; dup {
			return fmt.Errorf("tile %q reuses letter %q of tile %q", key, string(info.Cell.Symbol), prev.Key)
		}
		tileData[key] = &tileCopy
		byLetter[info.Cell.Symbol] = info
	}

	tm.tileData = tileData
	tm.byLetter = byLetter
	return nil
}

func resolveTile(key string, td *config.TileData) (*TileInfo, error) {
	letter, err := singleRune(td.Letter)
	if err != nil {
		return nil, fmt.Errorf("tile %q: letter: %w", key, err)
	}
	kind, err := ParseCellKind(td.Kind)
	if err != nil {
		return nil, fmt.Errorf("tile %q: %w", key, err)
	}

	texture := letter
	if td.Texture != "" {
		if texture, err = singleRune(td.Texture); err != nil {
			return nil, fmt.Errorf("tile %q: texture: %w", key, err)
		}
	}

	info := &TileInfo{
		Key:  key,
		Name: td.Name,
		Cell: Cell{Kind: kind, Symbol: letter, Texture: texture},
		AI:   td.AI,
	}
	if td.Sprite != "" {
		if info.Sprite, err = singleRune(td.Sprite); err != nil {
			return nil, fmt.Errorf("tile %q: sprite: %w", key, err)
		}
		if kind.Solid() {
			return nil, fmt.Errorf("tile %q: sprite spawn on a solid cell", key)
		}
	}
	return info, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Resolve returns the legend entry for a map symbol
func (tm *TileManager) Resolve(letter rune) (*TileInfo, error) {
	info, ok := tm.byLetter[letter]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSymbol, string(letter))
	}
	return info, nil
}

// GetTileDataByKey returns the raw legend data for a key
func (tm *TileManager) GetTileDataByKey(key string) *config.TileData {
	return tm.tileData[key]
}

// Letters returns every known symbol in sorted order
func (tm *TileManager) Letters() []rune {
	letters := make([]rune, 0, len(tm.byLetter))
	for r := range tm.byLetter {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}
