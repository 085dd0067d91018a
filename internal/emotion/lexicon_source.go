package emotion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadLexiconOverride reads modelCacheDir/emotion_lexicon.json, if present,
// and replaces the built-in keyword table it scores text against
// (SPEC_FULL.md §4.2: "MODEL_CACHE_DIR may optionally contain an
// emotion_lexicon.json override; absent that, a built-in table is used").
// The override need not cover every label in Labels -- ClassifyText already
// treats an unscored label as a zero-count entry. A missing file is not an
// error; the built-in table stays in effect.
func LoadLexiconOverride(modelCacheDir string) error {
	if modelCacheDir == "" {
		return nil
	}
	path := filepath.Join(modelCacheDir, "emotion_lexicon.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read lexicon override %s: %w", path, err)
	}

	var override map[string][]string
	if err := json.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parse lexicon override %s: %w", path, err)
	}
	if len(override) == 0 {
		return nil
	}
	lexicon = override
	return nil
}
