package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/logger"
)

// Load reads the preference file at path. Missing, unreadable or corrupt
// files are logged and yield empty preferences.
func Load(ctx context.Context, path string) Preferences {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("read preferences", zap.String("path", path), zap.Error(err))
		}
		return Preferences{}
	}

	p, version, err := Decode(data)
	if err != nil {
		log.Warn("decode preferences",
			zap.String("path", path),
			zap.Uint16("version", version),
			zap.Error(err))
		return Preferences{}
	}

	log.Debug("loaded preferences",
		zap.String("path", path),
		zap.Uint16("version", version),
		zap.Int("prefabs", len(p)))

	return p
}

// Save writes p to path in the current version. Failures are logged and
// returned; callers may ignore them.
func Save(ctx context.Context, path string, p Preferences) error {
	log := logger.FromContext(ctx)

	data, err := Encode(p)
	if err != nil {
		log.Warn("encode preferences", zap.String("path", path), zap.Error(err))
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warn("create preferences dir", zap.String("path", path), zap.Error(err))
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Warn("write preferences", zap.String("path", path), zap.Error(err))
		return err
	}

	return nil
}
