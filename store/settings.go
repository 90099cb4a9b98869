package store

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"novelreader/log"
	"novelreader/model"
)

const settingReading = "reading_settings"

// Settings returns the persisted reading settings. A missing or
// unreadable blob yields the defaults; stored values are re-clamped on
// load so an out-of-range blob cannot leak through.
func (s *Store) Settings() (model.ReadingSettings, error) {
	value, ok, err := s.getSetting(settingReading)
	if err != nil {
		return model.DefaultReadingSettings(), err
	}
	if !ok {
		return model.DefaultReadingSettings(), nil
	}

	var settings model.ReadingSettings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		log.Warn("discarding corrupt reading settings", zap.Error(err))
		return model.DefaultReadingSettings(), nil
	}
	return settings.Clamped(), nil
}

func (s *Store) SetSettings(settings model.ReadingSettings) error {
	value, err := json.Marshal(settings.Clamped())
	if err != nil {
		return errors.Wrap(err, "failed to marshal reading settings")
	}
	return s.setSetting(settingReading, string(value))
}
