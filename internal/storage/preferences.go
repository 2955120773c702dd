package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jwebster45206/nights-engine/pkg/session"
)

// Preferences live in a Redis hash, one field per setting.

const (
	fieldSensitivity  = "sensitivity"
	fieldMasterVolume = "master_volume"
	fieldFullscreen   = "fullscreen"
)

func (r *RedisStorage) SavePreferences(ctx context.Context, profile string, p session.Preferences) error {
	p.Clamp()
	key := preferencesKeyPrefix + profile
	err := r.client.HSet(ctx, key,
		fieldSensitivity, strconv.FormatFloat(p.Sensitivity, 'f', -1, 64),
		fieldMasterVolume, strconv.FormatFloat(p.MasterVolume, 'f', -1, 64),
		fieldFullscreen, strconv.FormatBool(p.Fullscreen),
	).Err()
	if err != nil {
		r.logger.Error("Failed to save preferences", "profile", profile, "error", err)
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// LoadPreferences falls back to the default for any missing or unparsable
// field, so a partially written hash still loads.
func (r *RedisStorage) LoadPreferences(ctx context.Context, profile string) (session.Preferences, error) {
	p := session.DefaultPreferences()

	fields, err := r.client.HGetAll(ctx, preferencesKeyPrefix+profile).Result()
	if err != nil {
		r.logger.Error("Failed to load preferences", "profile", profile, "error", err)
		return p, fmt.Errorf("failed to load preferences: %w", err)
	}

	if v, ok := fields[fieldSensitivity]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.Sensitivity = f
		} else {
			r.logger.Warn("Ignoring invalid preference", "profile", profile, "field", fieldSensitivity, "value", v)
		}
	}
	if v, ok := fields[fieldMasterVolume]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.MasterVolume = f
		} else {
			r.logger.Warn("Ignoring invalid preference", "profile", profile, "field", fieldMasterVolume, "value", v)
		}
	}
	if v, ok := fields[fieldFullscreen]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Fullscreen = b
		}
	}

	p.Clamp()
	return p, nil
}
