package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}

	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// A single path element: no separators, not "." or "..".
	_ = validate.RegisterValidation("pathsegment", func(fl validator.FieldLevel) bool {
		return isPathSegment(fl.Field().String())
	})

	err := validate.Struct(cfg)
	if err == nil {
		return validateLayout(cfg.MirrorConfig.Layout)
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// validateLayout rejects layouts where two categories share a subdirectory,
// which would break per-directory name uniqueness.
func validateLayout(layout LayoutConfig) error {
	seen := make(map[string]string, 4)
	for field, dir := range map[string]string{
		"style_dir":  layout.StyleDir,
		"script_dir": layout.ScriptDir,
		"image_dir":  layout.ImageDir,
		"other_dir":  layout.OtherDir,
	} {
		key := strings.ToLower(dir)
		if other, dup := seen[key]; dup {
			return fmt.Errorf("configuration validation failed: layout %s and %s both use %q", other, field, dir)
		}
		seen[key] = field
	}
	return nil
}

func isPathSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && filepath.Base(s) == s
}
