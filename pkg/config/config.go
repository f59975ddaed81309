// Package config loads YAML configuration files with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads a YAML configuration file into out. ${VAR} references in the
// file are expanded, then fields tagged `env:"NAME"` are overridden from the
// environment.
func Load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return ApplyEnv(out)
}

// LoadOrDefault is Load, except that a missing file leaves out untouched
// apart from environment overrides.
func LoadOrDefault(path string, out any) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ApplyEnv(out)
	}
	return Load(path, out)
}

// ApplyEnv sets struct fields from the environment variables named by their
// `env` tags, recursing into nested structs.
func ApplyEnv(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("apply env: expected pointer to struct, got %T", v)
	}
	return applyEnv(val.Elem())
}

func applyEnv(val reflect.Value) error {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := val.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		if fieldVal.Kind() == reflect.Struct {
			if err := applyEnv(fieldVal); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setField(fieldVal, raw); err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
	}
	return nil
}

func setField(v reflect.Value, raw string) error {
	if v.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Bool:
		v.SetBool(strings.EqualFold(raw, "true") || raw == "1")
	default:
		return fmt.Errorf("unsupported field kind %s", v.Kind())
	}
	return nil
}
