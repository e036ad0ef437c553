// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

// readEnv populates spec from environment variables, walking nested
// structs and honoring `env:"NAME"` struct tags. String slices are read as
// comma-separated values.
func readEnv(spec any) error {
	structValue := reflect.ValueOf(spec)
	if structValue.Kind() != reflect.Ptr {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	if structValue.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got a pointer to %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structType := structValue.Type()

	for fieldIndex := 0; fieldIndex < structValue.NumField(); fieldIndex++ {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		if field.Kind() == reflect.Struct && fieldType.Tag.Get("env") == "" {
			if err := readEnv(field.Addr().Interface()); err != nil {
				return err
			}

			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		if err := setField(field, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}

		field.SetBool(value)
	case reflect.Int:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}

		field.SetInt(int64(value))
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return errUnsupportedFieldType
		}

		parts := strings.Split(raw, ",")
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}

		field.Set(reflect.ValueOf(parts))
	default:
		return errUnsupportedFieldType
	}

	return nil
}
