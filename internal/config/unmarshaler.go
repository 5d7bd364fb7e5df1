package config

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/vocal-dev/vocal/pkg/config"
)

// listSeparator splits list values given as one string, as env vars are.
const listSeparator = ","

// CustomDecoderConfig returns a mapstructure decoder config with custom type hooks
// for handling Duration and ByteSize types.
func CustomDecoderConfig() *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToDurationHookFunc(),
			stringToByteSizeHookFunc(),
			mapstructure.StringToSliceHookFunc(listSeparator),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		TagName:          "koanf",
		Result:           nil, // Set by caller
	}
}

// stringToDurationHookFunc returns a decode hook for converting strings to config.Duration.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		_ reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if t != reflect.TypeFor[config.Duration]() {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			var d config.Duration
			if err := d.UnmarshalText([]byte(v)); err != nil {
				return nil, err
			}

			return d, nil

		case int64:
			return config.Duration(time.Duration(v)), nil

		case float64:
			return config.Duration(time.Duration(v)), nil

		default:
			return data, nil
		}
	}
}

// stringToByteSizeHookFunc returns a decode hook for converting humanized
// sizes to config.ByteSize.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func stringToByteSizeHookFunc() mapstructure.DecodeHookFunc {
	return func(
		_ reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if t != reflect.TypeFor[config.ByteSize]() {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return config.ParseByteSize(v)

		case int64:
			if v < 0 {
				return nil, config.ErrInvalidByteSize
			}

			return config.ByteSize(v), nil

		case int:
			if v < 0 {
				return nil, config.ErrInvalidByteSize
			}

			return config.ByteSize(v), nil

		default:
			return data, nil
		}
	}
}
