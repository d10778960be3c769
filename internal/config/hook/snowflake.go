package hook

import (
	"reflect"

	"github.com/mitchellh/mapstructure"

	"pkg.frost.gg/frostline/model"
)

var (
	snowflakeType = reflect.TypeOf(model.Snowflake(0))
)

// Snowflake decodes numeric-string Snowflake IDs, the form Discord wire
// payloads and config files carry them in.
func Snowflake() mapstructure.DecodeHookFuncType {
	return func(in reflect.Type, out reflect.Type, val interface{}) (interface{}, error) {
		if in.Kind() == reflect.String && out == snowflakeType {
			return model.ParseSnowflake(val.(string))
		}
		return val, nil
	}
}
