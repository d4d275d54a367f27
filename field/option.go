package field

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

type aliasOption Option

// UnmarshalJSON accept a bare scalar as sugar for {"value": v, "label": "v"}
func (option *Option) UnmarshalJSON(data []byte) error {
	var alias aliasOption
	if err := jsoniter.Unmarshal(data, &alias); err == nil {
		*option = Option(alias)
		return nil
	}

	var value interface{}
	if err := jsoniter.Unmarshal(data, &value); err != nil {
		return err
	}
	option.Value = value
	option.Label = cast.ToString(value)
	return nil
}
