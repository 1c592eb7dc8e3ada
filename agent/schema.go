package agent

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaFor derives a tool parameter schema from a struct type's json and
// jsonschema_description tags, returning the per-parameter property map
// expected by Tool.Parameters.
//
//	type WeatherArgs struct {
//	    City string `json:"city" jsonschema_description:"City to look up."`
//	}
//	tool := agent.NewTool("get_weather", "Current weather", agent.SchemaFor[WeatherArgs](), run)
func SchemaFor[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(&v)

	raw, err := json.Marshal(schema)
	if err != nil {
		return map[string]interface{}{}
	}
	var full map[string]interface{}
	if err := json.Unmarshal(raw, &full); err != nil {
		return map[string]interface{}{}
	}
	props, ok := full["properties"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return props
}
