package configuration

import (
	"encoding/json"
	"strings"

	"github.com/knadh/koanf"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// lowerParser is a koanf.Parser that lower-cases every key of the decoded document.
type lowerParser struct {
	unmarshal func(data []byte, v interface{}) error
	marshal   func(v interface{}) ([]byte, error)
}

func (p *lowerParser) Unmarshal(data []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := p.unmarshal(data, &out); err != nil {
		return nil, err
	}

	return lowerKeys(out), nil
}

func (p *lowerParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return p.marshal(o)
}

var (
	yamlParser = &lowerParser{unmarshal: yaml.Unmarshal, marshal: yaml.Marshal}

	parsersByExtension = map[string]koanf.Parser{
		".json": &lowerParser{unmarshal: json.Unmarshal, marshal: json.Marshal},
		".yaml": yamlParser,
		".yml":  yamlParser,
		".toml": &lowerParser{unmarshal: toml.Unmarshal, marshal: toml.Marshal},
	}
)

func lowerKeys(m map[string]interface{}) map[string]interface{} {
	lowered := make(map[string]interface{}, len(m))
	for key, value := range m {
		switch nested := value.(type) {
		case map[string]interface{}:
			value = lowerKeys(nested)
		case map[interface{}]interface{}:
			// yaml.v2 decodes nested sections with interface keys
			value = lowerKeys(cast.ToStringMap(nested))
		}

		lowered[strings.ToLower(key)] = value
	}

	return lowered
}
