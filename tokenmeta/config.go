package tokenmeta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable extends a provider with mint metadata from a YAML file of the
// form:
//
//	tokens:
//	  <mint-address>:
//	    symbol: BONK
//	    name: Bonk
//	    decimals: 5
func LoadTable(p *StaticProvider, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tokens file: %w", err)
	}

	var file struct {
		Tokens map[string]Metadata `yaml:"tokens"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse tokens YAML: %w", err)
	}

	for mint, md := range file.Tokens {
		if md.Symbol == "" {
			return fmt.Errorf("token %s: symbol is required", mint)
		}
		p.Add(mint, md)
	}
	return nil
}
