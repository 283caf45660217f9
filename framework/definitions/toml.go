package definitions

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/km-arc/go-beans/framework/beans"
)

func parseTOML(data []byte) ([]beans.Definition, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return doc.definitions(), nil
}
