package definitions

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/km-arc/go-beans/framework/beans"
)

type xmlDocument struct {
	XMLName  xml.Name     `xml:"beans"`
	Elements []xmlElement `xml:",any"`
}

// xmlElement is either <bean> or <post-processor>.
type xmlElement struct {
	XMLName    xml.Name
	ID         string        `xml:"id,attr"`
	Class      string        `xml:"class,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string  `xml:"name,attr"`
	Value *string `xml:"value,attr"`
	Ref   *string `xml:"ref,attr"`
}

// parseXML decodes the <beans> layout, keeping document order.
func parseXML(data []byte) ([]beans.Definition, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	defs := make([]beans.Definition, 0, len(doc.Elements))
	for i, el := range doc.Elements {
		def := beans.Definition{
			ID:   strings.TrimSpace(el.ID),
			Type: strings.TrimSpace(el.Class),
		}
		switch el.XMLName.Local {
		case "bean":
		case "post-processor":
			def.PostProcessor = true
		default:
			return nil, fmt.Errorf("element[%d]: unexpected <%s>", i, el.XMLName.Local)
		}

		for _, p := range el.Properties {
			switch {
			case p.Value != nil && p.Ref != nil:
				return nil, fmt.Errorf("bean %q property %q: value and ref are exclusive", def.ID, p.Name)
			case p.Value != nil:
				if def.Properties == nil {
					def.Properties = make(map[string]string)
				}
				def.Properties[p.Name] = *p.Value
			case p.Ref != nil:
				if def.Refs == nil {
					def.Refs = make(map[string]string)
				}
				def.Refs[p.Name] = *p.Ref
			default:
				return nil, fmt.Errorf("bean %q property %q: needs value or ref", def.ID, p.Name)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}
