package reference

import "strings"

// OtherFamily collects colours that have no family
const OtherFamily = "Other"

// ColorFamily is a display group of colours
type ColorFamily struct {
	Family string  `json:"family"`
	Colors []Color `json:"colors"`
}

// GroupColorsByFamily groups colours by family. Families appear in the order
// they are first seen; colours without a family are grouped last under
// OtherFamily. Colour order inside a family is preserved.
func GroupColorsByFamily(colors []Color) []ColorFamily {
	index := make(map[string]int)
	groups := make([]ColorFamily, 0)
	var other []Color

	for _, c := range colors {
		family := strings.TrimSpace(c.Family)
		if family == "" {
			other = append(other, c)
			continue
		}
		key := strings.ToLower(family)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, ColorFamily{Family: family})
		}
		groups[pos].Colors = append(groups[pos].Colors, c)
	}

	if len(other) > 0 {
		if pos, ok := index[strings.ToLower(OtherFamily)]; ok {
			groups[pos].Colors = append(groups[pos].Colors, other...)
		} else {
			groups = append(groups, ColorFamily{Family: OtherFamily, Colors: other})
		}
	}
	return groups
}
