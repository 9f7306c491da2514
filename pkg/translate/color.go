package translate

import (
	"strings"

	"github.com/matzehuels/animaut/pkg/scene"
)

// DefaultColor is used for any color name without a translation.
const DefaultColor = scene.White

var colors = map[string]scene.Color{
	"":          scene.White,
	"white":     scene.White,
	"DimGray":   scene.LightGrey,
	"lightgray": scene.LightGrey,
}

// Color translates a Graphviz color name into a scene color. Unknown names
// resolve to DefaultColor.
func Color(name string) scene.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return DefaultColor
}

var markupEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
	`-`, `{-}`,
	`[`, `{[}`,
	`]`, `{]}`,
	"\n", `\newline{}`,
)

// EscapeMarkup escapes the characters TeX treats specially so a node or edge
// label renders literally.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
