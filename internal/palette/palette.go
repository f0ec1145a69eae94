// Package palette resolves the icon and color keys stored on categories into
// display assets. The repository stores keys verbatim; only presentation code
// calls into this package.
package palette

import (
	"regexp"
	"sort"
)

// IconKind is an icon key as stored in categories.icon_name.
type IconKind string

const (
	IconWork     IconKind = "Työ"
	IconSchool   IconKind = "Koulu"
	IconHome     IconKind = "Koti"
	IconHobby    IconKind = "Harrastus"
	IconStar     IconKind = "Tärkeä"
	IconShopping IconKind = "Kauppa"
	IconTravel   IconKind = "Matka"
	IconMoney    IconKind = "Raha"
	IconIdea     IconKind = "Idea"
	IconOther    IconKind = "Muu"
)

// ColorKind is a named palette color as stored in categories.color.
type ColorKind string

const (
	ColorTurquoise ColorKind = "Turkoosi"
	ColorOrange    ColorKind = "Oranssi"
	ColorYellow    ColorKind = "Keltainen"
	ColorGreen     ColorKind = "Vihreä"
	ColorRed       ColorKind = "Punainen"
	ColorBlue      ColorKind = "Sininen"
	ColorViolet    ColorKind = "Violetti"
	ColorGrey      ColorKind = "Harmaa"
)

// DefaultColor is used for keys that resolve to nothing.
const DefaultColor = "#2BBAA5"

// Icon describes how an icon key is drawn by each front end.
type Icon struct {
	Material string `json:"material"`
	Emoji    string `json:"emoji"`
}

var icons = map[IconKind]Icon{
	IconWork:     {Material: "work", Emoji: "💼"},
	IconSchool:   {Material: "school", Emoji: "🎓"},
	IconHome:     {Material: "home", Emoji: "🏠"},
	IconHobby:    {Material: "sports_soccer", Emoji: "⚽"},
	IconStar:     {Material: "star", Emoji: "⭐"},
	IconShopping: {Material: "shopping_cart", Emoji: "🛒"},
	IconTravel:   {Material: "flight", Emoji: "✈️"},
	IconMoney:    {Material: "attach_money", Emoji: "💰"},
	IconIdea:     {Material: "lightbulb", Emoji: "💡"},
	IconOther:    {Material: "circle", Emoji: "⚪"},
}

var colors = map[ColorKind]string{
	ColorTurquoise: "#2BBAA5",
	ColorOrange:    "#F96635",
	ColorYellow:    "#F9A822",
	ColorGreen:     "#93D3AE",
	ColorRed:       "#E57373",
	ColorBlue:      "#64B5F6",
	ColorViolet:    "#BA68C8",
	ColorGrey:      "#90A4AE",
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ResolveIcon looks up an icon key, falling back to the "other" icon.
func ResolveIcon(key string) Icon {
	if icon, ok := icons[IconKind(key)]; ok {
		return icon
	}
	return icons[IconOther]
}

// ResolveColor accepts either a palette name or a raw hex value. Older rows
// store hex directly, newer ones store the palette name.
func ResolveColor(key string) string {
	if hex, ok := colors[ColorKind(key)]; ok {
		return hex
	}
	if hexColor.MatchString(key) {
		return key
	}
	return DefaultColor
}

// IconKeys lists the known icon keys in a stable order.
func IconKeys() []string {
	keys := make([]string, 0, len(icons))
	for k := range icons {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// ColorKeys lists the known color names in a stable order.
func ColorKeys() []string {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
