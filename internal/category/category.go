// Package category maps transaction and activity categories to display icons and colors.
package category

import "strings"

// IconKey names an icon in the presentation layer's icon set
type IconKey string

// ColorToken names a color in the presentation layer's palette
type ColorToken string

// Style is the icon and color pair for a category
type Style struct {
	Icon  IconKey    `json:"icon"`
	Color ColorToken `json:"color"`
}

// Other is the bucket for any category not in the table
const Other = "other"

var otherStyle = Style{Icon: "circle-dollar", Color: "gray"}

var styles = map[string]Style{
	"groceries":     {Icon: "shopping-cart", Color: "green"},
	"dining":        {Icon: "utensils", Color: "orange"},
	"gas":           {Icon: "fuel", Color: "amber"},
	"shopping":      {Icon: "shopping-bag", Color: "pink"},
	"entertainment": {Icon: "film", Color: "purple"},
	"travel":        {Icon: "plane", Color: "sky"},
	"utilities":     {Icon: "zap", Color: "yellow"},
	"healthcare":    {Icon: "heart-pulse", Color: "red"},
	"payment":       {Icon: "credit-card", Color: "emerald"},
}

// Normalize returns the table key for a category, or Other when it is unknown
func Normalize(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if _, ok := styles[key]; ok {
		return key
	}
	return Other
}

// Lookup returns the style for a category; unknown or empty input gets the other style
func Lookup(category string) Style {
	if s, ok := styles[strings.ToLower(strings.TrimSpace(category))]; ok {
		return s
	}
	return otherStyle
}

// IconFor returns the icon key for a category
func IconFor(category string) IconKey {
	return Lookup(category).Icon
}

// ColorFor returns the color token for a category
func ColorFor(category string) ColorToken {
	return Lookup(category).Color
}

// Known lists the recognized category keys
func Known() []string {
	return []string{"groceries", "dining", "gas", "shopping", "entertainment", "travel", "utilities", "healthcare", "payment"}
}
