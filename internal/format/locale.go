package format

import "golang.org/x/text/language"

type layouts struct {
	date     string
	dateTime string
}

var (
	usLayouts      = layouts{date: "Jan 2, 2006", dateTime: "Jan 2, 2006 3:04 PM"}
	dayFirst       = layouts{date: "2 Jan 2006", dateTime: "2 Jan 2006 15:04"}
	dottedDayFirst = layouts{date: "02.01.2006", dateTime: "02.01.2006 15:04"}
	isoLayouts     = layouts{date: "2006-01-02", dateTime: "2006-01-02 15:04"}
)

var regionLayouts = map[language.Region]layouts{
	language.MustParseRegion("US"): usLayouts,
	language.MustParseRegion("GB"): dayFirst,
	language.MustParseRegion("AU"): dayFirst,
	language.MustParseRegion("IE"): dayFirst,
	language.MustParseRegion("IN"): dayFirst,
}

var baseLayouts = map[string]layouts{
	"en": usLayouts,
	"de": dottedDayFirst,
	"ru": dottedDayFirst,
	"pl": dottedDayFirst,
	"fr": dayFirst,
	"es": dayFirst,
	"it": dayFirst,
	"pt": dayFirst,
}

// Languages that write the currency symbol after the number
var suffixSymbol = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "ru": true,
	"pl": true, "sv": true, "fi": true, "cs": true, "nb": true, "da": true,
}

func layoutsFor(tag language.Tag) layouts {
	if region, conf := tag.Region(); conf >= language.High {
		if l, ok := regionLayouts[region]; ok {
			return l
		}
	}
	base, _ := tag.Base()
	if l, ok := baseLayouts[base.String()]; ok {
		return l
	}
	return isoLayouts
}

func symbolAfterAmount(tag language.Tag) bool {
	base, _ := tag.Base()
	return suffixSymbol[base.String()]
}
