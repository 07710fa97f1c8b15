package fields

// locale is an immutable per-locale generation context. Only phone numbers
// differ between locales today.
type locale struct {
	code         string
	phoneFormats []string
}

var locales = map[string]locale{
	"en_US": {
		code: "en_US",
		phoneFormats: []string{
			"###-###-####",
			"(###)###-####",
			"###.###.####",
			"+1-###-###-####",
			"###-###-####x###",
		},
	},
	"en_IN": {
		code: "en_IN",
		phoneFormats: []string{
			"+91 ##########",
			"+91 ### ### ####",
			"0##########",
			"9#########",
		},
	},
	"en_GB": {
		code: "en_GB",
		phoneFormats: []string{
			"+44(0)#### ######",
			"0#### ######",
			"07### ######",
		},
	},
}

func (l locale) phone(src Source) string {
	format := l.phoneFormats[src.Number(0, len(l.phoneFormats)-1)]
	return src.Numerify(format)
}
