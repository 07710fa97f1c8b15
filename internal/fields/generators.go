package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Generator references available to catalog entries.
const (
	GenFirstName         GeneratorRef = "first_name"
	GenLastName          GeneratorRef = "last_name"
	GenName              GeneratorRef = "name"
	GenUserName          GeneratorRef = "user_name"
	GenRandomElement     GeneratorRef = "random_element"
	GenEmail             GeneratorRef = "email"
	GenSafeEmail         GeneratorRef = "safe_email"
	GenPhoneNumber       GeneratorRef = "phone_number"
	GenDateOfBirth       GeneratorRef = "date_of_birth"
	GenRandomInt         GeneratorRef = "random_int"
	GenDateTimeThisYear  GeneratorRef = "date_time_this_year"
	GenDateTimeThisMonth GeneratorRef = "date_time_this_month"
	GenUUID4             GeneratorRef = "uuid4"
	GenBoolean           GeneratorRef = "boolean"
	GenSentence          GeneratorRef = "sentence"
	GenParagraph         GeneratorRef = "paragraph"
	GenText              GeneratorRef = "text"
	GenIPv4              GeneratorRef = "ipv4"
	GenIPv6              GeneratorRef = "ipv6"
	GenMacAddress        GeneratorRef = "mac_address"
	GenCity              GeneratorRef = "city"
	GenState             GeneratorRef = "state"
	GenCountry           GeneratorRef = "country"
	GenPostcode          GeneratorRef = "postcode"
	GenLatitude          GeneratorRef = "latitude"
	GenLongitude         GeneratorRef = "longitude"
	GenURL               GeneratorRef = "url"
	GenURI               GeneratorRef = "uri"
	GenURIPath           GeneratorRef = "uri_path"
	GenUserAgent         GeneratorRef = "user_agent"
	GenFileName          GeneratorRef = "file_name"
	GenFilePath          GeneratorRef = "file_path"
	GenPyFloat           GeneratorRef = "pyfloat"
	GenPassword          GeneratorRef = "password"
	GenSHA256            GeneratorRef = "sha256"
	GenCompany           GeneratorRef = "company"
	GenJob               GeneratorRef = "job"
	GenImageURL          GeneratorRef = "image_url"
	GenUnixTime          GeneratorRef = "unix_time"
	GenStreetAddress     GeneratorRef = "street_address"
	GenTimezone          GeneratorRef = "timezone"
	GenCurrencyCode      GeneratorRef = "currency_code"
	GenBBAN              GeneratorRef = "bban"
	GenIBAN              GeneratorRef = "iban"
	GenHexColor          GeneratorRef = "hex_color"
	GenEmoji             GeneratorRef = "emoji"
	GenSlug              GeneratorRef = "slug"
	GenBothify           GeneratorRef = "bothify"
)

// genContext is what a generator sees for one call.
type genContext struct {
	src    Source
	locale *locale
	now    time.Time
}

// generator is one entry of the dispatch table. params lists every argument
// name the generator accepts; check runs semantic validation on bound args.
// gen must not fail once args passed bind.
type generator struct {
	params []param
	check  func(args) error
	gen    func(c *genContext, a args) any
}

// calendarDate marks a date-only value; it renders as YYYY-MM-DD.
type calendarDate time.Time

func simple(fn func(Source) any) generator {
	return generator{gen: func(c *genContext, _ args) any { return fn(c.src) }}
}

var generators = map[GeneratorRef]generator{
	GenFirstName:     simple(func(s Source) any { return s.FirstName() }),
	GenLastName:      simple(func(s Source) any { return s.LastName() }),
	GenName:          simple(func(s Source) any { return s.Name() }),
	GenUserName:      simple(func(s Source) any { return s.Username() }),
	GenUUID4:         simple(func(s Source) any { return s.UUID() }),
	GenIPv4:          simple(func(s Source) any { return s.IPv4Address() }),
	GenIPv6:          simple(func(s Source) any { return s.IPv6Address() }),
	GenMacAddress:    simple(func(s Source) any { return s.MacAddress() }),
	GenCity:          simple(func(s Source) any { return s.City() }),
	GenState:         simple(func(s Source) any { return s.State() }),
	GenCountry:       simple(func(s Source) any { return s.Country() }),
	GenPostcode:      simple(func(s Source) any { return s.Zip() }),
	GenLatitude:      simple(func(s Source) any { return round(s.Latitude(), 6) }),
	GenLongitude:     simple(func(s Source) any { return round(s.Longitude(), 6) }),
	GenURL:           simple(func(s Source) any { return s.URL() }),
	GenUserAgent:     simple(func(s Source) any { return s.UserAgent() }),
	GenCompany:       simple(func(s Source) any { return s.Company() }),
	GenJob:           simple(func(s Source) any { return s.JobTitle() }),
	GenStreetAddress: simple(func(s Source) any { return s.Street() }),
	GenTimezone:      simple(func(s Source) any { return s.TimeZoneRegion() }),
	GenCurrencyCode:  simple(func(s Source) any { return s.CurrencyShort() }),
	GenHexColor:      simple(func(s Source) any { return s.HexColor() }),
	GenEmoji:         simple(func(s Source) any { return s.Emoji() }),
	GenSHA256:        simple(func(s Source) any { return hexString(s, 64) }),
	GenBBAN:          simple(func(s Source) any { return bban(s) }),
	GenIBAN:          simple(func(s Source) any { return iban(s) }),
	GenSafeEmail: simple(func(s Source) any {
		tlds := []string{"org", "com", "net"}
		return s.Username() + "@example." + tlds[s.Number(0, len(tlds)-1)]
	}),
	GenSlug: simple(func(s Source) any {
		return strings.ToLower(strings.Join(words(s, 3), "-"))
	}),
	GenURI: simple(func(s Source) any {
		exts := []string{".html", ".htm", ".php", ".jsp", ".asp"}
		return strings.TrimRight(s.URL(), "/") + "/" + s.LoremIpsumWord() + exts[s.Number(0, len(exts)-1)]
	}),

	GenEmail: {
		params: []param{{"domain", paramText}},
		gen: func(c *genContext, a args) any {
			if domain := normalizeDomain(a.textArg("domain", "")); domain != "" {
				return c.src.Username() + "@" + domain
			}
			return c.src.Email()
		},
	},
	GenPhoneNumber: {
		gen: func(c *genContext, _ args) any {
			if c.locale != nil {
				return c.locale.phone(c.src)
			}
			return c.src.Phone()
		},
	},
	GenRandomElement: {
		params: []param{{"elements", paramList}},
		check: func(a args) error {
			if l, ok := a["elements"]; ok && len(l.([]any)) == 0 {
				return invalidConstraint("elements", "must not be empty")
			}
			return nil
		},
		gen: func(c *genContext, a args) any {
			elements := a.listArg("elements", []any{"a", "b", "c"})
			return elements[c.src.Number(0, len(elements)-1)]
		},
	},
	GenRandomInt: {
		params: []param{{"min", paramInt}, {"max", paramInt}, {"step", paramInt}},
		check: func(a args) error {
			lo, hi := a.intRange("min", "max", 0, 9999)
			if lo < -maxIntArg || hi > maxIntArg {
				return invalidConstraint("max", fmt.Sprintf("bounds must be within ±%d", maxIntArg))
			}
			if lo > hi {
				return invalidConstraint("min", "must not be greater than max")
			}
			if a.intArg("step", 1) < 1 {
				return invalidConstraint("step", "must be at least 1")
			}
			return nil
		},
		gen: func(c *genContext, a args) any {
			lo, hi := a.intRange("min", "max", 0, 9999)
			step := a.intArg("step", 1)
			return lo + step*c.src.Number(0, (hi-lo)/step)
		},
	},
	GenPyFloat: {
		params: []param{{"min_value", paramFloat}, {"max_value", paramFloat}, {"right_digits", paramInt}},
		check: func(a args) error {
			if lo, hi := a.floatRange("min_value", "max_value", 0, 10000); lo > hi {
				return invalidConstraint("min_value", "must not be greater than max_value")
			}
			if d := a.intArg("right_digits", 2); d < 0 || d > 10 {
				return invalidConstraint("right_digits", "must be between 0 and 10")
			}
			return nil
		},
		gen: func(c *genContext, a args) any {
			lo, hi := a.floatRange("min_value", "max_value", 0, 10000)
			v := round(c.src.Float64Range(lo, hi), a.intArg("right_digits", 2))
			return math.Min(math.Max(v, lo), hi)
		},
	},
	GenBoolean: {
		params: []param{{"chance_of_getting_true", paramInt}},
		check: func(a args) error {
			if p := a.intArg("chance_of_getting_true", 50); p < 0 || p > 100 {
				return invalidConstraint("chance_of_getting_true", "must be between 0 and 100")
			}
			return nil
		},
		gen: func(c *genContext, a args) any {
			return c.src.Number(1, 100) <= a.intArg("chance_of_getting_true", 50)
		},
	},
	GenDateOfBirth: {
		params: []param{{"min_age", paramInt}, {"max_age", paramInt}},
		check: func(a args) error {
			lo, hi := a.ageRange()
			if lo < 0 || hi > maxAge {
				return invalidConstraint("max_age", fmt.Sprintf("ages must be between 0 and %d", maxAge))
			}
			if lo > hi {
				return invalidConstraint("min_age", "must not be greater than max_age")
			}
			return nil
		},
		gen: func(c *genContext, a args) any {
			return dateOfBirth(c, a.ageRange())
		},
	},
	GenDateTimeThisYear: {
		gen: func(c *genContext, _ args) any {
			start := time.Date(c.now.Year(), time.January, 1, 0, 0, 0, 0, c.now.Location())
			return between(c.src, start, c.now)
		},
	},
	GenDateTimeThisMonth: {
		gen: func(c *genContext, _ args) any {
			start := time.Date(c.now.Year(), c.now.Month(), 1, 0, 0, 0, 0, c.now.Location())
			return between(c.src, start, c.now)
		},
	},
	GenUnixTime: {
		gen: func(c *genContext, _ args) any {
			return int64(c.src.Number(0, int(c.now.Unix())))
		},
	},
	GenSentence: {
		params: []param{{"nb_words", paramInt}},
		check:  rangeCheck("nb_words", 6, 0, 200),
		gen: func(c *genContext, a args) any {
			return sentence(c.src, a.intArg("nb_words", 6))
		},
	},
	GenParagraph: {
		params: []param{{"nb_sentences", paramInt}},
		check:  rangeCheck("nb_sentences", 3, 0, 50),
		gen: func(c *genContext, a args) any {
			n := a.intArg("nb_sentences", 3)
			sentences := make([]string, n)
			for i := range sentences {
				sentences[i] = sentence(c.src, c.src.Number(4, 10))
			}
			return strings.Join(sentences, " ")
		},
	},
	GenText: {
		params: []param{{"max_nb_chars", paramInt}},
		check:  rangeCheck("max_nb_chars", 200, 5, 10000),
		gen: func(c *genContext, a args) any {
			return text(c.src, a.intArg("max_nb_chars", 200))
		},
	},
	GenPassword: {
		params: []param{{"length", paramInt}},
		check:  rangeCheck("length", 10, 1, 256),
		gen: func(c *genContext, a args) any {
			n := a.intArg("length", 10)
			pw := []rune(c.src.Password(true, true, true, true, false, n))
			if len(pw) > n {
				pw = pw[:n]
			}
			return string(pw)
		},
	},
	GenURIPath: {
		params: []param{{"deep", paramInt}},
		check:  rangeCheck("deep", 1, 1, 10),
		gen: func(c *genContext, a args) any {
			deep := a.intArg("deep", 0)
			if deep == 0 {
				deep = c.src.Number(1, 3)
			}
			return strings.ToLower(strings.Join(words(c.src, deep), "/"))
		},
	},
	GenFileName: {
		params: []param{{"extension", paramText}},
		gen: func(c *genContext, a args) any {
			return fileName(c.src, a.textArg("extension", ""))
		},
	},
	GenFilePath: {
		params: []param{{"depth", paramInt}, {"extension", paramText}},
		check:  rangeCheck("depth", 1, 1, 10),
		gen: func(c *genContext, a args) any {
			dirs := words(c.src, a.intArg("depth", 1))
			return "/" + strings.ToLower(strings.Join(dirs, "/")) + "/" + fileName(c.src, a.textArg("extension", ""))
		},
	},
	GenImageURL: {
		params: []param{{"width", paramInt}, {"height", paramInt}},
		check: func(a args) error {
			for _, name := range []string{"width", "height"} {
				if err := rangeCheck(name, 1, 1, 4096)(a); err != nil {
					return err
				}
			}
			return nil
		},
		gen: func(c *genContext, a args) any {
			w, h := a.intArg("width", 0), a.intArg("height", 0)
			if w == 0 {
				w = c.src.Number(1, 1024)
			}
			if h == 0 {
				h = c.src.Number(1, 1024)
			}
			return fmt.Sprintf("https://picsum.photos/%d/%d", w, h)
		},
	},
	GenBothify: {
		params: []param{{"text", paramText}},
		gen: func(c *genContext, a args) any {
			return c.src.Numerify(c.src.Lexify(a.textArg("text", "## ??")))
		},
	},
}

const (
	defaultMinAge = 18
	defaultMaxAge = 90
	maxAge        = 150

	maxIntArg = 1 << 53
)

func rangeCheck(name string, def, lo, hi int) func(args) error {
	return func(a args) error {
		if v := a.intArg(name, def); v < lo || v > hi {
			return invalidConstraint(name, fmt.Sprintf("must be between %d and %d", lo, hi))
		}
		return nil
	}
}

// dateOfBirth picks a birth date whose age at c.now is within [minAge, maxAge].
func dateOfBirth(c *genContext, minAge, maxAge int) calendarDate {
	today := time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, time.UTC)
	latest := today.AddDate(-minAge, 0, 0)
	earliest := today.AddDate(-(maxAge + 1), 0, 1)
	days := int(latest.Sub(earliest).Hours() / 24)
	return calendarDate(earliest.AddDate(0, 0, c.src.Number(0, days)))
}

func between(src Source, start, end time.Time) time.Time {
	span := int(end.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(src.Number(0, span)) * time.Second)
}

func words(src Source, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = src.LoremIpsumWord()
	}
	return out
}

func sentence(src Source, nbWords int) string {
	if nbWords <= 0 {
		return ""
	}
	w := words(src, nbWords)
	w[0] = capitalize(w[0])
	return strings.Join(w, " ") + "."
}

// text builds whole sentences up to maxChars characters. Below 25 characters
// it falls back to words, like a short caption.
func text(src Source, maxChars int) string {
	if maxChars < 25 {
		first := capitalize(src.LoremIpsumWord())
		if len(first)+1 > maxChars {
			return first[:maxChars-1] + "."
		}
		b := []string{first}
		size := len(first)
		for {
			w := src.LoremIpsumWord()
			if size+1+len(w)+1 > maxChars {
				return strings.Join(b, " ") + "."
			}
			b = append(b, w)
			size += 1 + len(w)
		}
	}

	var b strings.Builder
	for {
		s := sentence(src, src.Number(4, 10))
		if b.Len() == 0 && len(s) > maxChars {
			return truncateWords(s, maxChars)
		}
		if b.Len() > 0 && b.Len()+1+len(s) > maxChars {
			return b.String()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
}

func truncateWords(s string, maxChars int) string {
	s = strings.TrimSuffix(s, ".")
	for len(s)+1 > maxChars {
		i := strings.LastIndexByte(s, ' ')
		if i <= 0 {
			return s[:maxChars-1] + "."
		}
		s = s[:i]
	}
	return s + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func fileName(src Source, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = src.FileExtension()
	}
	return strings.ToLower(src.LoremIpsumWord()) + "." + ext
}

func normalizeDomain(d string) string {
	return strings.TrimPrefix(strings.TrimSpace(d), "@")
}

func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}

const hexDigits = "0123456789abcdef"

func hexString(src Source, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexDigits[src.Number(0, 15)]
	}
	return string(b)
}

func bban(src Source) string {
	return strings.ToUpper(src.Lexify("????")) + src.Numerify("##############")
}

// iban builds a GB IBAN with valid ISO 13616 check digits.
func iban(src Source) string {
	b := bban(src)
	check := 98 - mod97(b+"GB00")
	return "GB" + fmt.Sprintf("%02d", check) + b
}

func mod97(s string) int {
	rem := 0
	for _, r := range s {
		var digits string
		if r >= 'A' && r <= 'Z' {
			digits = strconv.Itoa(int(r-'A') + 10)
		} else {
			digits = string(r)
		}
		for _, d := range digits {
			rem = (rem*10 + int(d-'0')) % 97
		}
	}
	return rem
}
