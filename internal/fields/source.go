package fields

// Source is the random-value source a Resolver draws from. It is the subset of
// *gofakeit.Faker that the generators use; one Source serves one batch.
type Source interface {
	FirstName() string
	LastName() string
	Name() string
	Username() string
	Email() string
	Phone() string
	UUID() string

	Number(min, max int) int
	Float64Range(min, max float64) float64

	LoremIpsumWord() string
	Numerify(str string) string
	Lexify(str string) string

	IPv4Address() string
	IPv6Address() string
	MacAddress() string
	URL() string
	UserAgent() string
	FileExtension() string
	Password(lower, upper, numeric, special, space bool, num int) string

	City() string
	State() string
	Country() string
	Zip() string
	Street() string
	Latitude() float64
	Longitude() float64
	TimeZoneRegion() string

	Company() string
	JobTitle() string
	CurrencyShort() string
	HexColor() string
	Emoji() string
}
