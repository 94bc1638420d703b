package location

import (
	"strings"

	"github.com/donothingclub/donothing/internal/model"
)

// Config holds configuration for the location service
type Config struct {
	// DefaultCountry/DefaultCountryCode are used when a request carries no
	// resolvable country hint. Leave empty to report no location instead.
	DefaultCountry     string
	DefaultCountryCode string
}

// Service resolves a best-effort country for registration pre-fill.
// Resolution is header-driven (the edge proxy stamps the country code);
// a miss is expected and non-fatal.
type Service struct {
	cfg Config
}

// New creates a new location Service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Resolve maps a country-code hint to a Location. An unknown but present
// code is passed through with the code as the display name; an absent code
// falls back to the configured default or model.ErrLocationUnavailable.
func (s *Service) Resolve(countryCode string) (*model.Location, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))

	if code != "" {
		if name, ok := countryNames[code]; ok {
			return &model.Location{Country: name, CountryCode: code}, nil
		}
		return &model.Location{Country: code, CountryCode: code}, nil
	}

	if s.cfg.DefaultCountryCode != "" {
		return &model.Location{
			Country:     s.cfg.DefaultCountry,
			CountryCode: s.cfg.DefaultCountryCode,
		}, nil
	}

	return nil, model.ErrLocationUnavailable
}

// countryNames maps ISO 3166-1 alpha-2 codes to display names for the
// countries the service most commonly sees
var countryNames = map[string]string{
	"AR": "Argentina",
	"AT": "Austria",
	"AU": "Australia",
	"BE": "Belgium",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CL": "Chile",
	"CN": "China",
	"CZ": "Czechia",
	"DE": "Germany",
	"DK": "Denmark",
	"ES": "Spain",
	"FI": "Finland",
	"FR": "France",
	"GB": "United Kingdom",
	"GR": "Greece",
	"HK": "Hong Kong",
	"ID": "Indonesia",
	"IE": "Ireland",
	"IL": "Israel",
	"IN": "India",
	"IT": "Italy",
	"JP": "Japan",
	"KR": "South Korea",
	"MX": "Mexico",
	"NL": "Netherlands",
	"NO": "Norway",
	"NZ": "New Zealand",
	"PL": "Poland",
	"PT": "Portugal",
	"RO": "Romania",
	"SE": "Sweden",
	"SG": "Singapore",
	"TR": "Turkey",
	"TW": "Taiwan",
	"UA": "Ukraine",
	"US": "United States",
	"VN": "Vietnam",
	"ZA": "South Africa",
}
