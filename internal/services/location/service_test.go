package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donothingclub/donothing/internal/model"
)

func TestResolveKnownCode(t *testing.T) {
	svc := New(Config{})

	loc, err := svc.Resolve("AU")
	require.NoError(t, err)
	assert.Equal(t, "Australia", loc.Country)
	assert.Equal(t, "AU", loc.CountryCode)
}

func TestResolveNormalizesCode(t *testing.T) {
	svc := New(Config{})

	loc, err := svc.Resolve(" nz ")
	require.NoError(t, err)
	assert.Equal(t, "New Zealand", loc.Country)
	assert.Equal(t, "NZ", loc.CountryCode)
}

func TestResolveUnknownCodePassesThrough(t *testing.T) {
	svc := New(Config{})

	loc, err := svc.Resolve("XX")
	require.NoError(t, err)
	assert.Equal(t, "XX", loc.Country)
	assert.Equal(t, "XX", loc.CountryCode)
}

func TestResolveMissingCodeUsesDefault(t *testing.T) {
	svc := New(Config{DefaultCountry: "Australia", DefaultCountryCode: "AU"})

	loc, err := svc.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "AU", loc.CountryCode)
}

func TestResolveMissingCodeWithoutDefault(t *testing.T) {
	svc := New(Config{})

	_, err := svc.Resolve("")
	assert.ErrorIs(t, err, model.ErrLocationUnavailable)
}
