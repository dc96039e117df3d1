package content

import (
	"testing"

	"seo-spinner/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		vars map[string]string
		want string
	}{
		{
			name: "replaces every occurrence",
			tmpl: "{CITY} loves {SERVICE}. Best {SERVICE} in {CITY}!",
			vars: map[string]string{"CITY": "Austin", "SERVICE": "plumbing"},
			want: "Austin loves plumbing. Best plumbing in Austin!",
		},
		{
			name: "unknown tokens pass through",
			tmpl: "Call {PHONE_NUMBER} or visit {UNKNOWN}",
			vars: map[string]string{"PHONE_NUMBER": "555"},
			want: "Call 555 or visit {UNKNOWN}",
		},
		{
			name: "empty map leaves template untouched",
			tmpl: "{A}{B}",
			vars: nil,
			want: "{A}{B}",
		},
		{
			name: "values are not rescanned",
			tmpl: "{A} and {B}",
			vars: map[string]string{"A": "{B}", "B": "bee"},
			want: "{B} and bee",
		},
		{
			name: "empty value removes token",
			tmpl: "Site: {WEBSITE_URL}.",
			vars: map[string]string{"WEBSITE_URL": ""},
			want: "Site: .",
		},
		{
			name: "lone braces are kept",
			tmpl: "a { b } c {",
			vars: map[string]string{"X": "y"},
			want: "a { b } c {",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.tmpl, tt.vars))
		})
	}
}

func TestSubstitute_IdempotentOnUnmappedTokens(t *testing.T) {
	tmpl := "{KEEP} {CITY} {KEEP}"
	vars := map[string]string{"CITY": "Reno"}

	once := Substitute(tmpl, vars)
	twice := Substitute(once, vars)

	assert.Equal(t, "{KEEP} Reno {KEEP}", once)
	assert.Equal(t, once, twice)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Tokens("{A} {B} {A}"))
	assert.Empty(t, Tokens("no tokens here"))
}

func TestBuildVariables_Fallbacks(t *testing.T) {
	b := &models.Business{Name: "Acme", Industry: "Plumbing", PrimaryLocation: "Austin, TX"}
	s := &models.Service{Name: "Drain Cleaning"}
	a := &models.ServiceArea{City: "Round Rock", State: "TX"}

	vars := BuildVariables(b, s, a)

	assert.Equal(t, "Acme", vars["COMPANY_NAME"])
	assert.Equal(t, "Round Rock, TX", vars["TARGET_LOCATION"])
	assert.Equal(t, DefaultPhone, vars["PHONE_NUMBER"])
	assert.Equal(t, "", vars["WEBSITE_URL"])
	assert.Equal(t, "Professional Drain Cleaning services", vars["SERVICE_DESCRIPTION"])
	assert.Equal(t, DefaultBenefitOne, vars["SERVICE_BENEFIT_1"])
	assert.Equal(t, DefaultBenefitThree, vars["SERVICE_BENEFIT_3"])
	assert.Equal(t, DefaultUSP, vars["UNIQUE_SELLING_POINT"])
	assert.Equal(t, DefaultDemographic, vars["TARGET_DEMOGRAPHIC"])
	assert.Equal(t, DefaultYears, vars["YEARS_EXPERIENCE"])
}

func TestBuildVariables_UsesProvidedFields(t *testing.T) {
	b := &models.Business{
		Name:                "Acme",
		Industry:            "Plumbing",
		Phone:               strPtr("(512) 555-0100"),
		UniqueSellingPoints: models.StringList{"family owned"},
		TargetAudience:      strPtr("new homeowners"),
	}
	s := &models.Service{
		Name:        "Water Heaters",
		Description: strPtr("Tank and tankless installs"),
		Benefits:    models.StringList{"same-day service", "", "lifetime warranty"},
	}
	a := &models.ServiceArea{City: "Austin", State: "TX", ZipCodes: models.StringList{"78701", "78702"}}

	vars := BuildVariables(b, s, a)

	assert.Equal(t, "(512) 555-0100", vars["PHONE_NUMBER"])
	assert.Equal(t, "Tank and tankless installs", vars["SERVICE_DESCRIPTION"])
	assert.Equal(t, "same-day service", vars["SERVICE_BENEFIT_1"])
	assert.Equal(t, DefaultBenefitTwo, vars["SERVICE_BENEFIT_2"])
	assert.Equal(t, "lifetime warranty", vars["SERVICE_BENEFIT_3"])
	assert.Equal(t, "family owned", vars["UNIQUE_SELLING_POINT"])
	assert.Equal(t, "new homeowners", vars["TARGET_DEMOGRAPHIC"])
	assert.Equal(t, "78701, 78702", vars["ZIP_CODES"])
}
