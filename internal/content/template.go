package content

import (
	"fmt"
	"regexp"
	"strings"

	"seo-spinner/internal/models"
)

var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Substitute replaces every {NAME} token that has an entry in vars.
// Tokens without an entry are kept as written. Replacement values are not
// rescanned, so a value containing braces is inserted literally.
func Substitute(tmpl string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		if v, ok := vars[tok[1:len(tok)-1]]; ok {
			return v
		}
		return tok
	})
}

// Tokens returns the distinct placeholder names in tmpl in order of first use.
func Tokens(tmpl string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range tokenPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// Fallback copy used when the business left a field blank.
const (
	DefaultPhone          = "(555) 123-4567"
	DefaultYears          = "15"
	DefaultUSP            = "licensed and insured professionals"
	DefaultGuarantee      = "100% satisfaction guarantee"
	DefaultDemographic    = "homeowners and businesses"
	DefaultBenefitOne     = "quality workmanship"
	DefaultBenefitTwo     = "affordable pricing"
	DefaultBenefitThree   = "exceptional customer service"
	serviceDescriptionFmt = "Professional %s services"
)

// BuildVariables computes the placeholder map for one combination.
func BuildVariables(b *models.Business, s *models.Service, a *models.ServiceArea) map[string]string {
	return map[string]string{
		"COMPANY_NAME":         b.Name,
		"TARGET_LOCATION":      a.Label(),
		"SERVICE_TYPE":         s.Name,
		"INDUSTRY":             b.Industry,
		"PHONE_NUMBER":         models.Deref(b.Phone, DefaultPhone),
		"WEBSITE_URL":          models.Deref(b.WebsiteURL, ""),
		"BUSINESS_EMAIL":       models.Deref(b.Email, ""),
		"PRIMARY_LOCATION":     b.PrimaryLocation,
		"SERVICE_DESCRIPTION":  models.Deref(s.Description, fmt.Sprintf(serviceDescriptionFmt, s.Name)),
		"CITY":                 a.City,
		"STATE":                a.State,
		"YEARS_EXPERIENCE":     DefaultYears,
		"SERVICE_BENEFIT_1":    s.Benefits.At(0, DefaultBenefitOne),
		"SERVICE_BENEFIT_2":    s.Benefits.At(1, DefaultBenefitTwo),
		"SERVICE_BENEFIT_3":    s.Benefits.At(2, DefaultBenefitThree),
		"UNIQUE_SELLING_POINT": b.UniqueSellingPoints.At(0, DefaultUSP),
		"GUARANTEE_PROMISE":    DefaultGuarantee,
		"TARGET_DEMOGRAPHIC":   models.Deref(b.TargetAudience, DefaultDemographic),
		"PRICE_RANGE":          models.Deref(s.PriceRange, ""),
		"SERVICE_DURATION":     models.Deref(s.Duration, ""),
		"ZIP_CODES":            strings.Join(a.ZipCodes, ", "),
	}
}

// Keywords is the derived keyword list stored with each generated row.
func Keywords(b *models.Business, s *models.Service, a *models.ServiceArea) models.StringList {
	return models.StringList{s.Name, a.City, b.Industry}
}
