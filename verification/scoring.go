package verification

import (
	"math"
	"strings"
)

// DefaultWeight is used when an issuer or course has no table entry
const DefaultWeight = 5.0

// IssuerWeights maps an issuer, exactly as displayed on the platform, to its
// weight. Lookups are case-sensitive on purpose: issuers are picked from a
// fixed list in the upload form.
var IssuerWeights = map[string]float64{
	"Coursera":                  9.5,
	"Udemy":                     7.0,
	"LinkedIn Learning":         8.5,
	"Microsoft Learn":           8.5,
	"Amazon Web Services (AWS)": 9.0,
	"edX":                       9.5,
	"Udacity":                   9.0,
	"PMP":                       10.0,
	"ITIL":                      9.0,
	"HubSpot Academy":           7.0,
	"FutureLearn":               6.5,
	"Great Learning":            7.5,
	"Skillshare":                6.0,
	"Alison":                    6.5,
	"freeCodeCamp":              8.0,
	"CodeSignal":                8.5,
	"OpenLearn":                 6.5,
	"NPTEL":                     8.5,
	"SWAYAM":                    8.0,
	"Google":                    9.0,
	"LetsUpgrade":               7.0,
}

// CourseWeights is keyed by lowercased course name
var CourseWeights = map[string]float64{
	"python":  7.0,
	"java":    7.5,
	"ruby":    6.0,
	"sql":     7.0,
	"mongodb": 7.5,
}

// Weightage returns the score for an issuer/course pair: the average of the
// two table weights rounded to 2 decimal places, falling back to
// DefaultWeight for unknown entries. Pure function — totals stored on
// profiles must always be reconcilable against the certificate rows.
func Weightage(issuer, course string) float64 {
	issuerWeight, ok := IssuerWeights[issuer]
	if !ok {
		issuerWeight = DefaultWeight
	}

	courseWeight, ok := CourseWeights[strings.ToLower(course)]
	if !ok {
		courseWeight = DefaultWeight
	}

	return math.Round((issuerWeight+courseWeight)/2*100) / 100
}
