package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Package category codes.
const (
	CategoryBusiness = "BUSINESS"
	CategoryPersonal = "PERSONAL"
)

type PackagePath struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PackagePlan struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsPopular bool   `json:"isPopular"`
}

type PackagePrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type PackageDeliverables struct {
	GeneratedNames int `json:"generatedNames"`
}

type SubmissionPolicy struct {
	TotalSubmissions      SubmissionValue `json:"totalSubmissions"`
	MaxNamesPerSubmission SubmissionValue `json:"maxNamesPerSubmission"`
	SubmissionFormat      string          `json:"submissionFormat"`
	SubmissionWindowDays  int             `json:"submissionWindowDays"`
}

type Package struct {
	ID               string              `json:"id,omitempty"`
	CategoryCode     string              `json:"categoryCode"`
	CategoryName     string              `json:"categoryName"`
	Path             PackagePath         `json:"path"`
	Plan             PackagePlan         `json:"plan"`
	Price            PackagePrice        `json:"price"`
	Deliverables     PackageDeliverables `json:"deliverables"`
	SubmissionPolicy SubmissionPolicy    `json:"submissionPolicy"`
	ExpectedOutcome  string              `json:"expectedOutcome"`
	Description      string              `json:"description"`
	DisplayOrder     int                 `json:"displayOrder"`
	Active           bool                `json:"active"`
	CreatedAt        time.Time           `json:"createdAt,omitempty"`
}

// UnmarshalJSON reconciles the two identifier spellings the API uses. The
// Mongo-style "_id" wins when both are present; callers never see "_id".
func (p *Package) UnmarshalJSON(data []byte) error {
	type alias Package
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		p.ID = aux.MongoID
	}
	return nil
}

// MarshalJSON drops the zero creation timestamp so create/update payloads
// carry only admin-editable fields.
func (p Package) MarshalJSON() ([]byte, error) {
	type alias Package
	aux := struct {
		alias
		CreatedAt *time.Time `json:"createdAt,omitempty"`
	}{alias: alias(p)}
	if !p.CreatedAt.IsZero() {
		aux.CreatedAt = &p.CreatedAt
	}
	return json.Marshal(aux)
}

// SubmissionValue is a count that the API serves in three spellings: a bare
// number, a "min-max" string, or a {min, max} object. It is either a single
// value or a range, never an untyped blob.
type SubmissionValue struct {
	Single int
	Min    int
	Max    int
	Range  bool
}

func SingleValue(n int) SubmissionValue {
	return SubmissionValue{Single: n}
}

func RangeValue(min, max int) SubmissionValue {
	return SubmissionValue{Min: min, Max: max, Range: true}
}

func (v *SubmissionValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = SingleValue(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseSubmissionValue(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}

	var obj struct {
		Min *int `json:"min"`
		Max *int `json:"max"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("submission value: unsupported shape %s", data)
	}
	min, max := 0, 0
	if obj.Min != nil {
		min = *obj.Min
	}
	if obj.Max != nil {
		max = *obj.Max
	}
	*v = RangeValue(min, max)
	return nil
}

func (v SubmissionValue) MarshalJSON() ([]byte, error) {
	if v.Range {
		return json.Marshal(struct {
			Min int `json:"min"`
			Max int `json:"max"`
		}{v.Min, v.Max})
	}
	return json.Marshal(v.Single)
}

// ParseSubmissionValue reads the form/text spelling: "5" or "2-5".
func ParseSubmissionValue(s string) (SubmissionValue, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SingleValue(0), nil
	}
	if min, max, ok := strings.Cut(s, "-"); ok {
		lo, err := strconv.Atoi(strings.TrimSpace(min))
		if err != nil {
			return SubmissionValue{}, fmt.Errorf("submission value %q: %w", s, err)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(max))
		if err != nil {
			return SubmissionValue{}, fmt.Errorf("submission value %q: %w", s, err)
		}
		return RangeValue(lo, hi), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return SubmissionValue{}, fmt.Errorf("submission value %q: %w", s, err)
	}
	return SingleValue(n), nil
}

func (v SubmissionValue) String() string {
	if v.Range {
		return fmt.Sprintf("%d-%d", v.Min, v.Max)
	}
	return strconv.Itoa(v.Single)
}
