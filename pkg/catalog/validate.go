package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/HerbHall/chipmatch/pkg/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("family", func(fl validator.FieldLevel) bool {
			return models.Family(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("segment", func(fl validator.FieldLevel) bool {
			return models.Segment(fl.Field().String()).Valid()
		})
		validate.RegisterStructValidation(validateRanges, models.Processor{})
	})
	return validate
}

// validateRanges checks every stored specification field against its
// documented range. Optional fields may hold the zero sentinel. NaN and
// infinities are rejected everywhere, price included.
func validateRanges(sl validator.StructLevel) {
	p := sl.Current().Interface().(models.Processor)
	for _, f := range models.StoredFields() {
		spec := f.Spec()
		v := p.Value(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			sl.ReportError(v, spec.Key, spec.Key, "finite", "")
			continue
		}
		if f == models.FieldPrice {
			continue
		}
		if spec.Optional && v == 0 {
			continue
		}
		if v < spec.Min || v > spec.Max {
			sl.ReportError(v, spec.Key, spec.Key, "range", fmt.Sprintf("%g-%g", spec.Min, spec.Max))
		}
	}
	if p.TotalThreads > 0 && p.TotalCores > 0 && p.TotalThreads < p.TotalCores {
		sl.ReportError(p.TotalThreads, "total_threads", "total_threads", "gtecores", "")
	}
}

// RecordError describes why one record was rejected.
type RecordError struct {
	Index  int
	Name   string
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%q): %s: %s", e.Index, e.Name, e.Field, e.Reason)
}

// Validate checks one record and returns a *RecordError for the first
// failing field.
func Validate(index int, p models.Processor) error {
	err := validatorInstance().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("record %d: %w", index, err)
	}
	fe := verrs[0]
	return &RecordError{
		Index:  index,
		Name:   p.Name,
		Field:  fe.Field(),
		Reason: describe(fe),
	}
}

// ValidateAll validates every record and joins the failures.
func ValidateAll(records []models.Processor) error {
	var errs []error
	for i := range records {
		if err := Validate(i, records[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "family":
		return fmt.Sprintf("unknown family %q", fe.Value())
	case "segment":
		return fmt.Sprintf("unknown segment %q", fe.Value())
	case "range":
		return fmt.Sprintf("value %v outside valid range %s", fe.Value(), fe.Param())
	case "finite":
		return fmt.Sprintf("value %v is not a finite number", fe.Value())
	case "gtecores":
		return "must not be lower than total_cores"
	default:
		return "failed " + fe.Tag()
	}
}
