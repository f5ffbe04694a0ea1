package inference

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/eugenenazirov/optstore/internal/options"
)

type settings struct {
	categoricalThreshold float64
	numericThreshold     *float64
	email                *regexp.Regexp
}

type optionInferrer struct {
	opts Reader
}

// New creates an Inferrer that reads its thresholds from opts on every call,
// so overrides in effect at call time apply.
func New(opts Reader) Inferrer {
	return &optionInferrer{opts: opts}
}

func (i *optionInferrer) Infer(values []string) (Result, error) {
	s, err := i.load()
	if err != nil {
		return Result{}, err
	}

	present := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return Result{Kind: KindUnknown}, nil
	}

	ratio := uniqueRatio(present)
	result := Result{UniqueRatio: ratio, Considered: len(present)}

	switch {
	case allMatch(present, s.email.MatchString):
		result.Kind = KindEmail
	case allMatch(present, isNumber):
		if s.numericThreshold != nil && ratio < *s.numericThreshold {
			result.Kind = KindCategorical
		} else if allMatch(present, isInteger) {
			result.Kind = KindInteger
		} else {
			result.Kind = KindDouble
		}
	case ratio < s.categoricalThreshold:
		result.Kind = KindCategorical
	default:
		result.Kind = KindUnknown
	}
	return result, nil
}

func (i *optionInferrer) load() (settings, error) {
	var s settings

	raw, err := i.opts.Get(options.CategoricalThreshold)
	if err != nil {
		return s, err
	}
	threshold, ok := toFloat(raw)
	if !ok {
		return s, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidOptionValue, options.CategoricalThreshold, raw)
	}
	s.categoricalThreshold = threshold

	raw, err = i.opts.Get(options.NumericCategoricalThreshold)
	if err != nil {
		return s, err
	}
	if raw != nil {
		numeric, ok := toFloat(raw)
		if !ok {
			return s, fmt.Errorf("%w: %s must be a number or nil, got %T", ErrInvalidOptionValue, options.NumericCategoricalThreshold, raw)
		}
		s.numericThreshold = &numeric
	}

	raw, err = i.opts.Get(options.EmailInferenceRegex)
	if err != nil {
		return s, err
	}
	pattern, ok := raw.(string)
	if !ok {
		return s, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOptionValue, options.EmailInferenceRegex, raw)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrInvalidOptionValue, options.EmailInferenceRegex, err)
	}
	s.email = re

	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func uniqueRatio(values []string) float64 {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return float64(len(seen)) / float64(len(values))
}

func allMatch(values []string, match func(string) bool) bool {
	for _, v := range values {
		if !match(v) {
			return false
		}
	}
	return true
}

// isNumber rejects "NaN", "inf" and "Infinity", which ParseFloat accepts.
func isNumber(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}
