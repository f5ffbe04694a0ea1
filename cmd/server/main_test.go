package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/eugenenazirov/optstore/internal/options"
)

func TestApplyAssignments(t *testing.T) {
	store := options.NewDefault()

	err := applyAssignments(store, []string{
		"categorical_threshold=0.35",
		"numeric_categorical_threshold=0.1",
	})
	if err != nil {
		t.Fatalf("applyAssignments returned error: %v", err)
	}

	if got, _ := store.Get(options.CategoricalThreshold); got != 0.35 {
		t.Fatalf("expected 0.35, got %v", got)
	}
	if got, _ := store.Get(options.NumericCategoricalThreshold); got != 0.1 {
		t.Fatalf("expected 0.1, got %v", got)
	}
}

func TestApplyAssignmentsUnknownKey(t *testing.T) {
	store := options.NewDefault()

	err := applyAssignments(store, []string{"nonexistent=1"})
	if !errors.Is(err, options.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

func TestApplyAssignmentsMalformed(t *testing.T) {
	if err := applyAssignments(options.NewDefault(), []string{"novalue"}); err == nil {
		t.Fatalf("expected error for malformed assignment")
	}
}

func TestPrintStore(t *testing.T) {
	store := options.NewDefault()
	if err := store.Set(options.CategoricalThreshold, 0.5); err != nil {
		t.Fatalf("set: %v", err)
	}

	var buf bytes.Buffer
	printStore(&buf, store)

	out := buf.String()
	if !strings.HasPrefix(out, "Global Config Settings\n") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "categorical_threshold: 0.5") {
		t.Fatalf("expected updated value in output: %q", out)
	}
	if !strings.Contains(out, "numeric_categorical_threshold: None") {
		t.Fatalf("expected nil rendered as None: %q", out)
	}
}
