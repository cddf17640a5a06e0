// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/graphdiff/internal/comparator"
	"github.com/tfctl/graphdiff/internal/flatten"
	"github.com/tfctl/graphdiff/internal/log"
	"github.com/tfctl/graphdiff/internal/property"
	"github.com/tfctl/graphdiff/internal/serializer"
)

var (
	// ErrNilWorking is returned when the working value is absent.
	ErrNilWorking = errors.New("working value must not be nil")

	// ErrInvalidConfiguration is returned by New for unusable registrations.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Differ diffs value graphs under one Configuration. It is safe for
// concurrent use.
type Differ struct {
	flattener    *flatten.Flattener
	baseLabel    string
	workingLabel string
}

// New validates cfg and builds a Differ from it.
func New(cfg Configuration) (*Differ, error) {
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	enumerator := cfg.enumerator
	if enumerator == nil {
		var opts []property.Option
		if cfg.typeProperty != "" {
			opts = append(opts, property.WithTypeProperty(cfg.typeProperty))
		}
		enumerator = property.NewReflector(opts...)
	}

	log.Tracef("differ: %d serializers, %d natural orderings, %d comparators, %d exclusions",
		len(cfg.serializers), len(cfg.natural), len(cfg.comparators), len(cfg.excluded))

	return &Differ{
		flattener: flatten.New(
			serializer.NewRegistry(cfg.serializers...),
			comparator.NewRegistry(cfg.natural, cfg.comparators),
			property.NewFilter(cfg.excluded...),
			enumerator,
		),
		baseLabel:    cfg.BaseLabel(),
		workingLabel: cfg.WorkingLabel(),
	}, nil
}

func validate(cfg Configuration) error {
	var errs []error

	for i, s := range cfg.serializers {
		if s == nil {
			errs = append(errs, fmt.Errorf("serializer %d is nil", i))
		}
	}

	for i, c := range cfg.comparators {
		if c == nil {
			errs = append(errs, fmt.Errorf("comparator %d is nil", i))
		}
	}

	for _, t := range cfg.natural {
		if err := comparator.Orderable(t); err != nil {
			errs = append(errs, err)
		}
	}

	if cfg.typeProperty != "" && cfg.enumerator != nil {
		errs = append(errs, errors.New("type property requires the default property enumerator"))
	}

	return errors.Join(errs...)
}

// Diff returns the unified diff turning base into working, or nothing when
// both flatten to the same document. A nil base stands for a value that does
// not exist yet.
func (d *Differ) Diff(base, working any) ([]string, error) {
	if serializer.IsNil(working) {
		return nil, ErrNilWorking
	}

	var before []string
	if !serializer.IsNil(base) {
		var err error
		if before, err = d.Flatten(base); err != nil {
			return nil, err
		}
	}

	after, err := d.Flatten(working)
	if err != nil {
		return nil, err
	}

	log.Debugf("differ: %s base lines, %s working lines",
		humanize.Comma(int64(len(before))), humanize.Comma(int64(len(after))))

	if len(after) == 0 {
		return nil, nil
	}

	return newPatch(before, after).Render(d.baseLabel, d.workingLabel), nil
}

// Flatten returns the document of value, rooted at its type name.
func (d *Differ) Flatten(value any) ([]string, error) {
	return d.flattener.Flatten(RootLabel(value), value)
}

// RootLabel returns the unqualified type name of value with pointers
// removed. Unnamed maps, slices and arrays are labelled Map, Slice and Array.
func RootLabel(value any) string {
	t := reflect.TypeOf(value)
	if t == nil {
		return "Nil"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if name := t.Name(); name != "" {
		return name
	}

	switch t.Kind() {
	case reflect.Map:
		return "Map"
	case reflect.Slice:
		return "Slice"
	case reflect.Array:
		return "Array"
	}
	return t.Kind().String()
}
