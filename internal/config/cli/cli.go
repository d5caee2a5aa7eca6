// Package cli turns a configuration object into a deterministic set of
// command-line option specifications.
//
// The builder only produces the specification; applying parsed values
// back into the configuration is the caller's responsibility.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/gunicorn/internal/config"
	"github.com/dshills/gunicorn/internal/config/registry"
	"github.com/spf13/pflag"
)

// OptionSpec describes one command-line option generated from a setting
// descriptor.
type OptionSpec struct {
	// Flags are the flag strings in declaration order (e.g. "-b",
	// "--bind").
	Flags []string

	// Dest is the setting name the parsed value belongs to.
	Dest string

	// Metavar is the value placeholder for help output; empty means
	// none.
	Metavar string

	// Action is the option's action kind.
	Action registry.Action

	// Type is the value type. It is only meaningful for the store
	// action; flag-style actions carry no separate value type.
	Type registry.ValueType

	// Help is the help text: the setting's short doc plus its default.
	Help string
}

// Name returns the long flag name without the leading dashes, falling
// back to the short flag when no long form is declared.
func (o OptionSpec) Name() string {
	name := ""
	for _, f := range o.Flags {
		if strings.HasPrefix(f, "--") {
			name = strings.TrimPrefix(f, "--")
		}
	}
	if name == "" && len(o.Flags) > 0 {
		name = strings.TrimLeft(o.Flags[0], "-")
	}
	return name
}

// Shorthand returns the single-letter flag without the dash, or "".
func (o OptionSpec) Shorthand() string {
	for _, f := range o.Flags {
		if !strings.HasPrefix(f, "--") && strings.HasPrefix(f, "-") {
			return strings.TrimPrefix(f, "-")
		}
	}
	return ""
}

// Options produces the option specs for every setting of cfg that
// declares at least one CLI flag, sorted by (section, order): sections
// compare lexicographically and registration order breaks ties. The
// result is stable regardless of iteration order over the catalog.
func Options(cfg *config.Config) []OptionSpec {
	holders := cfg.Settings()
	sort.SliceStable(holders, func(i, j int) bool {
		si, sj := holders[i].Setting(), holders[j].Setting()
		if si.Section != sj.Section {
			return si.Section < sj.Section
		}
		return si.Order() < sj.Order()
	})

	var specs []OptionSpec
	for _, holder := range holders {
		s := holder.Setting()
		if len(s.CLI) == 0 {
			continue
		}
		spec := OptionSpec{
			Flags:   append([]string(nil), s.CLI...),
			Dest:    s.Name,
			Metavar: s.Meta,
			Action:  s.Action,
			Help:    fmt.Sprintf("%s [%v]", s.Short, s.Default),
		}
		if s.Action == registry.ActionStore {
			spec.Type = s.Type
		}
		specs = append(specs, spec)
	}
	return specs
}

// FlagSet materializes the option specs into a pflag set. Flags carry no
// defaults: the configuration object already holds the real defaults, and
// only flags the user actually changed are applied back.
func FlagSet(name string, specs []OptionSpec) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	for _, spec := range specs {
		switch {
		case spec.Action == registry.ActionStoreTrue:
			fs.BoolP(spec.Name(), spec.Shorthand(), false, spec.Help)
		case spec.Type == registry.TypeInt:
			fs.IntP(spec.Name(), spec.Shorthand(), 0, spec.Help)
		default:
			fs.StringP(spec.Name(), spec.Shorthand(), "", spec.Help)
		}
	}
	return fs
}
