package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/ponyatov/kb/pkg/argecho"
	"github.com/ponyatov/kb/pkg/config"
	"github.com/ponyatov/kb/pkg/numdemo"
)

// ArgumentsTable renders the argument list as an Index / Argument table.
// Arguments keep their %q quoting so whitespace stays visible.
func ArgumentsTable(w io.Writer, list argecho.ArgumentList) error {
	table := tablewriter.NewWriter(w)
	table.Header("Index", "Argument")

	for i, arg := range list.All() {
		if err := table.Append(Cyan(strconv.Itoa(i)), fmt.Sprintf("%q", arg)); err != nil {
			return err
		}
	}

	return table.Render()
}

// StepsTable renders demo steps. The accumulator column only appears when
// the steps carry one.
func StepsTable(w io.Writer, steps []numdemo.Step) error {
	if len(steps) == 0 {
		return nil
	}

	withAcc := steps[0].HasAcc

	table := tablewriter.NewWriter(w)
	if withAcc {
		table.Header("I", "Parity", "Accumulator")
	} else {
		table.Header("I", "Parity")
	}

	for _, s := range steps {
		row := []any{Cyan(strconv.Itoa(s.Index)), parityCell(s.Parity)}
		if withAcc {
			row = append(row, numdemo.FormatFloat32(s.Acc))
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}

	return table.Render()
}

// ConfigTable renders effective configuration entries
func ConfigTable(w io.Writer, entries []*config.ConfigEntry) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value", "Level")

	for _, e := range entries {
		if err := table.Append(Cyan(e.Key), e.Value, levelCell(e.Level)); err != nil {
			return err
		}
	}

	return table.Render()
}

func parityCell(label string) string {
	if label == "even" {
		return Blue(label)
	}
	return Magenta(label)
}

func levelCell(level config.ConfigLevel) string {
	switch level {
	case config.CommandLineLevel:
		return Yellow(level.String())
	case config.BuiltinLevel:
		return Gray(level.String())
	default:
		return Green(level.String())
	}
}
