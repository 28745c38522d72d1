// Package cli provides Cobra flag registration helpers.
package cli

import (
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var durationType = reflect.TypeOf(time.Duration(0))

// RegisterFlag registers a command-line flag for a Cobra command based on the provided
// name, shorthand, value, usage description, and target variable. It supports bool,
// string, float64, int, time.Duration, and string slice types, ensuring the target is a
// pointer. If the value type is unsupported, the function panics.
func RegisterFlag(cmd *cobra.Command, name, shorthand string, value interface{}, usage string, target interface{}) {
	register(cmd.Flags(), name, shorthand, value, usage, target)
}

// RegisterPersistentFlag is RegisterFlag for flags inherited by every subcommand.
func RegisterPersistentFlag(cmd *cobra.Command, name, shorthand string, value interface{}, usage string, target interface{}) {
	register(cmd.PersistentFlags(), name, shorthand, value, usage, target)
}

func register(flags *pflag.FlagSet, name, shorthand string, value interface{}, usage string, target interface{}) {
	targetValue := reflect.ValueOf(target)

	// Ensure target is a pointer
	if targetValue.Kind() != reflect.Ptr {
		panic("target must be a pointer")
	}

	elem := targetValue.Elem()

	// Format the usage string, adding a newline and the default value if it's a bool flag
	switch v := value.(type) {
	case bool:
		if !v {
			usage += "\n (default false)"
		} else {
			usage += "\n"
		}
	case string, float64, int, time.Duration, []string:
		usage += "\n"
	default:
		panic("unsupported flag type")
	}

	// Durations are int64 underneath, so match the type before the kind.
	if elem.Type() == durationType {
		d, ok := value.(time.Duration)
		if !ok {
			panic("unsupported flag type")
		}
		flags.DurationVarP(target.(*time.Duration), name, shorthand, d, usage)
		return
	}

	switch elem.Kind() {
	case reflect.Bool:
		flags.BoolVarP(target.(*bool), name, shorthand, value.(bool), usage)
	case reflect.String:
		flags.StringVarP(target.(*string), name, shorthand, value.(string), usage)
	case reflect.Float64:
		flags.Float64VarP(target.(*float64), name, shorthand, value.(float64), usage)
	case reflect.Int:
		flags.IntVarP(target.(*int), name, shorthand, value.(int), usage)
	case reflect.Slice:
		if elem.Type().Elem().Kind() == reflect.String {
			flags.StringSliceVarP(target.(*[]string), name, shorthand, value.([]string), usage)
		} else {
			panic("unsupported slice type")
		}
	default:
		panic("unsupported flag type")
	}
}
