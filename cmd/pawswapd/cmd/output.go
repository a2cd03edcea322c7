package cmd

import (
	"fmt"
	"io"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

func printYAML(w io.Writer, v interface{}) error {
	bz, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = w.Write(bz)
	return err
}

// parseAmount reads a non-negative integer amount from a loosely typed value:
// a YAML number, a decimal string or a command argument.
func parseAmount(name string, raw interface{}) (math.Int, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return math.Int{}, fmt.Errorf("%s: %w", name, err)
	}
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("%s: %q is not an integer", name, s)
	}
	if amount.IsNegative() {
		return math.Int{}, fmt.Errorf("%s: %s is negative", name, amount)
	}
	return amount, nil
}
