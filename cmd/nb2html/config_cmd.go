package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConfigUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	cfg, err := loadEffectiveConfig(*flags, env)
	if err != nil {
		return err
	}

	out, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
