package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/config"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func errUnknownKey(name string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	return fmt.Errorf("unknown key %s, did you mean %s?", style.Fg(color.Red)(name), style.Fg(color.Yellow)(closest))
}

func completeConfigKeys(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	slices.Sort(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// fieldFrom takes the key from the first argument or from --key.
func fieldFrom(cmd *cobra.Command, args []string) config.Field {
	name := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		handleErr(errors.New("a key is required, as an argument or with --key"))
	}

	field, ok := config.Default[name]
	if !ok {
		handleErr(errUnknownKey(name))
	}
	return field
}

// parseValue converts command line words to the type of the field's default.
func parseValue(field config.Field, words []string) (any, error) {
	if len(words) == 0 {
		return nil, errors.New("a value is required")
	}
	word := words[0]

	invalid := func(err error) error {
		return fmt.Errorf("%s expects a %s: %w", field.Key, field.Type(), err)
	}

	switch field.Value.(type) {
	case string:
		return word, nil
	case []string:
		return words, nil
	case int:
		n, err := strconv.Atoi(word)
		if err != nil {
			return nil, invalid(err)
		}
		return n, nil
	case float64:
		f, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return nil, invalid(err)
		}
		return f, nil
	case bool:
		b, err := strconv.ParseBool(word)
		if err != nil {
			return nil, invalid(err)
		}
		return b, nil
	case time.Duration:
		d, err := time.ParseDuration(word)
		if err != nil {
			return nil, invalid(err)
		}
		return d.String(), nil
	case []int:
		ints := make([]int, 0, len(words))
		for _, w := range words {
			n, err := strconv.Atoi(w)
			if err != nil {
				return nil, invalid(err)
			}
			ints = append(ints, n)
		}
		return ints, nil
	}

	return nil, fmt.Errorf("%s cannot be set from the command line", field.Key)
}

func configFilePath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// writeConfig saves the current values, creating the file when needed.
func writeConfig() {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = viper.SafeWriteConfig()
	}
	handleErr(err)
}

func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configSetCmd, configGetCmd, configWriteCmd, configDeleteCmd, configResetCmd)

	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Keys to describe. All of them by default")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print JSON")

	configSetCmd.Flags().StringP("key", "k", "", "Key to change")
	configSetCmd.Flags().StringSliceP("value", "v", nil, "New value. Repeat for list keys")

	configGetCmd.Flags().StringP("key", "k", "", "Key to print")

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	configResetCmd.Flags().StringP("key", "k", "", "Key to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")

	for _, c := range []*cobra.Command{configInfoCmd, configSetCmd, configGetCmd, configResetCmd} {
		lo.Must0(c.RegisterFlagCompletionFunc("key", completeConfigKeys))
	}
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Run: func(cmd *cobra.Command, args []string) {
		names := lo.Must(cmd.Flags().GetStringSlice("key"))
		if len(names) == 0 {
			names = lo.Keys(config.Default)
			slices.Sort(names)
		}

		fields := lo.Map(names, func(name string, _ int) config.Field {
			field, ok := config.Default[name]
			if !ok {
				handleErr(errUnknownKey(name))
			}
			return field
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			if i > 0 {
				fmt.Fprint(cmd.OutOrStdout(), "\n\n")
			}
			fmt.Fprint(cmd.OutOrStdout(), field.Pretty())
		}
		fmt.Fprintln(cmd.OutOrStdout())
	},
}

// configSetCmd accepts several values for list keys such as
// resolver.preferred_formats. Values that fail validation are not written.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change a setting and save it",
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field := fieldFrom(cmd, args)

		words := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			words = args[1:]
		}

		value, err := parseValue(field, words)
		handleErr(err)

		previous := viper.Get(field.Key)
		viper.Set(field.Key, value)
		if err := config.Validate(); err != nil {
			viper.Set(field.Key, previous)
			handleErr(err)
		}

		writeConfig()
		success(cmd, "set %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), viper.Get(fieldFrom(cmd, args).Key))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the current settings to " + constant.App + ".toml",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFilePath()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists, _ := filesystem.API().Exists(path); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		success(cmd, "wrote %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFilePath()))
		success(cmd, "deleted %s", configFilePath())
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore settings to their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for name, field := range config.Default {
				viper.Set(name, field.Value)
			}
			writeConfig()
			success(cmd, "reset every setting")
			return
		}

		field := fieldFrom(cmd, nil)
		viper.Set(field.Key, field.Value)
		writeConfig()
		success(cmd, "reset %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
	},
}
