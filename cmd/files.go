package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lowaak/hiit-timer/internal/planfile"
	"github.com/lowaak/hiit-timer/internal/workout"
)

var importTitle string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save the workout in a YAML, TOML or JSON file to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := planfile.Read(args[0])
		if err != nil {
			return err
		}
		if importTitle != "" {
			file.Title = importTitle
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.library.Save(cmd.Context(), file.Stages, file.Title, file.Description)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Workout '%s' saved as %s (%s)\n", info.Title, cyan(info.ID), workout.FormatTime(info.Plan.TotalDuration()))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write a workout to a YAML, TOML or JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.library.Find(cmd.Context(), workout.WorkoutID(args[0]))
		if err != nil {
			return err
		}
		if err := planfile.Write(args[1], planfile.FromInfo(info)); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Workout '%s' written to %s\n", info.Title, args[1])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "override the title from the file")
	rootCmd.AddCommand(importCmd, exportCmd)
}
