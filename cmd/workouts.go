package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lowaak/hiit-timer/internal/trainer"
	"github.com/lowaak/hiit-timer/internal/workout"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

var listSaved bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and saved workouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list := e.library.All
		if listSaved {
			list = e.library.Saved
		}
		workouts, err := list(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		printWorkouts(cmd.OutOrStdout(), workouts)
		return nil
	},
}

func printWorkouts(w io.Writer, workouts []workout.WorkoutInfo) {
	for _, info := range workouts {
		kind := "preset"
		if info.IsCustom {
			kind = "saved"
		}
		fmt.Fprintf(w, "%-44s %s %s\n", cyan(info.ID), yellow(info.Title), faint("("+kind+", "+workout.FormatTime(info.Plan.TotalDuration())+")"))
		if info.Description != "" {
			fmt.Fprintf(w, "%-44s %s\n", "", info.Description)
		}
	}
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the stages and exercises of a workout",
	Args:  cobra.ExactArgs(1),
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

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", green(info.Title))
		if info.Description != "" {
			fmt.Fprintf(out, "%s\n", info.Description)
		}
		fmt.Fprintf(out, "\n%s %s   %s %d\n\n", red("Total:"), workout.FormatTime(info.Plan.TotalDuration()), red("Laps:"), info.Plan.TotalLaps())

		start := 0
		for i, stage := range info.Plan {
			fmt.Fprintf(out, "%s %s %s %s\n", cyan(fmt.Sprintf("%2d.", i+1)), yellow(stage.Name), faint(stage.Type.String()), workout.FormatTime(stage.Duration))
			for _, exercise := range stage.Exercises {
				fmt.Fprintf(out, "      %s  %-32s %s\n", faint(workout.FormatTime(start)), exercise.Name, workout.FormatTime(exercise.Duration))
				start += exercise.Duration
			}
		}

		if err := workout.Validate(info.Plan); err != nil {
			fmt.Fprintf(out, "\n%s %v\n", red("Warning:"), err)
		}
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state <id> <seconds>",
	Short: "Show where a workout is after the given number of seconds",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		elapsed, err := strconv.Atoi(args[1])
		if err != nil || elapsed < 0 {
			return fmt.Errorf("seconds must be a non-negative integer, got %q", args[1])
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.library.Find(cmd.Context(), workout.WorkoutID(args[0]))
		if err != nil {
			return err
		}

		printState(cmd.OutOrStdout(), info, workout.Project(elapsed, info.Plan))
		return nil
	},
}

func printState(w io.Writer, info workout.WorkoutInfo, s workout.WorkoutState) {
	fmt.Fprintf(w, "%s\n\n", green(info.Title))
	if s.IsFinished {
		fmt.Fprintf(w, "%s %s\n", green("Workout Complete!"), workout.FormatTime(s.TotalWorkoutDuration))
		fmt.Fprintf(w, "%s %d/%d\n", cyan("Laps:"), s.Lap, s.TotalLaps)
		return
	}

	fmt.Fprintf(w, "%s %s / %s (%.0f%%)\n", cyan("Elapsed:"), workout.FormatTime(s.TotalElapsedSeconds), workout.FormatTime(s.TotalWorkoutDuration), s.WorkoutProgress*100)
	fmt.Fprintf(w, "%s %s\n", cyan("Time left:"), workout.FormatTime(s.TimeLeftInWorkout))
	fmt.Fprintf(w, "%s %d/%d\n", cyan("Laps:"), s.Lap, s.TotalLaps)
	fmt.Fprintf(w, "%s %s (%s, %s left)\n", cyan("Stage:"), yellow(s.CurrentStage.Name), s.CurrentStage.Type, workout.FormatTime(s.TimeLeftInStage))
	fmt.Fprintf(w, "%s %s (%s left)\n", cyan("Exercise:"), yellow(s.CurrentExercise.Name), workout.FormatTime(s.TimeLeftInExercise))

	first, second := trainer.NextUp(s)
	if first == "" {
		return
	}
	next := []string{first}
	if second != "" {
		next = append(next, second)
	}
	fmt.Fprintf(w, "%s %s", cyan("Next up:"), strings.Join(next, ", "))
	if s.NextExerciseStartTime != nil {
		fmt.Fprintf(w, " %s", faint("at "+workout.FormatTime(*s.NextExerciseStartTime)))
	}
	fmt.Fprintln(w)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := workout.WorkoutID(args[0])
		if err := e.library.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Workout %s deleted\n", id)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listSaved, "saved", false, "list only saved workouts")
	rootCmd.AddCommand(listCmd, showCmd, stateCmd, deleteCmd)
}
