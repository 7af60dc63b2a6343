package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lowaak/hiit-timer/internal/generator"
	"github.com/lowaak/hiit-timer/internal/workout"
)

const defaultGeneratedTitle = "Generated Workout"

var (
	generateSave        bool
	generateTitle       string
	generateDescription string
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a workout plan from a description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		prompt := strings.Join(args, " ")
		fmt.Fprintf(out, "%s %s\n", faint("Generating:"), prompt)

		plan, err := generator.NewClient(e.cfg.Generator, e.logger).Generate(cmd.Context(), prompt)
		if err != nil {
			return fmt.Errorf("failed to generate workout: %w", err)
		}

		info := generatedWorkout(plan, generateTitle, generateDescription)
		if generateSave {
			info, err = e.library.Save(cmd.Context(), info.Plan, info.Title, info.Description)
			if err != nil {
				return fmt.Errorf("failed to save workout: %w", err)
			}
		}

		fmt.Fprintln(out)
		printPlan(out, info)
		if generateSave {
			fmt.Fprintf(out, "\n✅ Workout saved as %s\n", cyan(info.ID))
		}
		return nil
	},
}

// generatedWorkout names a generated plan, defaulting the title the way the
// workout screen does
func generatedWorkout(plan workout.WorkoutPlan, title, description string) workout.WorkoutInfo {
	if title == "" {
		title = defaultGeneratedTitle
	}
	return workout.WorkoutInfo{Title: title, Description: description, Plan: plan}
}

func printPlan(w io.Writer, info workout.WorkoutInfo) {
	fmt.Fprintf(w, "%s %s   %s %d\n", green(info.Title), workout.FormatTime(info.Plan.TotalDuration()), red("Laps:"), info.Plan.TotalLaps())
	for i, stage := range info.Plan {
		names := make([]string, len(stage.Exercises))
		for j, exercise := range stage.Exercises {
			names[j] = fmt.Sprintf("%s %s", exercise.Name, faint(workout.FormatTime(exercise.Duration)))
		}
		fmt.Fprintf(w, "%s %s %s: %s\n", cyan(fmt.Sprintf("%2d.", i+1)), yellow(stage.Name), faint(stage.Type.String()), strings.Join(names, ", "))
	}
}

func init() {
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the generated workout to the library")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "title for the saved workout")
	generateCmd.Flags().StringVar(&generateDescription, "description", "", "description for the saved workout")
	rootCmd.AddCommand(generateCmd)
}
