package workout

// Shared stages reused across the preset plans
var (
	warmupStage = WorkoutStage{
		Type:     StageWarmup,
		Name:     "Warm-up",
		Duration: 300,
		Exercises: []Exercise{
			{Name: "Light Jump Rope", Duration: 120},
			{Name: "Joint Mobility", Duration: 180},
		},
	}
	cooldownStage = WorkoutStage{
		Type:     StageCooldown,
		Name:     "Cool-down",
		Duration: 300,
		Exercises: []Exercise{
			{Name: "Cooldown Walk", Duration: 120},
			{Name: "Static Stretching", Duration: 180},
		},
	}
	rest60  = restStage(60)
	rest90  = restStage(90)
	rest120 = restStage(120)
)

func restStage(seconds int) WorkoutStage {
	return WorkoutStage{Type: StageRest, Name: "Rest", Duration: seconds, Exercises: []Exercise{{Name: "Rest", Duration: seconds}}}
}

// round builds a WORK stage whose duration is the sum of its exercises
func round(name string, exercises ...Exercise) WorkoutStage {
	stage := WorkoutStage{Type: StageWork, Name: name, Exercises: exercises}
	stage.Duration = stage.ExerciseTotal()
	return stage
}

func ex(name string, seconds int) Exercise {
	return Exercise{Name: name, Duration: seconds}
}

// repeat alternates stage and separator n times, without a trailing separator
func repeat(stage, separator WorkoutStage, n int) WorkoutPlan {
	plan := make(WorkoutPlan, 0, 2*n-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			plan = append(plan, separator)
		}
		plan = append(plan, stage)
	}
	return plan
}

// withWarmupAndCooldown wraps the main part of a preset
func withWarmupAndCooldown(main WorkoutPlan) WorkoutPlan {
	plan := make(WorkoutPlan, 0, len(main)+2)
	plan = append(plan, warmupStage)
	plan = append(plan, main...)
	return append(plan, cooldownStage)
}

func concat(parts ...[]Exercise) []Exercise {
	var result []Exercise
	for _, p := range parts {
		result = append(result, p...)
	}
	return result
}

var (
	day1Plan = WorkoutPlan{
		round("Round 1", ex("Jump Rope", 60), ex("Shadow Boxing", 120)),
		rest60,
		round("Round 2", ex("Hand Shadowboxing", 60), ex("Push-ups", 60), ex("Plank", 60)),
		rest60,
		round("Round 3", ex("Thai Jump Rope", 60), ex("Leg Shadowboxing", 120)),
		rest60,
		round("Round 4", ex("Squats", 60), ex("Alternating Lunges", 60), ex("Shadow Boxing", 60)),
		rest60,
		round("Round 5", ex("Interval Jump Rope", 180)),
		rest60,
		round("Round 6", ex("Combo Shadowboxing", 180)),
		rest60,
		round("Round 7", ex("Burpees", 60), ex("Thai Jump Rope", 60), ex("Max Speed SB", 60)),
	}

	day2Plan = repeat(
		round("Strength Circuit", ex("Pull-ups", 45), ex("Push-ups", 45), ex("Squats", 45), ex("Burpees", 45), ex("Plank", 45)),
		rest90, 5,
	)

	day3Block1 = []Exercise{
		ex("Jump Squats", 40), ex("Rest", 20),
		ex("Explosive Push-ups", 40), ex("Rest", 20),
		ex("High Knee Thai Rope", 40), ex("Rest", 20),
		ex("Speed Shadowboxing", 40), ex("Rest", 20),
	}
	day3Block2 = []Exercise{
		ex("Jumping Lunges", 40), ex("Rest", 20),
		ex("Mountain Climbers", 40), ex("Rest", 20),
		ex("Speed Jab-Cross", 40), ex("Rest", 20),
		ex("Tuck Jumps", 40), ex("Rest", 20),
	}
	day3Plan = WorkoutPlan{
		round("HIIT Block 1", concat(day3Block1, day3Block1, day3Block1)...),
		rest120,
		round("HIIT Block 2", concat(day3Block2, day3Block2, day3Block2)...),
		round("Finish", ex("Easy Jump Rope", 120)),
	}

	day4Plan = WorkoutPlan{
		round("Technique & Recovery",
			ex("Slow Shadowboxing", 900),
			ex("One-Leg Stand (L)", 120),
			ex("One-Leg Stand (R)", 120),
			ex("Defensive Drills", 300),
			ex("Mobility & Deep Stretch", 360),
		),
	}

	day5CoreSet = []Exercise{ex("Leg Raises", 60), ex("Plank", 60), ex("Side Plank Left", 60), ex("Side Plank Right", 60), ex("Rest", 60)}
	day5Plan    = WorkoutPlan{
		round("Strength Pyramid", ex("Pyramid: Pull-up / Push-up", 1200)),
		round("Core Finisher", concat(day5CoreSet, day5CoreSet)...),
	}

	day6Plan = repeat(
		round("Plyo & Speed Circuit", ex("Tuck Jumps", 45), ex("High Knees", 45), ex("Speed Jab-Cross", 60), ex("Mountain Climbers", 45)),
		rest60, 5,
	)

	day7Plan = WorkoutPlan{
		round("Round 1", ex("Fast Jump Rope", 60), ex("Speed Shadowboxing", 60), ex("Burpees", 60)),
		rest60,
		round("Round 2", ex("Thai Jump Rope", 60), ex("Max Reps Pull-ups", 60), ex("Max Reps Push-ups", 60)),
		rest60,
		round("Round 3", ex("Kicks & Knees SB", 60), ex("Jump Squats", 60), ex("Kicks & Knees SB", 60)),
		rest60,
		round("Round 4", ex("Clinch & Elbows SB", 60), ex("Mountain Climbers", 60), ex("Clinch & Elbows SB", 60)),
		rest60,
		round("Round 5", ex("Death by Burpee", 180)),
		rest60,
		round("Round 6", ex("Fast Jump Rope", 60), ex("Hand Shadowboxing", 60), ex("Plank", 60)),
		rest60,
		round("Round 7", ex("Final Shadowboxing (All out!)", 180)),
	}
)

// AllWorkouts defines the built-in workouts, one per training day
var AllWorkouts = []WorkoutInfo{
	{ID: "1", Title: "Day 1: Classic Endurance", Description: "7 rounds of boxing essentials.", Plan: withWarmupAndCooldown(day1Plan)},
	{ID: "2", Title: "Day 2: Strength Circuit", Description: "5 rounds of full-body strength exercises.", Plan: withWarmupAndCooldown(day2Plan)},
	{ID: "3", Title: "Day 3: Explosive HIIT", Description: "High-intensity intervals for explosive power.", Plan: withWarmupAndCooldown(day3Plan)},
	{ID: "4", Title: "Day 4: Technique & Recovery", Description: "Low-intensity work on form and mobility.", Plan: withWarmupAndCooldown(day4Plan)},
	{ID: "5", Title: "Day 5: Strength Pyramid", Description: "Climb the ladder of strength and finish with core.", Plan: withWarmupAndCooldown(day5Plan)},
	{ID: "6", Title: "Day 6: Plyo & Speed", Description: "5 rounds focused on explosive movements.", Plan: withWarmupAndCooldown(day6Plan)},
	{ID: "7", Title: "Day 7: Championship Rounds", Description: "7 rounds at maximum intensity to finish the week.", Plan: withWarmupAndCooldown(day7Plan)},
}

// Presets returns a copy of the built-in workout list
func Presets() []WorkoutInfo {
	result := make([]WorkoutInfo, len(AllWorkouts))
	copy(result, AllWorkouts)
	return result
}

// PresetByID returns the built-in workout with the given id
func PresetByID(id WorkoutID) (WorkoutInfo, bool) {
	for _, info := range AllWorkouts {
		if info.ID == id {
			return info, true
		}
	}
	return WorkoutInfo{}, false
}
