package generator

import "github.com/lowaak/hiit-timer/internal/workout"

const systemInstruction = `You are an expert fitness coach specializing in creating high-intensity interval training (HIIT) workouts for Thai Boxing. Your goal is to generate a complete workout plan in JSON format based on the user's request.

**RULES:**
1.  **JSON Output Only:** Your entire response must be a single, valid JSON object that conforms to the provided schema. Do not include any explanatory text, markdown, or anything outside of the JSON structure.
2.  **Structure:** The top-level object is an array of "Workout Stages".
3.  **Stages:** Every plan must include a ` + "`WARMUP`" + ` stage at the beginning and a ` + "`COOLDOWN`" + ` stage at the end. Between them, you can have ` + "`WORK`" + ` and ` + "`REST`" + ` stages.
4.  **Durations:** The ` + "`duration`" + ` of a stage MUST be the exact sum of the ` + "`duration`" + ` of all its exercises. This is critical. For ` + "`REST`" + ` stages, there is usually one exercise called "Rest" with a duration matching the stage duration.
5.  **Exercise Naming:** Use clear, concise exercise names in English (e.g., 'Jump Rope', 'Shadow Boxing', 'Burpees'). The app will handle translations.
6.  **Safety First:** If the user mentions an injury (e.g., "twisted ankle," "sore shoulder"), avoid exercises that would strain that body part. For an ankle injury, avoid jumping, running, etc.
`

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

func planSchema() schema {
	exercise := schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"name":     {Type: "STRING", Description: `Name of the exercise (e.g., "Jump Rope").`},
			"duration": {Type: "INTEGER", Description: "Duration of the exercise in seconds."},
		},
		Required: []string{"name", "duration"},
	}
	stage := schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"type": {
				Type:        "STRING",
				Description: "Type of the stage. Must be one of: 'WARMUP', 'WORK', 'REST', 'COOLDOWN'.",
				Enum:        stageTypeNames(),
			},
			"name":      {Type: "STRING", Description: `Name of the stage (e.g., "Round 1", "Warm-up").`},
			"duration":  {Type: "INTEGER", Description: "Total duration of the stage in seconds. MUST be the sum of durations of all exercises within this stage."},
			"exercises": {Type: "ARRAY", Description: "An array of exercises for this stage.", Items: &exercise},
		},
		Required: []string{"type", "name", "duration", "exercises"},
	}
	return schema{
		Type:        "ARRAY",
		Description: "The full workout plan, which is an array of workout stages.",
		Items:       &stage,
	}
}

func stageTypeNames() []string {
	names := make([]string, len(workout.AllStageTypes))
	for i, t := range workout.AllStageTypes {
		names[i] = t.String()
	}
	return names
}
