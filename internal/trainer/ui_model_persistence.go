package trainer

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/lowaak/hiit-timer/internal/workout"
)

const uiStateFileName = "ui_state.json"

type uiModelPersistenceData struct {
	Language      string            `json:"language,omitempty"`
	LastWorkoutID workout.WorkoutID `json:"last_workout_id,omitempty"`
}

// uiModelPersistence keeps UI preferences across runs. Failures are logged
// and otherwise ignored: losing a preference is never fatal.
type uiModelPersistence struct {
	filePath string
	data     uiModelPersistenceData
	logger   *log.Logger
}

func newUIModelPersistence(dataDir string, logger *log.Logger) *uiModelPersistence {
	p := &uiModelPersistence{
		filePath: filepath.Join(dataDir, uiStateFileName),
		logger:   logger,
	}
	p.load()
	return p
}

func (p *uiModelPersistence) getLanguage() string {
	return p.data.Language
}

func (p *uiModelPersistence) setLanguage(lang string) {
	if p.data.Language == lang {
		return
	}
	p.logger.Printf("UIModelPersistence: setLanguage -> %q", lang)
	p.data.Language = lang
	p.save()
}

func (p *uiModelPersistence) getLastWorkoutID() workout.WorkoutID {
	return p.data.LastWorkoutID
}

func (p *uiModelPersistence) setLastWorkoutID(id workout.WorkoutID) {
	if p.data.LastWorkoutID == id {
		return
	}
	p.logger.Printf("UIModelPersistence: setLastWorkoutID -> %q", id)
	p.data.LastWorkoutID = id
	p.save()
}

func (p *uiModelPersistence) load() {
	p.data = uiModelPersistenceData{}
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		p.logger.Printf("UIModelPersistence: load %s (no existing file)", p.filePath)
		return
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		p.logger.Printf("UIModelPersistence: load %s failed to parse: %v", p.filePath, err)
		p.data = uiModelPersistenceData{}
		return
	}
	p.logger.Printf("UIModelPersistence: load %s -> %+v", p.filePath, p.data)
}

func (p *uiModelPersistence) save() {
	if err := os.MkdirAll(filepath.Dir(p.filePath), 0755); err != nil {
		p.logger.Printf("UIModelPersistence: save mkdir failed: %v", err)
		return
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		p.logger.Printf("UIModelPersistence: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(p.filePath, raw, 0644); err != nil {
		p.logger.Printf("UIModelPersistence: save %s failed: %v", p.filePath, err)
		return
	}
	p.logger.Printf("UIModelPersistence: save %s -> %+v", p.filePath, p.data)
}
