package models

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type ExerciseCategory string

const (
	ExerciseCardio      ExerciseCategory = "cardio"
	ExerciseStrength    ExerciseCategory = "strength"
	ExerciseFlexibility ExerciseCategory = "flexibility"
	ExerciseBalance     ExerciseCategory = "balance"
)

type Exercise struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Duration     int              `json:"duration"` // seconds
	Description  string           `json:"description"`
	Difficulty   Difficulty       `json:"difficulty"`
	Category     ExerciseCategory `json:"category"`
	Instructions []string         `json:"instructions"`
}

func (e Exercise) GetID() string { return e.ID }

type SessionState string

const (
	SessionIdle      SessionState = "idle"
	SessionRunning   SessionState = "running"
	SessionPaused    SessionState = "paused"
	SessionCompleted SessionState = "completed"
)

// ExerciseSession 当前训练会话快照，Idle 时 Exercise 为 nil
type ExerciseSession struct {
	State         SessionState `json:"state"`
	Exercise      *Exercise    `json:"exercise,omitempty"`
	IsPlaying     bool         `json:"isPlaying"`
	TimeRemaining int          `json:"timeRemaining"`
	CurrentStep   int          `json:"currentStep"`
	Clock         string       `json:"clock"`
}

func ExerciseCatalog() []Exercise {
	return []Exercise{
		{
			ID:          "1",
			Name:        "Gentle Walking",
			Duration:    600,
			Description: "Low-impact cardiovascular exercise perfect for daily health maintenance",
			Difficulty:  DifficultyBeginner,
			Category:    ExerciseCardio,
			Instructions: []string{
				"Start with 5 minutes of slow walking",
				"Gradually increase pace to comfortable level",
				"Maintain steady breathing",
				"Cool down with 2 minutes of slow walking",
			},
		},
		{
			ID:          "2",
			Name:        "Chair Exercises",
			Duration:    300,
			Description: "Safe seated exercises for seniors or those with mobility limitations",
			Difficulty:  DifficultyBeginner,
			Category:    ExerciseStrength,
			Instructions: []string{
				"Sit straight in a sturdy chair",
				"Perform arm circles (10 each direction)",
				"Do seated marching in place (20 steps)",
				"Shoulder blade squeezes (10 reps)",
				"Deep breathing exercises (5 breaths)",
			},
		},
		{
			ID:          "3",
			Name:        "Simple Stretching",
			Duration:    480,
			Description: "Basic stretches to improve flexibility and reduce stiffness",
			Difficulty:  DifficultyBeginner,
			Category:    ExerciseFlexibility,
			Instructions: []string{
				"Neck rolls (5 each direction)",
				"Shoulder shrugs (10 reps)",
				"Gentle spinal twists (5 each side)",
				"Ankle circles (10 each direction)",
				"Deep breathing and relaxation",
			},
		},
		{
			ID:          "4",
			Name:        "Balance Training",
			Duration:    360,
			Description: "Improve stability and prevent falls with simple balance exercises",
			Difficulty:  DifficultyIntermediate,
			Category:    ExerciseBalance,
			Instructions: []string{
				"Stand behind a chair for support",
				"Single leg stands (30 seconds each)",
				"Heel-to-toe walking (10 steps)",
				"Side leg raises (10 each side)",
				"Gentle cool down stretches",
			},
		},
	}
}
