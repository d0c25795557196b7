package planner

import (
	"math/rand"

	"github.com/me/studyplan/pkg/model"
)

// studyTips holds canned advice per difficulty level.
var studyTips = map[model.TaskDifficulty][]string{
	model.DifficultyEasy: {
		"Light review session - perfect for warming up!",
		"Use flashcards for quick memorization.",
		"Great task for a study break filler.",
	},
	model.DifficultyMedium: {
		"Focus for 25 minutes, then take a 5-minute break.",
		"Try explaining concepts aloud to reinforce learning.",
		"Mix practice problems with reading material.",
	},
	model.DifficultyHard: {
		"Break this into smaller chunks for better retention.",
		"Schedule this during your peak focus hours.",
		"Consider group study for complex topics.",
	},
}

// StudyTip returns a study tip appropriate to the task's difficulty.
func StudyTip(task *model.StudyTask) string {
	tips := studyTips[task.Difficulty]
	if len(tips) == 0 {
		tips = studyTips[model.DifficultyMedium]
	}
	return tips[rand.Intn(len(tips))]
}
