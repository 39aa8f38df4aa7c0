package cache

import "fmt"

const keyPrefix = "participation-service"

// ResultFeedbackKey lives under the exercise so ExercisePattern also drops it
func ResultFeedbackKey(exerciseID, resultID uint) string {
	return fmt.Sprintf("%s:exercise:%d:result:%d:feedback", keyPrefix, exerciseID, resultID)
}

func ExerciseHintsKey(exerciseID uint) string {
	return fmt.Sprintf("%s:exercise:%d:hints", keyPrefix, exerciseID)
}

// ExercisePattern matches every key derived from the given exercise
func ExercisePattern(exerciseID uint) string {
	return fmt.Sprintf("%s:exercise:%d:*", keyPrefix, exerciseID)
}
