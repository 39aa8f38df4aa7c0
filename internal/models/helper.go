package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&CourseMember{},
		&Exercise{},
		&ExerciseHint{},
		&SolutionEntry{},
		&Participation{},
		&Submission{},
		&Result{},
		&Feedback{},
		&Conversation{},
		&ConversationParticipant{},
		&Exam{},
		&StudentExam{},
	}
}
