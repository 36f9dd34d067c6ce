package email

const (
	subjectFeedbackRequest = "How was your recent service visit?"
	subjectScheduleChange  = "Your service visit has been rescheduled"
)
