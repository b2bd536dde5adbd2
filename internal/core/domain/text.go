package domain

// TextTask identifies which remote text stage a request belongs to.
type TextTask string

// Available text tasks, in pipeline order.
const (
	// TaskEnhance cleans and restructures raw page text.
	TaskEnhance TextTask = "enhance"

	// TaskFormat normalises whitespace and layout of enhanced text.
	TaskFormat TextTask = "format"

	// TaskSummarise condenses the full document text.
	TaskSummarise TextTask = "summarise"
)

// IsValid returns true if the task is recognised.
func (t TextTask) IsValid() bool {
	switch t {
	case TaskEnhance, TaskFormat, TaskSummarise:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t TextTask) String() string {
	return string(t)
}

// TextRequest is a single call to a text service.
type TextRequest struct {
	Task TextTask
	Text string
}
