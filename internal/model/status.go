package model

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusOpen               TaskStatus = "OPEN"
	StatusInProgress         TaskStatus = "IN_PROGRESS"
	StatusWaitingOnClinician TaskStatus = "WAITING_ON_CLINICIAN"
	StatusWaitingOnPatient   TaskStatus = "WAITING_ON_PATIENT"
	StatusBlocked            TaskStatus = "BLOCKED"
	StatusCompleted          TaskStatus = "COMPLETED"
	StatusCancelled          TaskStatus = "CANCELLED"
)

var taskStatuses = map[TaskStatus]bool{
	StatusOpen:               true,
	StatusInProgress:         true,
	StatusWaitingOnClinician: true,
	StatusWaitingOnPatient:   true,
	StatusBlocked:            true,
	StatusCompleted:          true,
	StatusCancelled:          true,
}

var terminalStatuses = map[TaskStatus]bool{
	StatusCompleted: true,
	StatusCancelled: true,
}

func (s TaskStatus) Valid() bool {
	return taskStatuses[s]
}

// Terminal reports whether no further transitions are permitted from s.
func (s TaskStatus) Terminal() bool {
	return terminalStatuses[s]
}

// Active reports whether s is a valid, non-terminal status. Only active
// tasks can be overdue or mutated.
func (s TaskStatus) Active() bool {
	return taskStatuses[s] && !terminalStatuses[s]
}
