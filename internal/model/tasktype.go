package model

// TaskType is the kind of action a task asks for. Types are informational
// metadata; they never drive transition logic.
type TaskType string

// Clinician catalog.
const (
	TypeCallBack      TaskType = "CALL_BACK"
	TypeEmailReply    TaskType = "EMAIL_REPLY"
	TypeImagingReport TaskType = "IMAGING_REPORT"
	TypePortalMessage TaskType = "PORTAL_MESSAGE"
	TypeLetter        TaskType = "LETTER"
	TypeOtherAction   TaskType = "OTHER_ACTION"
)

// Administrative catalog.
const (
	TypePatientCallback       TaskType = "PATIENT_CALLBACK"
	TypeEmailResponse         TaskType = "EMAIL_RESPONSE"
	TypePortalResponse        TaskType = "PORTAL_RESPONSE"
	TypeResendForms           TaskType = "RESEND_FORMS"
	TypeFormFollowUp          TaskType = "FORM_FOLLOW_UP"
	TypeSendReceipt           TaskType = "SEND_RECEIPT"
	TypeOrderImaging          TaskType = "ORDER_IMAGING"
	TypeScheduleAppointment   TaskType = "SCHEDULE_APPOINTMENT"
	TypeConfirmAppointment    TaskType = "CONFIRM_APPOINTMENT"
	TypeRequestOutsideRecords TaskType = "REQUEST_OUTSIDE_RECORDS"
	TypeSendRecords           TaskType = "SEND_RECORDS"
	TypeUpdateContact         TaskType = "UPDATE_CONTACT"
	TypeDocumentRequest       TaskType = "DOCUMENT_REQUEST"
)

var clinicianTaskTypes = map[TaskType]bool{
	TypeCallBack:      true,
	TypeEmailReply:    true,
	TypeImagingReport: true,
	TypePortalMessage: true,
	TypeLetter:        true,
	TypeOtherAction:   true,
}

var adminTaskTypes = map[TaskType]bool{
	TypePatientCallback:       true,
	TypeEmailResponse:         true,
	TypePortalResponse:        true,
	TypeResendForms:           true,
	TypeFormFollowUp:          true,
	TypeSendReceipt:           true,
	TypeOrderImaging:          true,
	TypeScheduleAppointment:   true,
	TypeConfirmAppointment:    true,
	TypeRequestOutsideRecords: true,
	TypeSendRecords:           true,
	TypeUpdateContact:         true,
	TypeDocumentRequest:       true,
}

func (t TaskType) Valid() bool {
	return clinicianTaskTypes[t] || adminTaskTypes[t]
}

// ValidFor reports whether t belongs to the catalog of the given work queue.
func (t TaskType) ValidFor(owner OwnerType) bool {
	switch owner {
	case OwnerClinician:
		return clinicianTaskTypes[t]
	case OwnerAdmin:
		return adminTaskTypes[t]
	}
	return false
}
