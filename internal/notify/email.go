package notify

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

// EmailNotifier mails the assigned clinician when a task lands on their
// queue. It consumes domain events; the engine itself never talks SMTP.
type EmailNotifier struct {
	dialer     *gomail.Dialer
	from       string
	clinicians taskqueue.ClinicianDirectory
}

var _ taskqueue.EventPublisher = (*EmailNotifier)(nil)

func NewEmailNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, from string, clinicians taskqueue.ClinicianDirectory) *EmailNotifier {
	return &EmailNotifier{
		dialer:     gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:       from,
		clinicians: clinicians,
	}
}

// Publish sends asynchronously; a failed or skipped delivery never fails the
// mutation that produced the event.
func (n *EmailNotifier) Publish(event taskqueue.Event) {
	if event.Kind != taskqueue.EventTaskCreated && event.Kind != taskqueue.EventTaskReassigned {
		return
	}
	go func() {
		if err := n.send(event); err != nil {
			log.Printf("task notification email failed: %v", err)
		}
	}()
}

func (n *EmailNotifier) send(event taskqueue.Event) error {
	clinician, err := n.clinicians.LookupClinician(context.Background(), event.Task.AssignedClinicianID)
	if err != nil {
		return err
	}
	if clinician == nil || clinician.Email == "" {
		return nil
	}

	subject := "New task on your queue"
	if event.Kind == taskqueue.EventTaskReassigned {
		subject = "A task was reassigned to you"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", clinician.Email)
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>A %s task is waiting for you%s:</p>
		<p><strong>%s</strong></p>
		<p>Due: %s</p>
	`, clinician.Name, event.Task.Type, patientSuffix(event), event.Task.Description,
		event.Task.DueAt.Format("Mon Jan 2 15:04"))

	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send task email: %w", err)
	}
	return nil
}

func patientSuffix(event taskqueue.Event) string {
	if event.Task.PatientName == "" {
		return ""
	}
	return " for " + event.Task.PatientName
}
