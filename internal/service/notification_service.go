package service

import (
	"context"
	"fmt"

	"kine-booking-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Mail is an outbound email message.
type Mail struct {
	Subject string
	Body    string
	To      []string
}

// Sender is the outbound mail transport. Implementations must return an
// error on delivery failure; the caller decides whether that failure is
// fatal for the request.
type Sender interface {
	Send(ctx context.Context, m Mail) error
}

// NotificationService composes and dispatches the appointment emails.
// Dispatch is synchronous and happens after the state-changing
// transaction has committed, so a delivery failure never rolls back
// state but does surface to the caller.
type NotificationService struct {
	sender Sender
	log    *logrus.Logger
}

func NewNotificationService(sender Sender, log *logrus.Logger) *NotificationService {
	return &NotificationService{sender: sender, log: log}
}

// NotifyAppointmentRequested mails the kinesiologist about a new pending
// appointment created by a patient.
func (s *NotificationService) NotifyAppointmentRequested(ctx context.Context, appointment *entity.Appointment, kine *entity.KinesiologistProfile, patient *entity.PatientProfile) error {
	subject, body := composeAppointmentRequested(appointment, kine, patient)
	if err := s.sender.Send(ctx, Mail{Subject: subject, Body: body, To: []string{kine.User.Email}}); err != nil {
		s.log.Errorf("Failed to notify kinesiologist %s: %+v", kine.UserID, err)
		return err
	}
	return nil
}

// NotifyStatusSimple mails the patient after a confirm/cancel update,
// using the short label format.
func (s *NotificationService) NotifyStatusSimple(ctx context.Context, appointment *entity.Appointment) error {
	subject, body := composeStatusSimple(appointment)
	to := appointment.Patient.User.Email
	if err := s.sender.Send(ctx, Mail{Subject: subject, Body: body, To: []string{to}}); err != nil {
		s.log.Errorf("Failed to notify patient %s: %+v", appointment.PatientID, err)
		return err
	}
	return nil
}

// NotifyStatusDetail mails the patient after a general status update,
// with a status-specific message and the kinesiologist's latest comment
// when present.
func (s *NotificationService) NotifyStatusDetail(ctx context.Context, appointment *entity.Appointment) error {
	subject, body := composeStatusDetail(appointment)
	to := appointment.Patient.User.Email
	if err := s.sender.Send(ctx, Mail{Subject: subject, Body: body, To: []string{to}}); err != nil {
		s.log.Errorf("Failed to notify patient %s: %+v", appointment.PatientID, err)
		return err
	}
	return nil
}

func composeAppointmentRequested(a *entity.Appointment, kine *entity.KinesiologistProfile, patient *entity.PatientProfile) (subject, body string) {
	subject = "Nueva solicitud de cita"
	body = fmt.Sprintf(
		"Hola %s,\n\n"+
			"El paciente %s ha solicitado una cita.\n\n"+
			"Fecha: %s\n"+
			"Hora: %s - %s\n\n"+
			"Por favor ingresa al panel para confirmar o rechazar la cita.",
		kine.User.FullName,
		patient.User.FullName,
		a.Date.Format("2006-01-02"),
		a.StartTime, a.EndTime,
	)
	return subject, body
}

func composeStatusSimple(a *entity.Appointment) (subject, body string) {
	var label string
	if a.Status == entity.AppointmentStatusConfirmed {
		label = "CONFIRMADA"
	} else {
		label = "CANCELADA"
	}

	subject = fmt.Sprintf("Tu cita ha sido %s", label)
	body = fmt.Sprintf(
		"Hola %s,\n\n"+
			"Tu cita con %s ha sido %s.\n\n"+
			"Fecha: %s\n"+
			"Hora: %s - %s\n\n"+
			"Gracias por usar Centro de Salud y Bienestar.",
		a.Patient.User.FullName,
		a.Kinesiologist.Name,
		label,
		a.Date.Format("2006-01-02"),
		a.StartTime, a.EndTime,
	)
	return subject, body
}

func composeStatusDetail(a *entity.Appointment) (subject, body string) {
	var statusTxt, extra string
	switch a.Status {
	case entity.AppointmentStatusConfirmed:
		statusTxt = "CONFIRMADA"
		extra = "Tu hora médica fue confirmada."
	case entity.AppointmentStatusCancelled, entity.AppointmentStatusRejected:
		statusTxt = "RECHAZADA / CANCELADA"
		extra = "Tu hora médica fue rechazada/cancelada. Puedes agendar otra hora."
	case entity.AppointmentStatusCompleted:
		statusTxt = "FINALIZADA"
		extra = "Tu sesión fue marcada como realizada."
	default:
		statusTxt = fmt.Sprintf("Estado actualizado: %s", a.Status)
		extra = "Se actualizó el estado de tu hora."
	}

	commentLine := ""
	if a.KineComment != nil && *a.KineComment != "" {
		commentLine = fmt.Sprintf("\n\nComentario del kinesiólogo:\n%s", *a.KineComment)
	}

	subject = fmt.Sprintf("Estado de tu hora médica: %s", statusTxt)
	body = fmt.Sprintf(
		"Hola %s,\n\n"+
			"%s\n\n"+
			"Kinesiólogo: %s\n"+
			"Fecha: %s\n"+
			"Hora: %s - %s\n"+
			"Estado: %s"+
			"%s\n\n"+
			"Centro de Salud y Bienestar",
		a.Patient.User.FullName,
		extra,
		a.Kinesiologist.Name,
		a.Date.Format("2006-01-02"),
		a.StartTime, a.EndTime,
		a.Status,
		commentLine,
	)
	return subject, body
}
