package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/janjikita/booking-service/internal/domain"
)

// Logger is the logging interface of the mailer.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Mailer sends customer-facing emails over SMTP. When no host is
// configured the mailer is a no-op, so local setups run without an
// SMTP server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger Logger
}

func New(host string, port int, username, password, from string, logger Logger) *Mailer {
	m := &Mailer{from: from, logger: logger}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, username, password)
	}
	return m
}

// SendAppointmentConfirmation emails the booking confirmation.
func (m *Mailer) SendAppointmentConfirmation(ctx context.Context, to string, apt *domain.Appointment, business *domain.Business, service *domain.Service) error {
	if m.dialer == nil {
		m.logger.Info("mailer: SMTP disabled, skipping confirmation for appointment=%s", apt.ID)
		return nil
	}

	subject := fmt.Sprintf("Booking dikonfirmasi - %s", business.Name)
	body := fmt.Sprintf(
		"Halo %s,\n\n"+
			"Booking Anda telah diterima.\n\n"+
			"Layanan: %s\n"+
			"Tanggal: %s\n"+
			"Jam: %s\n"+
			"Total: Rp %d\n\n"+
			"Sampai jumpa di %s!",
		apt.CustomerName,
		service.Name,
		apt.StartTime.Format(domain.DateFormat),
		apt.StartTime.Format(domain.TimeFormat),
		apt.TotalPrice,
		business.Name,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send confirmation for appointment=%s: %w", apt.ID, err)
	}

	m.logger.Info("mailer: sent confirmation for appointment=%s", apt.ID)
	return nil
}
