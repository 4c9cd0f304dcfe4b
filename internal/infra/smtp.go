package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/naimp074/stock1/internal/config"
)

// Mailer envía facturas en PDF por correo. Un solo remitente (la cuenta
// SMTP del negocio), destinatario por venta.
type Mailer struct {
	cuenta string
	clave  string
	host   string
	addr   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		cuenta: cfg.SMTPUser,
		clave:  cfg.SMTPPassword,
		host:   cfg.SMTPHost,
		addr:   fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendFactura manda el correo con el PDF adjunto. Con rutaPDF vacía va solo
// el texto, para avisos sin comprobante.
func (m *Mailer) SendFactura(destinatario, asunto, cuerpo, rutaPDF string) error {
	msg := email.NewEmail()
	msg.From = m.cuenta
	msg.To = []string{destinatario}
	msg.Subject = asunto
	msg.Text = []byte(cuerpo)

	if rutaPDF != "" {
		if _, err := msg.AttachFile(rutaPDF); err != nil {
			return fmt.Errorf("mailer: adjuntar PDF: %w", err)
		}
	}

	return msg.Send(m.addr, smtp.PlainAuth("", m.cuenta, m.clave, m.host))
}
