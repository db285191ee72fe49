package service

import (
	"fmt"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"syndicapp_backend/internals/configs"
)

// Mailer sends transactional email. Sending is best effort: a mail failure is
// logged and never propagated to the caller.
type Mailer struct{}

func NewMailer() *Mailer {
	return &Mailer{}
}

func (ml *Mailer) enabled() bool {
	return configs.MailHost != "" && configs.MailFrom != ""
}

func (ml *Mailer) send(to, subject, htmlBody string) {
	if !ml.enabled() {
		configs.Log.WithField("to", to).Debug("smtp non configuré, email ignoré")
		return
	}
	port, err := strconv.Atoi(configs.MailPort)
	if err != nil {
		port = 587
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", configs.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(configs.MailHost, port, configs.MailUser, configs.MailPass)
	if err := d.DialAndSend(msg); err != nil {
		configs.Log.WithError(err).WithField("to", to).Warn("échec d'envoi de l'email")
	}
}

// SendWelcome mails the initial credentials to a freshly created owner
// account.
func (ml *Mailer) SendWelcome(to, fullName, password string) {
	body := fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Votre compte propriétaire vient d'être créé par votre syndic.</p>
		<p>Identifiant : <b>%s</b><br/>Mot de passe provisoire : <b>%s</b></p>
		<p>Nous vous recommandons de changer ce mot de passe dès votre première connexion.</p>`,
		fullName, to, password)
	ml.send(to, "Bienvenue sur votre espace copropriété", body)
}
