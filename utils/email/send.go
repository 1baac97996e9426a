package email

import (
	"gopkg.in/gomail.v2"

	"ppaxe-backend-controller/utils"
)

func newHtmlMessage(email string, subject string, htmlContent string) *gomail.Message {
	msg := gomail.NewMessage()

	from := globalConfig.SMTP.UserName
	if len(globalConfig.SMTP.Identity) != 0 {
		from = globalConfig.SMTP.Identity
	}

	msg.SetHeader("From", from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject)

	msg.SetBody("text/html", htmlContent)

	return msg
}

func SendHtml(email string, subject string, htmlContent string) error {
	if !Enabled() {
		return utils.WrapErrorf(ErrNotConfigured, "send to [%s]", email)
	}

	dialer := gomail.NewDialer(
		globalConfig.SMTP.Host,
		globalConfig.SMTP.Port,
		globalConfig.SMTP.UserName,
		globalConfig.SMTP.Password)

	if err := dialer.DialAndSend(newHtmlMessage(email, subject, htmlContent)); err != nil {
		return utils.WrapErrorf(err, "dial [%s:%d] and send fail", globalConfig.SMTP.Host, globalConfig.SMTP.Port)
	}

	return nil
}
