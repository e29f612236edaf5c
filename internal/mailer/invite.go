package mailer

import (
	"fmt"
	"net/url"
)

// InviteEmail composes the notification sent to an invited email address.
// The acceptance link carries the email and code as query parameters.
func InviteEmail(clientURL, inviterName, teamName, toEmail, code string) Message {
	link := fmt.Sprintf(
		"%s/auth/accept-invite?code=%s&email=%s",
		clientURL,
		url.QueryEscape(code),
		url.QueryEscape(toEmail),
	)

	subject := fmt.Sprintf("%s has invited you to join %s", inviterName, teamName)

	html := fmt.Sprintf(
		`<p>%s has invited you to join the team <strong>%s</strong>.</p>`+
			`<p><a href="%s">Accept the invitation</a></p>`+
			`<p>If you weren't expecting this invitation, you can ignore this email.</p>`,
		inviterName, teamName, link,
	)

	text := fmt.Sprintf(
		"%s has invited you to join the team %s.\n\nAccept the invitation: %s\n",
		inviterName, teamName, link,
	)

	return Message{
		To:      toEmail,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}
}
