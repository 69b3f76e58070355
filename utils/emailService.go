package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"ldportal/config"
)

// SendEmail sends an HTML mail through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Printf("[EMAIL] Sender not configured, skipping mail %q to %v", subject, to)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: L&D Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("[EMAIL] Error sending %q to %v: %v", subject, to, err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the portal's mail layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E3A5F; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E3A5F; line-height: 1.6; }
			.content h2 { color: #1E3A5F; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2563EB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNING &amp; DEVELOPMENT</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated notification from the L&amp;D Portal.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to the L&D Portal"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account has been created. Browse the training catalog, enroll in
		programs and track your learning hours from your dashboard.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendTrainingApprovedEmail tells a creator their training went live.
func SendTrainingApprovedEmail(email, name, trainingTitle string) {
	subject := "Training Approved: " + trainingTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Great news! Your training <strong>%s</strong> has been approved and is now published.</p>
		<p>Employees can enroll from the catalog.</p>
	`, name, trainingTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Training Approved", body))
}

// SendTrainingRejectedEmail tells a creator their training was rejected.
func SendTrainingRejectedEmail(email, name, trainingTitle, reason string) {
	subject := "Training Rejected: " + trainingTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your training <strong>%s</strong> was rejected.</p>
		<div style="color: #dc3545; font-weight: bold;">Reason: %s</div>
		<p>Please make the necessary changes and submit it again.</p>
	`, name, trainingTitle, reason)

	go SendEmail([]string{email}, subject, getEmailTemplate("Training Rejected", body))
}

// SendEnrollmentEmail confirms an enrollment or assignment.
func SendEnrollmentEmail(email, name, trainingTitle string, assigned bool) {
	subject := "Enrollment Confirmed: " + trainingTitle
	lead := "You have successfully enrolled in"
	if assigned {
		subject = "Training Assigned: " + trainingTitle
		lead = "You have been assigned to"
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s <strong>%s</strong>.</p>
		<div class="info-box">
			Check your dashboard for the session schedule.
		</div>
	`, name, lead, trainingTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate(subject, body))
}

// SendCompletionEmail congratulates a user on finishing a training.
func SendCompletionEmail(email, name, trainingTitle string, hours float64) {
	subject := "Training Completed: " + trainingTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>%.1f learning hours</strong> have been added to your record.
		</div>
	`, name, trainingTitle, hours)

	go SendEmail([]string{email}, subject, getEmailTemplate("Training Completed", body))
}

// SendBadgeEmail congratulates a user on a new or upgraded badge.
func SendBadgeEmail(email, name, badgeType string, year int, hours float64) {
	subject := fmt.Sprintf("%s Badge Earned!", badgeType)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have earned a <strong>%s</strong> badge for
		completing <strong>%.1f learning hours</strong> in %d.</p>
	`, name, badgeType, hours, year)

	go SendEmail([]string{email}, subject, getEmailTemplate(subject, body))
}
