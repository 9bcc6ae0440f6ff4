package utils

import (
	"certvault/config"
	"fmt"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through SMTP
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: CertVault <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the standard CertVault layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.content h2 { color: #1A2B4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4C7DD0; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CERTVAULT</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 CertVault. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to CertVault"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>CertVault</strong>!</p>
		<p>Your account has been created. Upload your first certificate to start climbing the leaderboard.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. OTP for password reset
func SendOTPEmail(email, otp string) {
	subject := "Your CertVault verification code"
	body := fmt.Sprintf(`
		<p>Your one-time verification code is:</p>
		<div class="info-box"><strong style="font-size: 22px; letter-spacing: 4px;">%s</strong></div>
		<p>This code is valid for 10 minutes. If you did not request it, you can safely ignore this email.</p>
	`, otp)

	go SendEmail([]string{email}, subject, getEmailTemplate("Verification Code", body))
}

// 3. Certificate verified (attestation or admin override)
func SendCertificateVerifiedEmail(email, name, certName string, weightage float64) {
	subject := "Certificate Verified: " + certName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your certificate <strong>%s</strong> has been verified.</p>
		<div class="info-box">
			<strong>Weightage earned:</strong> %.2f
		</div>
		<p>Check your dashboard for your updated rank.</p>
	`, name, certName, weightage)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate Verified", body))
}
