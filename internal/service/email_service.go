package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"kidventure/internal/models"
)

// EmailSender is the subset of the SES client the email service uses
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends moderation decision notifications to teachers via
// Amazon SES. With no from address configured it runs disabled: sends
// are logged and skipped so the rest of the app works without AWS.
type EmailService struct {
	client    EmailSender
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates the email service, disabled when fromEmail is empty
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendModerationDecision notifies a teacher that a moderation decision
// landed on their profile, course or activity
func (s *EmailService) SendModerationDecision(ctx context.Context, toEmail, toName, subjectTitle string, status models.ModerationStatus) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): moderation decision to %s", toEmail)
		return nil
	}
	if toEmail == "" {
		log.Printf("Skipping email send: no address for %s", toName)
		return nil
	}

	var verdict string
	switch status {
	case models.StatusActive, models.StatusApproved:
		verdict = "approved and is now live"
	case models.StatusRejected:
		verdict = "not approved this time"
	default:
		verdict = "updated to " + string(status)
	}

	subject := fmt.Sprintf("Update on %q", subjectTitle)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour submission %q has been reviewed and was %s.\n\nThe Kidventure Team",
		toName, subjectTitle, verdict,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your submission <strong>%s</strong> has been reviewed and was %s.</p><p>The Kidventure Team</p>",
		toName, subjectTitle, verdict,
	)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
