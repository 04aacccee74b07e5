package usecase

import (
	"fmt"
	"strings"
	"time"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/pkg/mailer"
	"bootcamp-platform/pkg/utils"

	"go.uber.org/zap"
)

// NotificationService dispatches transactional email triggered by state
// transitions. Every method is fire-and-forget: the mail is sent on a
// background goroutine and a delivery failure is logged, never surfaced
// to the mutation that triggered it.
type NotificationService interface {
	SendVerificationEmail(email, code string)
	SendAdminApprovalRequest(fullname, email, code string)
	SendWelcomeEmail(email, fullname string)
	SendPasswordResetEmail(email, resetURL string)
	SendResetSuccessEmail(email string)
	SendRegistrationConfirmation(email, fullname, bootcampTitle string, startDate time.Time, endDate *time.Time)
	SendBootcampEndedEmail(email, fullname, bootcampTitle string)
	SendOrgProjectSubmission(fullname, email, bootcampTitle string, submissions []*entity.ProjectSubmission)
	SendUserProjectConfirmation(email, fullname, bootcampTitle string)
	SendProjectApprovedEmail(email, fullname, bootcampTitle string, projectNumber int)
	SendProjectRejectedEmail(email, fullname, bootcampTitle string, projectNumber int, feedback string)
	SendAllProjectsApprovedEmail(email, fullname, bootcampTitle string)
}

type notificationService struct {
	mailer *mailer.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewNotificationService(m *mailer.Mailer, config *utils.Config, log *zap.Logger) NotificationService {
	return &notificationService{
		mailer: m,
		config: config,
		log:    log.With(zap.String("service", "notification")),
	}
}

// FormatBootcampDates renders a bootcamp date range as "Jan 2, 2006" style
// text: a range when an end date exists, a start line otherwise.
func FormatBootcampDates(startDate time.Time, endDate *time.Time) string {
	const layout = "Jan 2, 2006"

	if endDate != nil {
		return fmt.Sprintf("%s – %s", startDate.Format(layout), endDate.Format(layout))
	}
	return fmt.Sprintf("Starts: %s", startDate.Format(layout))
}

func (s *notificationService) SendVerificationEmail(email, code string) {
	body := strings.ReplaceAll(verificationEmailTemplate, "{code}", code)
	s.dispatch(email, "Verify your email", body)
}

func (s *notificationService) SendAdminApprovalRequest(fullname, email, code string) {
	body := replaceAll(adminApprovalTemplate, map[string]string{
		"{fullname}": fullname,
		"{email}":    email,
		"{code}":     code,
	})
	// Goes to the company inbox, not the registrant
	s.dispatch(s.config.Company.Email, "Admin Signup Approval Request", body)
}

func (s *notificationService) SendWelcomeEmail(email, fullname string) {
	body := strings.ReplaceAll(welcomeEmailTemplate, "{fullname}", fullname)
	s.dispatch(email, "Welcome aboard", body)
}

func (s *notificationService) SendPasswordResetEmail(email, resetURL string) {
	body := strings.ReplaceAll(passwordResetRequestTemplate, "{resetURL}", resetURL)
	s.dispatch(email, "Reset your password", body)
}

func (s *notificationService) SendResetSuccessEmail(email string) {
	s.dispatch(email, "Password reset successfully", passwordResetSuccessTemplate)
}

func (s *notificationService) SendRegistrationConfirmation(email, fullname, bootcampTitle string, startDate time.Time, endDate *time.Time) {
	body := replaceAll(registrationConfirmationTemplate, map[string]string{
		"{fullname}":      fullname,
		"{bootcampTitle}": bootcampTitle,
		"{dateText}":      FormatBootcampDates(startDate, endDate),
	})
	s.dispatch(email, "Bootcamp Registration Confirmation", body)
}

func (s *notificationService) SendBootcampEndedEmail(email, fullname, bootcampTitle string) {
	body := replaceAll(bootcampEndedTemplate, map[string]string{
		"{fullname}":      fullname,
		"{bootcampTitle}": bootcampTitle,
	})
	s.dispatch(email, fmt.Sprintf("Bootcamp Completed - %s", bootcampTitle), body)
}

func (s *notificationService) SendOrgProjectSubmission(fullname, email, bootcampTitle string, submissions []*entity.ProjectSubmission) {
	replacements := map[string]string{
		"{fullname}":      fullname,
		"{email}":         email,
		"{bootcampTitle}": bootcampTitle,
	}
	for _, submission := range submissions {
		key := fmt.Sprintf("{project%dURL}", submission.ProjectNumber)
		replacements[key] = submission.FileURL
	}

	body := replaceAll(orgSubmissionTemplate, replacements)
	s.dispatch(s.config.Company.Email, fmt.Sprintf("New Project Submission - %s", bootcampTitle), body)
}

func (s *notificationService) SendUserProjectConfirmation(email, fullname, bootcampTitle string) {
	body := replaceAll(userSubmissionConfirmationTemplate, map[string]string{
		"{fullname}":      fullname,
		"{bootcampTitle}": bootcampTitle,
	})
	s.dispatch(email, "Your Project Submission Was Received", body)
}

func (s *notificationService) SendProjectApprovedEmail(email, fullname, bootcampTitle string, projectNumber int) {
	body := replaceAll(projectApprovedTemplate, map[string]string{
		"{fullname}":      fullname,
		"{bootcampTitle}": bootcampTitle,
		"{projectNumber}": fmt.Sprintf("%d", projectNumber),
	})
	s.dispatch(email, fmt.Sprintf("Project %d Approved - %s", projectNumber, bootcampTitle), body)
}

func (s *notificationService) SendProjectRejectedEmail(email, fullname, bootcampTitle string, projectNumber int, feedback string) {
	body := replaceAll(projectRejectedTemplate, map[string]string{
		"{fullname}":      fullname,
		"{bootcampTitle}": bootcampTitle,
		"{projectNumber}": fmt.Sprintf("%d", projectNumber),
		"{feedback}":      feedback,
	})
	s.dispatch(email, fmt.Sprintf("Project %d Rejected - %s", projectNumber, bootcampTitle), body)
}

func (s *notificationService) SendAllProjectsApprovedEmail(email, fullname, bootcampTitle string) {
	body := replaceAll(allProjectsApprovedTemplate, map[string]string{
		"{fullname}":      fullname,
		"{bootcampTitle}": bootcampTitle,
	})
	s.dispatch(email, fmt.Sprintf("All Projects Approved - %s", bootcampTitle), body)
}

// dispatch sends async; the HTTP response never waits on SMTP
func (s *notificationService) dispatch(to, subject, htmlBody string) {
	if to == "" {
		s.log.Warn("Notification skipped - no recipient", zap.String("subject", subject))
		return
	}

	// In debug mode just log instead of sending
	if s.config.App.Debug {
		s.log.Info("DEV MODE - notification not sent",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return
	}

	go func() {
		if err := s.mailer.SendHTML([]string{to}, subject, htmlBody); err != nil {
			s.log.Error("Failed to send notification",
				zap.Error(err),
				zap.String("to", to),
				zap.String("subject", subject),
			)
			return
		}

		s.log.Info("Notification sent",
			zap.String("to", to),
			zap.String("subject", subject),
		)
	}()
}

func replaceAll(template string, replacements map[string]string) string {
	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
