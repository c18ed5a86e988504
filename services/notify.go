package services

import (
	"fmt"
	"html/template"
	"log"
	"os"

	"journal-editorial-api/config"
	"journal-editorial-api/models"

	"gorm.io/gorm"
)

// Notification kinds fired after committed transitions. Delivery is
// best-effort: a failure is logged and never rolls back or fails the
// transition that triggered it.
const (
	NotifySubmissionReceived = "submission-received"
	NotifyReviewerInvited    = "reviewer-invited"
	NotifyDecisionMade       = "decision-made"
	NotifyVettingRejected    = "vetting-rejected"
)

func publicURL() string {
	if url := os.Getenv("PUBLIC_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

func sendMailSafe(to []string, subject, html string) {
	if err := config.SendMail(to, subject, html); err != nil {
		log.Printf("notification email send failed (subject=%q to=%v): %v", subject, to, err)
	}
}

// createNotificationSafe writes the in-app notification row. Best-effort
// like the email: the caller's transition has already committed.
func createNotificationSafe(db *gorm.DB, userID, title, message, notifType string, submissionID *string) {
	n := models.Notification{
		UserID:              userID,
		Title:               title,
		Message:             message,
		Type:                notifType,
		RelatedSubmissionID: submissionID,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("in-app notification create failed (user=%s title=%q): %v", userID, title, err)
	}
}

func esc(s string) string { return template.HTMLEscapeString(s) }

// SendSubmissionReceived notifies the author that a submitted manuscript
// entered the vetting queue.
func SendSubmissionReceived(db *gorm.DB, author models.User, submission models.Submission) {
	subject := "Submission Received: JITTED"
	html := fmt.Sprintf(`
    <h1>Submission Received</h1>
    <p>Dear %s,</p>
    <p>Thank you for submitting your manuscript "<strong>%s</strong>" to the Journal of Information Technology and Teacher Education.</p>
    <p>Your submission has been received and will undergo initial vetting shortly.</p>
    <p>You can track the status of your submission in your <a href="%s/dashboard/author">dashboard</a>.</p>
    <br>
    <p>Best regards,</p>
    <p>The Editorial Team</p>
  `, esc(author.Name), esc(submission.Title), publicURL())

	sendMailSafe([]string{author.Email}, subject, html)
	createNotificationSafe(db, author.UserID, "Submission received",
		fmt.Sprintf("Your manuscript %q has entered initial vetting.", submission.Title),
		"success", &submission.SubmissionID)
}

// SendReviewerInvitation carries title and abstract only; the full
// manuscript stays behind the reviewer dashboard.
func SendReviewerInvitation(db *gorm.DB, reviewer models.User, submission models.Submission) {
	subject := "Review Invitation: JITTED"
	html := fmt.Sprintf(`
    <h1>Invitation to Review</h1>
    <p>Dear %s,</p>
    <p>We would like to invite you to review the following manuscript submitted to JITTED:</p>
    <p><strong>Title:</strong> %s</p>
    <p><strong>Abstract:</strong> %s</p>
    <p>Please log in to your <a href="%s/dashboard/reviewer">reviewer dashboard</a> to accept or decline this invitation.</p>
    <br>
    <p>Best regards,</p>
    <p>The Editorial Team</p>
  `, esc(reviewer.Name), esc(submission.Title), esc(submission.Abstract), publicURL())

	sendMailSafe([]string{reviewer.Email}, subject, html)
	createNotificationSafe(db, reviewer.UserID, "Review invitation",
		fmt.Sprintf("You have been invited to review %q.", submission.Title),
		"info", &submission.SubmissionID)
}

// SendDecision notifies the author of an editorial decision, including any
// editor comment.
func SendDecision(db *gorm.DB, author models.User, submission models.Submission, decision, comment string) {
	subject := fmt.Sprintf("Decision on Manuscript: %s", submission.Title)

	var decisionText string
	switch decision {
	case models.StatusAccepted:
		decisionText = "We are pleased to inform you that your manuscript has been <strong>ACCEPTED</strong> for publication."
	case models.StatusRejected:
		decisionText = "We regret to inform you that your manuscript has been <strong>REJECTED</strong>."
	case models.StatusRevisionRequested:
		decisionText = "Your manuscript requires <strong>REVISIONS</strong> before it can be reconsidered."
	default:
		decisionText = fmt.Sprintf("A decision of <strong>%s</strong> has been made.", esc(decision))
	}

	commentBlock := ""
	if comment != "" {
		commentBlock = fmt.Sprintf("<h3>Editor's Comments:</h3><p>%s</p>", esc(comment))
	}

	html := fmt.Sprintf(`
    <h1>Decision Notification</h1>
    <p>Dear %s,</p>
    <p>Regarding your submission "<strong>%s</strong>":</p>
    <p>%s</p>
    %s
    <p>Please log in to your <a href="%s/dashboard/author">dashboard</a> for more details.</p>
    <br>
    <p>Best regards,</p>
    <p>The Editorial Team</p>
  `, esc(author.Name), esc(submission.Title), decisionText, commentBlock, publicURL())

	sendMailSafe([]string{author.Email}, subject, html)
	createNotificationSafe(db, author.UserID, "Editorial decision",
		fmt.Sprintf("A decision has been made on %q.", submission.Title),
		"info", &submission.SubmissionID)
}

// SendVettingRejection fires only on vetting rejection; vetting approval
// sends nothing.
func SendVettingRejection(db *gorm.DB, author models.User, submission models.Submission) {
	subject := fmt.Sprintf("Update on Manuscript: %s", submission.Title)
	html := fmt.Sprintf(`
    <h1>Submission Update</h1>
    <p>Dear %s,</p>
    <p>Thank you for submitting "<strong>%s</strong>" to JITTED.</p>
    <p>After initial vetting, we regret to inform you that we are unable to proceed with your submission at this time. It may not meet our scope or submission guidelines.</p>
    <p>Please log in to your <a href="%s/dashboard/author">dashboard</a> for more details.</p>
    <br>
    <p>Best regards,</p>
    <p>The Editorial Team</p>
  `, esc(author.Name), esc(submission.Title), publicURL())

	sendMailSafe([]string{author.Email}, subject, html)
	createNotificationSafe(db, author.UserID, "Submission update",
		fmt.Sprintf("Your manuscript %q did not pass initial vetting.", submission.Title),
		"warning", &submission.SubmissionID)
}
