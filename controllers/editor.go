// controllers/editor.go
package controllers

import (
	"net/http"

	"journal-editorial-api/config"
	"journal-editorial-api/models"
	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== EDITORIAL WORKFLOW =====================

type VetRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVE REJECT"`
}

// VetSubmission performs initial vetting on a SUBMITTED manuscript. APPROVE
// sends it to review, REJECT is terminal. Only the rejection emails the
// author; approval is silent.
func VetSubmission(c *gin.Context) {
	submissionID := c.Param("id")

	var req VetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	target := models.StatusUnderReview
	if req.Action == "REJECT" {
		target = models.StatusRejected
	}

	submission, err := services.TransitionSubmission(config.DB, services.TransitionRequest{
		SubmissionID: submissionID,
		Target:       target,
		Actor:        actor,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if target == models.StatusRejected {
		var author models.User
		if err := config.DB.Where("user_id = ?", submission.AuthorID).First(&author).Error; err == nil {
			services.SendVettingRejection(config.DB, author, *submission)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

type AssignReviewerRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
}

// AssignReviewer invites a reviewer to a submission. The invitation email
// carries title and abstract only, never the manuscript itself.
func AssignReviewer(c *gin.Context) {
	submissionID := c.Param("id")

	var req AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	review, err := services.AssignReviewer(config.DB, actor, submissionID, req.ReviewerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if review.Reviewer != nil && review.Submission != nil {
		services.SendReviewerInvitation(config.DB, *review.Reviewer, *review.Submission)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review":  review,
	})
}

// RemoveReviewer withdraws a reviewer assignment. The row is hard-deleted
// and nothing lands in the history ledger.
func RemoveReviewer(c *gin.Context) {
	reviewID := c.Param("id")
	actor := actorFromContext(c)

	if err := services.RemoveReviewer(config.DB, actor, reviewID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reviewer removed"})
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=ACCEPT REJECT REVISION"`
	Comment  string `json:"comment"`
}

// MakeDecision records the editorial decision on a submission under review
// and emails the author, including any comment.
func MakeDecision(c *gin.Context) {
	submissionID := c.Param("id")

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	var target string
	switch req.Decision {
	case "ACCEPT":
		target = models.StatusAccepted
	case "REJECT":
		target = models.StatusRejected
	case "REVISION":
		target = models.StatusRevisionRequested
	}

	submission, err := services.TransitionSubmission(config.DB, services.TransitionRequest{
		SubmissionID: submissionID,
		Target:       target,
		Actor:        actor,
		Comment:      req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var author models.User
	if err := config.DB.Where("user_id = ?", submission.AuthorID).First(&author).Error; err == nil {
		services.SendDecision(config.DB, author, *submission, target, req.Comment)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetEditorDashboard returns submission counts per status for the editorial
// dashboard.
func GetEditorDashboard(c *gin.Context) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var counts []statusCount
	if err := config.DB.Model(&models.Submission{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	byStatus := make(map[string]int64, len(counts))
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"counts":  byStatus,
	})
}
