// controllers/submission.go
package controllers

import (
	"net/http"

	"journal-editorial-api/config"
	"journal-editorial-api/models"
	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===================== SUBMISSION MANAGEMENT =====================

type CreateSubmissionRequest struct {
	Title          string            `json:"title" binding:"required"`
	Abstract       string            `json:"abstract" binding:"required"`
	Keywords       *string           `json:"keywords"`
	FileURL        *string           `json:"file_url"`
	OtherAuthors   []models.CoAuthor `json:"other_authors"`
	ReferencesText *string           `json:"references_text"`
	Status         string            `json:"status" binding:"omitempty,oneof=DRAFT SUBMITTED"`
}

// CreateSubmission creates a manuscript as DRAFT or SUBMITTED. Creating as
// SUBMITTED logs the first ledger entry and emails the author; a draft does
// neither until it is submitted.
func CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	submission, err := services.CreateSubmission(config.DB, actor, services.CreateSubmissionInput{
		Title:          req.Title,
		Abstract:       req.Abstract,
		Keywords:       req.Keywords,
		FileURL:        req.FileURL,
		OtherAuthors:   req.OtherAuthors,
		ReferencesText: req.ReferencesText,
		Status:         req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if submission.Status == models.StatusSubmitted {
		var author models.User
		if err := config.DB.Where("user_id = ?", actor.ID).First(&author).Error; err == nil {
			services.SendSubmissionReceived(config.DB, author, *submission)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmissions returns the caller's submissions; editors and admins see
// everything, optionally filtered by status.
func GetSubmissions(c *gin.Context) {
	actor := actorFromContext(c)
	status := c.Query("status")

	var submissions []models.Submission
	query := config.DB.Preload("Author").Preload("Issue")

	if !actor.IsEditorial() {
		query = query.Where("author_id = ?", actor.ID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("updated_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns a specific submission with its history ledger,
// newest entry first. Reviews ride along for editorial callers only, so
// reviewer identity never reaches the author.
func GetSubmission(c *gin.Context) {
	submissionID := c.Param("id")
	actor := actorFromContext(c)

	query := config.DB.Preload("Author").Preload("Issue").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	if actor.IsEditorial() {
		query = query.Preload("Reviews.Reviewer")
	}

	var submission models.Submission
	if err := query.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !actor.IsEditorial() && submission.AuthorID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// SubmitDraft moves the caller's draft into the vetting queue.
func SubmitDraft(c *gin.Context) {
	submissionID := c.Param("id")
	actor := actorFromContext(c)

	submission, err := services.TransitionSubmission(config.DB, services.TransitionRequest{
		SubmissionID: submissionID,
		Target:       models.StatusSubmitted,
		Actor:        actor,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var author models.User
	if err := config.DB.Where("user_id = ?", actor.ID).First(&author).Error; err == nil {
		services.SendSubmissionReceived(config.DB, author, *submission)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

type SubmitRevisionRequest struct {
	FileURL string `json:"file_url" binding:"required,url"`
}

// SubmitRevision accepts the author's revised manuscript and sends the
// submission back into the review loop.
func SubmitRevision(c *gin.Context) {
	submissionID := c.Param("id")

	var req SubmitRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	submission, err := services.TransitionSubmission(config.DB, services.TransitionRequest{
		SubmissionID: submissionID,
		Target:       models.StatusUnderReview,
		Actor:        actor,
		Set: map[string]interface{}{
			"file_url": req.FileURL,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}
