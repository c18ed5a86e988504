// controllers/reviewer.go
package controllers

import (
	"net/http"

	"journal-editorial-api/config"
	"journal-editorial-api/models"
	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
)

// GetMyReviews lists the caller's review assignments with the submission
// material they need to evaluate.
func GetMyReviews(c *gin.Context) {
	actor := actorFromContext(c)

	var reviews []models.Review
	if err := config.DB.Preload("Submission").
		Where("reviewer_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

type SubmitReviewRequest struct {
	Score          int    `json:"score" binding:"required,min=1,max=10"`
	Feedback       string `json:"feedback" binding:"required,min=10"`
	Recommendation string `json:"recommendation" binding:"required,oneof=ACCEPT REVISION REJECT"`
}

// SubmitReview records the evaluation on the caller's own review row. The
// submission's status is untouched; the editor acts on recommendations
// separately.
func SubmitReview(c *gin.Context) {
	reviewID := c.Param("id")

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	review, err := services.SubmitReview(config.DB, actor, reviewID, services.SubmitReviewInput{
		Score:          req.Score,
		Feedback:       req.Feedback,
		Recommendation: req.Recommendation,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
	})
}
