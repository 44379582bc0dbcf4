package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// GateHandlers handles gate-verification HTTP requests.
type GateHandlers struct {
	verificationSvc domain.VerificationService
}

// NewGateHandlers creates new gate handlers.
func NewGateHandlers(verificationSvc domain.VerificationService) *GateHandlers {
	return &GateHandlers{verificationSvc: verificationSvc}
}

// VerifyRequest represents a gate verification request. Field names follow
// the upstream campus API contract (camelCase).
type VerifyRequest struct {
	AdmissionNumber string `json:"admissionNumber" binding:"required"`
	Course          string `json:"course" binding:"required"`
	Code            string `json:"code,omitempty"`
}

// Verify handles POST /gate/verify.
func (h *GateHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.verificationSvc.Verify(c.Request.Context(), domain.VerificationRequest{
		AdmissionNumber: req.AdmissionNumber,
		Course:          req.Course,
		Code:            req.Code,
		AgentID:         agentID(c),
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "Verification failed. Please try again."
		switch {
		case errors.Is(err, domain.ErrStudentNotFound), errors.Is(err, domain.ErrNoFeeRecords):
			status = http.StatusNotFound
			message = err.Error()
		case errors.Is(err, domain.ErrCourseMismatch), errors.Is(err, domain.ErrNoExpiryConfigured):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, domain.ErrCodeInvalid):
			status = http.StatusUnauthorized
			message = err.Error()
		}
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	if result.RequiresCode {
		c.JSON(http.StatusOK, gin.H{
			"requiresCode": true,
			"codeSent":     result.CodeSent,
			"message":      result.Message,
		})
		return
	}

	body := gin.H{
		"success":   result.Success,
		"isExpired": result.IsExpired,
		"student": gin.H{
			"admissionNumber": result.Student.AdmissionNumber,
			"name":            result.Student.FullName(),
			"course":          result.Student.Course,
			"courseCode":      result.Student.CourseCode,
		},
		"expiryDate":         result.ExpiryDate,
		"verificationTime":   result.VerificationTime,
		"status":             result.Status,
		"balance":            result.Balance,
		"verificationsToday": result.VerificationsToday,
		"message":            result.Message,
	}
	if result.Warning != "" {
		body["warning"] = result.Warning
		body["previousVerificationTime"] = result.PreviousTime
	}
	c.JSON(http.StatusOK, body)
}

// History handles GET /gate/attempts/:admissionNumber for audit views.
func (h *GateHandlers) History(c *gin.Context) {
	admissionNumber := c.Param("admissionNumber")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.verificationSvc.History(c.Request.Context(), admissionNumber, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load attempt history."})
		return
	}

	attempts := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		attempts = append(attempts, gin.H{
			"receiptId":        e.ReceiptID,
			"admissionNumber":  e.AdmissionNumber,
			"verifiedAt":       e.VerifiedAt,
			"verificationTime": e.VerifiedTime,
			"status":           e.Outcome,
			"expirySnapshot":   e.ExpirySnapshot,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "attempts": attempts})
}

// agentID extracts the verifying agent's identity set by the auth middleware.
func agentID(c *gin.Context) uint {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	id, _ := strconv.ParseUint(s, 10, 64)
	return uint(id)
}
