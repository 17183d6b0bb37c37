package handlers

import (
	"net/http"

	"github.com/alimgiray/charityfund/internal/middleware"
	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DonationHandler struct {
	donationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// CreateDonation records a donation, attributed to the logged in user if any
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var request models.DonationCreate
	if !bindJSON(c, &request) {
		return
	}

	var donor *uuid.UUID
	if session := middleware.GetSession(c); session != nil {
		id := session.UserID
		donor = &id
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), request, donor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}

// ListDonations returns every donation
func (h *DonationHandler) ListDonations(c *gin.Context) {
	donations, err := h.donationService.ListDonations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, donations)
}

// ListMyDonations returns the donations of the logged in user
func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	donations, err := h.donationService.ListUserDonations(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, donations)
}
