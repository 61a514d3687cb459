package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/neighborfit/backend/internal/domain"
	"github.com/neighborfit/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	rankingService *usecase.RankingService
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(rankingService *usecase.RankingService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// DemographicsRequest is the first questionnaire step
type DemographicsRequest struct {
	Age          domain.AgeBracket    `json:"age" binding:"required,oneof=18-25 26-35 36-45 46-55 55+"`
	Income       domain.IncomeBracket `json:"income" binding:"required,oneof=<50k 50k-75k 75k-100k 100k-150k 150k+"`
	FamilyStatus string               `json:"familyStatus" binding:"required,oneof=single couple young-family established-family empty-nesters"`
	WorkLocation domain.WorkLocation  `json:"workLocation" binding:"required,oneof=downtown suburban remote hybrid multiple"`
}

// PreferencesRequest is the importance rating step
type PreferencesRequest struct {
	Commute      int `json:"commutePriority" binding:"required,min=1,max=10"`
	Walkability  int `json:"walkabilityPriority" binding:"required,min=1,max=10"`
	Nightlife    int `json:"nightlifePriority" binding:"required,min=1,max=10"`
	CostOfLiving int `json:"costOfLivingPriority" binding:"required,min=1,max=10"`
	Safety       int `json:"safetyPriority" binding:"required,min=1,max=10"`
	Schools      int `json:"schoolsPriority" binding:"required,min=1,max=10"`
	Dining       int `json:"diningPriority" binding:"required,min=1,max=10"`
	Outdoors     int `json:"outdoorsPriority" binding:"required,min=1,max=10"`
	Culture      int `json:"culturePriority" binding:"required,min=1,max=10"`
	Community    int `json:"communityPriority" binding:"required,min=1,max=10"`
}

// LifestyleRequest is the lifestyle step. Unknown priority labels are
// rejected while decoding.
type LifestyleRequest struct {
	TransportMode    domain.TransportMode    `json:"transportMode" binding:"required,oneof=Car 'Public Transit' Walking/Biking Mixed"`
	SocialPreference domain.SocialPreference `json:"socialPreference" binding:"required,oneof='Quiet & Private' 'Moderately Social' 'Very Social' 'Community Focused'"`
	HousingType      domain.HousingType      `json:"housingType" binding:"required,oneof=Apartment/Condo Townhouse 'Single Family Home' 'Any Type'"`
	Priorities       []domain.Priority       `json:"priorities" binding:"max=5,unique"`
}

// AssessmentRequest is a completed questionnaire
type AssessmentRequest struct {
	Demographics DemographicsRequest `json:"demographics"`
	Preferences  PreferencesRequest  `json:"preferences"`
	Lifestyle    LifestyleRequest    `json:"lifestyle"`
}

// ToProfile converts the request into the domain profile
func (r AssessmentRequest) ToProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Demographics: domain.Demographics{
			Age:          r.Demographics.Age,
			Income:       r.Demographics.Income,
			FamilyStatus: r.Demographics.FamilyStatus,
			WorkLocation: r.Demographics.WorkLocation,
		},
		Preferences: domain.Preferences{
			Commute:      r.Preferences.Commute,
			Walkability:  r.Preferences.Walkability,
			Nightlife:    r.Preferences.Nightlife,
			CostOfLiving: r.Preferences.CostOfLiving,
			Safety:       r.Preferences.Safety,
			Schools:      r.Preferences.Schools,
			Dining:       r.Preferences.Dining,
			Outdoors:     r.Preferences.Outdoors,
			Culture:      r.Preferences.Culture,
			Community:    r.Preferences.Community,
		},
		Lifestyle: domain.Lifestyle{
			TransportMode:    r.Lifestyle.TransportMode,
			SocialPreference: r.Lifestyle.SocialPreference,
			HousingType:      r.Lifestyle.HousingType,
			Priorities:       r.Lifestyle.Priorities,
		},
	}
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "neighborfit-backend",
		"version":       "1.0.0",
		"neighborhoods": len(h.rankingService.Neighborhoods()),
	})
}

// RankMatches scores the catalog against a submitted questionnaire.
// POST /api/v1/matches?limit=N
func (h *Handler) RankMatches(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   domain.ErrInvalidRequest.Error(),
				Details: "limit must be a non-negative integer",
			})
			return
		}
		limit = n
	}

	var req AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   domain.ErrInvalidRequest.Error(),
			Details: err.Error(),
		})
		return
	}

	ranking, err := h.rankingService.Rank(c.Request.Context(), req.ToProfile(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranking)
}

// ListNeighborhoods returns the catalog in catalog order.
// GET /api/v1/neighborhoods
func (h *Handler) ListNeighborhoods(c *gin.Context) {
	items := h.rankingService.Neighborhoods()
	c.JSON(http.StatusOK, gin.H{
		"neighborhoods": items,
		"total":         len(items),
	})
}

// GetNeighborhood returns one catalog entry.
// GET /api/v1/neighborhoods/:id
func (h *Handler) GetNeighborhood(c *gin.Context) {
	n, err := h.rankingService.Neighborhood(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNeighborhoodNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
