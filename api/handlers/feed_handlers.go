package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/api/middleware"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// weightOverridePrefix marks query params carrying per-request factor
// weight overrides, e.g. w.recency=0.5.
const weightOverridePrefix = "w."

// GetFeedHandler godoc
// @Summary      Get personalized feed
// @Description  Generate one probability-sampled feed page. Anonymous callers get the non-personalized baseline.
// @Tags         feed
// @Param        limit     query  int     false  "Page size (default 20)"
// @Param        offset    query  int     false  "Sampled items to skip"
// @Param        seed      query  int     false  "RNG seed for reproducible sampling"
// @Param        political query  bool    false  "Only political posts"
// @Param        tags      query  []string false "Tags (OR match)"
// @Param        w.recency query  number  false  "Override for the recency weight (same for reputation, relationship, topicSimilarity, randomness)"
// @Produce      json
// @Success      200  {object}  dto.FeedResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Security     BearerAuth
// @Router       /feed [get]
func GetFeedHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := services.FeedRequest{}
		req.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
		req.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
		req.PoliticalOnly, _ = strconv.ParseBool(c.DefaultQuery("political", "false"))
		req.Tags = c.QueryArray("tags")

		if raw := c.Query("seed"); raw != "" {
			seed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO("seed must be an integer"))
				return
			}
			req.Seed = &seed
		}

		overrides, err := parseWeightOverrides(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO(err.Error()))
			return
		}
		req.WeightOverrides = overrides

		if userID, ok := middleware.CurrentUserID(c); ok {
			req.ViewerID = userID.Hex()
		}

		resp, err := svc.Generate(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, feed.ErrUnknownWeightKey) || errors.Is(err, feed.ErrInvalidWeightValue) {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// parseWeightOverrides collects the w.* query params. Value parsing
// fails fast here; key validation is the engine's job so unknown-key
// rejection stays in one place.
func parseWeightOverrides(c *gin.Context) (map[string]float64, error) {
	var overrides map[string]float64
	for key, values := range c.Request.URL.Query() {
		if !strings.HasPrefix(key, weightOverridePrefix) || len(values) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return nil, errors.New("weight override " + key + " must be a number")
		}
		if overrides == nil {
			overrides = map[string]float64{}
		}
		overrides[strings.TrimPrefix(key, weightOverridePrefix)] = v
	}
	return overrides, nil
}

// GetTrendingHandler godoc
// @Summary      Get trending posts
// @Description  Public engagement-ranked list, identical for all callers
// @Tags         feed
// @Param        window  query  int  false  "Window in hours (default 24)"
// @Param        limit   query  int  false  "Page size (default 20)"
// @Param        offset  query  int  false  "Items to skip"
// @Produce      json
// @Success      200  {object}  dto.TrendingResponse
// @Router       /feed/trending [get]
func GetTrendingHandler(svc *services.TrendingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		window, _ := strconv.Atoi(c.DefaultQuery("window", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		resp, err := svc.Trending(c.Request.Context(), window, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
