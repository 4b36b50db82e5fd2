package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/api/middleware"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// ReactHandler godoc
// @Summary      React to a post
// @Description  Record one reaction (like, dislike, agree, disagree, share, report); counters apply asynchronously
// @Tags         reactions
// @Accept       json
// @Param        id       path  string               true  "Post ObjectID"
// @Param        request  body  dto.ReactionRequest  true  "Reaction kind"
// @Produce      json
// @Success      202  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Security     BearerAuth
// @Router       /posts/{id}/reactions [post]
func ReactHandler(svc *services.ReactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponseDTO("authentication required"))
			return
		}

		var req dto.ReactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO(err.Error()))
			return
		}

		err := svc.React(c.Request.Context(), userID, c.Param("id"), models.ReactionKind(req.Kind))
		switch {
		case err == nil:
			c.JSON(http.StatusAccepted, dto.NewMessageResponseDTO("reaction recorded"))
		case errors.Is(err, services.ErrInvalidReactionKind):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO(err.Error()))
		case errors.Is(err, services.ErrPostNotFound):
			c.JSON(http.StatusNotFound, dto.NewErrorResponseDTO("post not found"))
		case errors.Is(err, services.ErrAlreadyReacted):
			c.JSON(http.StatusConflict, dto.NewErrorResponseDTO(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
		}
	}
}

// UnreactHandler godoc
// @Summary      Withdraw a reaction
// @Description  Remove a previously recorded toggle reaction
// @Tags         reactions
// @Param        id    path  string  true  "Post ObjectID"
// @Param        kind  path  string  true  "Reaction kind"
// @Produce      json
// @Success      202  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Security     BearerAuth
// @Router       /posts/{id}/reactions/{kind} [delete]
func UnreactHandler(svc *services.ReactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponseDTO("authentication required"))
			return
		}

		err := svc.Unreact(c.Request.Context(), userID, c.Param("id"), models.ReactionKind(c.Param("kind")))
		switch {
		case err == nil:
			c.JSON(http.StatusAccepted, dto.NewMessageResponseDTO("reaction withdrawn"))
		case errors.Is(err, services.ErrInvalidReactionKind):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO(err.Error()))
		case errors.Is(err, services.ErrPostNotFound), errors.Is(err, services.ErrReactionNotFound):
			c.JSON(http.StatusNotFound, dto.NewErrorResponseDTO(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
		}
	}
}
