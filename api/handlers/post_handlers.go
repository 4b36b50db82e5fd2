package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/api/middleware"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// CreatePostHandler godoc
// @Summary      Create post
// @Description  Store a new post for the authenticated author; enrichment (link preview, embedding) runs asynchronously
// @Tags         posts
// @Accept       json
// @Param        request  body  dto.CreatePostRequest  true  "Post content"
// @Produce      json
// @Success      201  {object}  dto.PostDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Security     BearerAuth
// @Router       /posts [post]
func CreatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponseDTO("authentication required"))
			return
		}

		var req dto.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseDTO(err.Error()))
			return
		}

		post, err := svc.CreatePost(c.Request.Context(), userID, req)
		if err != nil {
			if errors.Is(err, services.ErrAuthorNotFound) {
				c.JSON(http.StatusUnauthorized, dto.NewErrorResponseDTO(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// GetPostHandler godoc
// @Summary      Get post by id
// @Description  Get a single post by ObjectID
// @Tags         posts
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				c.JSON(http.StatusNotFound, dto.NewErrorResponseDTO("post not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// RecordViewHandler godoc
// @Summary      Record a post view
// @Description  Register one impression; the counter is applied asynchronously
// @Tags         posts
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      202  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Security     BearerAuth
// @Router       /posts/{id}/view [post]
func RecordViewHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Anonymous views count too; the zero ObjectID marks them.
		viewerID, _ := middleware.CurrentUserID(c)

		err := svc.RecordView(c.Request.Context(), c.Param("id"), viewerID)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				c.JSON(http.StatusNotFound, dto.NewErrorResponseDTO("post not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseDTO(err.Error()))
			return
		}
		c.JSON(http.StatusAccepted, dto.NewMessageResponseDTO("view recorded"))
	}
}
