package controllers

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/middleware"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

func init() {
	// Report validation failures under the JSON field names clients send.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{Status: models.StatusSuccess, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, models.APIResponse{Status: models.StatusError, Error: msg})
}

// objectID parses the :id path parameter and writes a 400 when it is malformed.
func objectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindJSON binds the body into req and runs its binding tags. On failure it
// writes the 400 response and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status: models.StatusError,
			Error:  "validation failed",
			Fields: fields,
		})
		return false
	}
	fail(c, http.StatusBadRequest, "invalid JSON: "+err.Error())
	return false
}

// storeError maps a repository or service error onto the error envelope.
func storeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		fail(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg(action)
		fail(c, http.StatusInternalServerError, err.Error())
	}
}
