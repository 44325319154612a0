package handlers

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/rahafha1/project-manager-api/internal/errors"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

var registerOnce sync.Once

// registerValidators installs the custom binding tags used by request bodies.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
			return models.TaskStatus(fl.Field().String()).Valid()
		})
	})
}

// bindJSON decodes the body and reports failures as 400 with field details.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			apierrors.BadRequestWithDetails(c, "Invalid request body", details)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID parses a positive integer path parameter, answering 404 otherwise.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// pagination reads page and limit, answering 400 when either is malformed.
func pagination(c *gin.Context) (utils.PaginationParams, bool) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return utils.PaginationParams{}, false
	}
	return params, true
}
