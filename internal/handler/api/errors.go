package api

import (
	"net/http"

	"club-roster/internal/handler/httperr"
	"club-roster/internal/infra"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/usecase"

	"github.com/gin-gonic/gin"
)

const HeaderDataSource = "X-Data-Source"

// abortWithQueryError maps usecase failures to HTTP statuses.
func abortWithQueryError(c *gin.Context, err error, msg string) {
	kind := ""
	if k, ok := infra.KindOf(err); ok {
		kind = string(k)
	}

	switch {
	case errs.Is(err, errs.ErrInvalidWindow), errs.Is(err, errs.ErrInvalidFilter):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, errs.ErrNoSnapshot):
		httperr.AbortWithKind(c, http.StatusServiceUnavailable, err, kind, "Upstream data unavailable", nil)
	default:
		httperr.AbortWithKind(c, http.StatusInternalServerError, err, kind, msg, nil)
	}
}

func setSource(c *gin.Context, source usecase.Source) {
	c.Header(HeaderDataSource, string(source))
}
