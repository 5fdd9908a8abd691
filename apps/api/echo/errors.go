package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/minicanvas/core"
)

// errorResponse maps err to a status code and a response body.
// ok is false for unexpected errors, which are answered with a 500.
func errorResponse(err error, translator ut.Translator) (code int, body interface{}, ok bool) {
	switch cause := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if herr, isHTTP := cause.Internal.(*echo.HTTPError); isHTTP {
			cause = herr
		}
		return cause.Code, cause.Message, true
	case validator.ValidationErrors:
		return http.StatusBadRequest, core.TranslateErrors(cause, translator), true
	case *core.ValidationError:
		if flds := cause.FieldMap(); flds != nil {
			return http.StatusBadRequest, flds, true
		}
		return http.StatusBadRequest, cause.Error(), true
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false
}

// newAppHTTPErrorHandler returns an echo.HTTPErrorHandler answering with JSON bodies.
// Unexpected errors are logged along with the request id.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code, body, ok := errorResponse(err, translator)
		if !ok {
			logger.Error("request failed", errors.Wrap(err, ctx.Request().Method+" "+ctx.Request().URL.Path), map[string]interface{}{
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
			})
		}

		if ctx.Echo().Debug {
			body = err.Error()
		}
		if msg, isStr := body.(string); isStr {
			body = echo.Map{"error": msg}
		}

		if ctx.Response().Committed {
			return
		}
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, body)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
