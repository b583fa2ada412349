package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textError             = `error`
	textOk                = `ok`
	codeSuccess           = 200
	codeRedirect          = 303
	codeBadRequestError   = 400
	codeUnauthorizedError = 401
	codeValidationError   = 403
	codeNotFound          = 404
)

// Flash levels handed to the presentation layer alongside a redirect
// target.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
)

// LoginURL is where requests without a valid identity are sent.
// HomeURL is the neutral public page used when a role gate fails, so a
// rejected request learns nothing about the resource it was after.
const (
	LoginURL = "/login"
	HomeURL  = "/"
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int // not the http code
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a helper with an english-translating validator
// for field-level request validation.
func NewHTTPHelper() *HTTPHelper {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{
		Validate:   validate,
		Translator: translator,
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, codeBadRequestError, `badRequest`)
}

// ValidateRequest ...
// Run struct validation and send the field-level error response on
// failure. Returns true when the request is valid.
func (u *HTTPHelper) ValidateRequest(c *gin.Context, req interface{}) bool {
	if err := u.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			u.SendValidationError(c, validationErrors, req)
			return false
		}
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
		return false
	}
	return true
}

// SendValidationError ...
// Send validation error response to consumers. The submitted input is
// echoed back so the caller can correct and resubmit.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors, submitted interface{}) error {
	errorResponse := map[string][]string{}
	for _, err := range validationErrors {
		errKey := Underscore(err.Field())
		message := err.Tag()
		if u.Translator != nil {
			message = err.Translate(u.Translator)
		}
		errorResponse[errKey] = append(errorResponse[errKey], message)
	}

	return u.SendFieldValidationError(c, errorResponse, submitted)
}

// SendFieldValidationError ...
// Send a field → messages validation error, e.g. a duplicate IMO.
func (u *HTTPHelper) SendFieldValidationError(c *gin.Context, fields map[string][]string, submitted interface{}) error {
	if submitted == nil {
		submitted = u.EmptyJsonMap()
	}
	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         codeValidationError,
		"code_type":    `validationError`,
		"code_message": fields,
		"data":         map[string]interface{}{"submitted": submitted},
	})
	return nil
}

// SendUnauthenticated ...
// No identity on the request: point the caller at the login page.
func (u *HTTPHelper) SendUnauthenticated(c *gin.Context, message string) error {
	c.Header("Location", LoginURL)
	c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"code":         codeUnauthorizedError,
		"code_type":    `unAuthenticated`,
		"code_message": message,
		"data":         map[string]interface{}{"redirect": LoginURL},
	})
	return nil
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	c.JSON(http.StatusNotFound, map[string]interface{}{
		"code":         codeNotFound,
		"code_type":    `notFound`,
		"code_message": message,
		"data":         data,
	})
	return nil
}

// SendRedirect ...
// Hand the presentation layer a navigation instruction plus a flash
// message tagged success/warning/error. Used both after successful
// mutations and when a role gate turns a request away.
func (u *HTTPHelper) SendRedirect(c *gin.Context, target, level, message string, data interface{}) error {
	if data == nil {
		data = u.EmptyJsonMap()
	}
	c.Header("Location", target)
	c.JSON(http.StatusSeeOther, map[string]interface{}{
		"code":      codeRedirect,
		"code_type": `redirect`,
		"code_message": map[string]interface{}{
			"level":   level,
			"message": message,
		},
		"data": map[string]interface{}{
			"redirect": target,
			"result":   data,
		},
	})
	return nil
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, `success`)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	var resCode int
	if res.Code != 200 {
		resCode = http.StatusBadRequest
	} else {
		resCode = http.StatusOK
	}

	res.C.JSON(resCode, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}
