package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var exposeErrorDetails bool

// SetErrorDetails controls whether 500 responses carry the underlying error message.
func SetErrorDetails(enabled bool) {
	exposeErrorDetails = enabled
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

type validatable interface {
	Validate() []string
}

// bindRequest decodes and validates the body, writing the 400 response itself on failure.
// Every failing field is reported, not only the first one.
func bindRequest(c *gin.Context, req validatable) bool {
	log := logger.Logger()

	details, err := decodeFields(c, req)
	if err != nil {
		log.Info("failed to decode request", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return false
	}
	if len(details) > 0 {
		log.Info("invalid request parameters", zap.String("path", c.FullPath()), zap.Strings("details", details))
		invalidParameters(c, details)
		return false
	}

	if details := req.Validate(); len(details) > 0 {
		invalidParameters(c, details)
		return false
	}

	return true
}

type fieldDetail struct {
	index int
	text  string
}

// decodeFields fills req one field at a time so a type error in one field does not hide the
// others, then runs the binding validator. Details come back in struct field order. The error
// is only set when the body is not a JSON object.
func decodeFields(c *gin.Context, req validatable) ([]string, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("request body is null")
	}

	v := reflect.ValueOf(req).Elem()
	t := v.Type()

	order := make(map[string]int, t.NumField())
	failed := make(map[string]bool)
	var collected []fieldDetail

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonFieldName(sf)
		if !sf.IsExported() || name == "" {
			continue
		}
		order[name] = i

		value, ok := lookupField(fields, name)
		if !ok {
			continue
		}

		target := reflect.New(sf.Type)
		if err := json.Unmarshal(value, target.Interface()); err != nil {
			failed[name] = true
			collected = append(collected, fieldDetail{index: i, text: typeErrorDetail(name, sf.Type, err)})
			continue
		}
		v.Field(i).Set(target.Elem())
	}

	if err := binding.Validator.ValidateStruct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		for _, fe := range fieldErrs {
			name := strings.SplitN(fe.Field(), "[", 2)[0]
			if failed[name] {
				continue
			}
			collected = append(collected, fieldDetail{index: order[name], text: fieldErrorDetail(fe)})
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	details := make([]string, len(collected))
	for i, d := range collected {
		details[i] = d.text
	}
	return details, nil
}

func jsonFieldName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// lookupField matches keys the way encoding/json does: exact first, then case-insensitive.
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := fields[name]; ok {
		return value, true
	}
	for key, value := range fields {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func typeErrorDetail(name string, fieldType reflect.Type, err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be %s", name, jsonTypeName(fieldType))
	}

	want := jsonTypeName(typeErr.Type)
	if isInteger(typeErr.Type) && strings.HasPrefix(typeErr.Value, "number") {
		want = "an integer"
	}

	base := derefType(fieldType)
	if base.Kind() == reflect.Slice && derefType(typeErr.Type) != base {
		return fmt.Sprintf("each %s item must be %s", name, want)
	}
	return fmt.Sprintf("%s must be %s", name, want)
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func isInteger(t reflect.Type) bool {
	switch derefType(t).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func jsonTypeName(t reflect.Type) string {
	switch derefType(t).Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return "a number"
	}
}

func fieldErrorDetail(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "unique":
		return fe.Field() + " must not contain duplicates"
	default:
		return fe.Field() + " is invalid"
	}
}

func invalidParameters(c *gin.Context, details []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid parameters",
		"details": details,
	})
}

func internalError(c *gin.Context, message string, err error) {
	logger.Logger().Error(message, zap.String("path", c.FullPath()), zap.Error(err))

	body := gin.H{"error": message}
	if exposeErrorDetails {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// parseTimestamp accepts RFC 3339 timestamps, the ISO 8601 profile clients send.
func parseTimestamp(field string, value *string, details *[]string) time.Time {
	if value == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		*details = append(*details, field+" must be a string (ISO 8601 format)")
		return time.Time{}
	}
	return t.UTC()
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// authorizeUser rejects requests whose body names a different user than the access token.
func authorizeUser(c *gin.Context, userID int64) bool {
	tokenUser, ok := middleware.AuthenticatedUser(c)
	if ok && tokenUser != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "user_id does not match access token"})
		return false
	}
	return true
}
