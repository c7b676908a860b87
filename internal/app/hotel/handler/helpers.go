package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// authEmail достает подтвержденный email, положенный auth middleware
func authEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get("email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Unauthorized access",
		})
		return "", false
	}

	email, ok := value.(string)
	if !ok || email == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Invalid identity in context",
		})
		return "", false
	}

	return email, true
}

// bindJSONStrict декодирует тело запроса, отклоняя неизвестные поля.
// Лишние поля в payload - ошибка клиента, а не повод их молча игнорировать.
func bindJSONStrict(c *gin.Context, obj interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(obj)
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
