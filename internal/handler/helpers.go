package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/naimp074/stock1/internal/apierror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator no conoce decimal.Decimal; sin esto, tags como gt=0 sobre un
	// precio hacen panic con "Bad field type". Se valida sobre el float64.
	v.RegisterCustomTypeFunc(func(campo reflect.Value) interface{} {
		if d, ok := campo.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate deserializa el body y corre las tags de validación. Si algo
// falla escribe la respuesta y devuelve false; el handler solo hace return.
func bindAndValidate(c *gin.Context, destino interface{}) bool {
	if err := c.ShouldBindJSON(destino); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}

	err := validate.Struct(destino)
	if err == nil {
		return true
	}

	campos := make(map[string]string)
	if errores, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errores {
			campos[fe.Field()] = fe.Tag()
		}
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(campos))
	return false
}

// fallar responde un error con el sobre estándar.
func fallar(c *gin.Context, codigo int, mensaje string) {
	c.JSON(codigo, apierror.New(mensaje))
}

// parseID lee el path param :id como UUID; en caso de error ya deja escrito
// el 400.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
