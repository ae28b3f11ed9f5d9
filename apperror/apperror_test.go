package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(Validation("driverId is required")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("Order not found")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("not yours")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("taken")))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(InvalidTransition(errors.New("no"))))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized("bad password")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("disk on fire")))
}

func TestInternalKeepsFaultMessage(t *testing.T) {
	cause := errors.New("sql: database is closed")
	err := Internal(fmt.Errorf("find order: %w", cause))

	assert.Equal(t, "find order: sql: database is closed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestInternalDoesNotRewrapTypedErrors(t *testing.T) {
	nf := NotFound("Order not found")
	assert.Same(t, nf, Internal(nf))
	assert.Nil(t, Internal(nil))
}
