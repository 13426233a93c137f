package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        Validationf("rating must be between 1 and 5"),
			wantStatus: http.StatusBadRequest,
			wantCode:   ValidationInvalidInput,
		},
		{
			name:       "not found",
			err:        NotFoundf("application %d not found", 7),
			wantStatus: http.StatusNotFound,
			wantCode:   ResourceNotFound,
		},
		{
			name:       "gorm record not found",
			err:        gorm.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   ResourceNotFound,
		},
		{
			name:       "state conflict",
			err:        StateConflictf("application 7 is approved, not pending"),
			wantStatus: http.StatusConflict,
			wantCode:   ResourceConflict,
		},
		{
			name:       "duplicate",
			err:        Duplicatef("already has a pending application"),
			wantStatus: http.StatusConflict,
			wantCode:   ResourceAlreadyExists,
		},
		{
			name:       "transaction failure",
			err:        TransactionFailed(assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantCode:   InternalDatabaseError,
		},
		{
			name:       "unknown error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Code)
		})
	}
}

func TestClassify_TransactionFailureHidesDetail(t *testing.T) {
	info := Classify(TransactionFailed(assert.AnError))
	assert.NotContains(t, info.Message, assert.AnError.Error())
}
