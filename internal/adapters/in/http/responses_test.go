package http

import (
	"errors"
	"net/http"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error maps to 400",
			err:  errs.NewValueIsInvalidError("email"),
			want: http.StatusBadRequest,
		},
		{
			name: "required value maps to 400",
			err:  errs.NewValueIsRequiredError("username"),
			want: http.StatusBadRequest,
		},
		{
			name: "authentication error maps to 401",
			err:  errs.NewAuthenticationError("missing bearer token"),
			want: http.StatusUnauthorized,
		},
		{
			name: "current password mismatch maps to 401",
			err:  account.ErrCurrentPasswordMismatch,
			want: http.StatusUnauthorized,
		},
		{
			name: "access denied maps to 403",
			err:  errs.NewAccessDeniedError("only admins can list deliveries"),
			want: http.StatusForbidden,
		},
		{
			name: "not found maps to 404",
			err:  errs.NewObjectNotFoundError("deliveryId", "abc"),
			want: http.StatusNotFound,
		},
		{
			name: "active deliveries conflict maps to 409",
			err:  commands.ErrDriverHasActiveDeliveries,
			want: http.StatusConflict,
		},
		{
			name: "unclassified error maps to 500",
			err:  errors.New("connection reset"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusCodeFor(tt.err))
		})
	}
}
