package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(echo.GET, "/", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestActorFromRequest_ValidHeaders(t *testing.T) {
	id := kernel.NewUUID()
	ctx, _ := newTestContext(t, map[string]string{
		HeaderUserID:   id.String(),
		HeaderUserRole: "Owner",
	})

	actor, err := actorFromRequest(ctx)
	require.NoError(t, err)
	assert.True(t, actor.ID().IsEqual(id))
	assert.Equal(t, user.Owner, actor.Role())
}

func TestActorFromRequest_MissingOrInvalidHeaders(t *testing.T) {
	testCases := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no headers", headers: nil},
		{name: "bad id", headers: map[string]string{HeaderUserID: "nope", HeaderUserRole: "Client"}},
		{name: "bad role", headers: map[string]string{HeaderUserID: kernel.NewUUID().String(), HeaderUserRole: "Admin"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := newTestContext(t, tc.headers)
			_, err := actorFromRequest(ctx)
			require.Error(t, err)
		})
	}
}

func TestWriteError_Mapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "order not found",
			err:        errs.NewObjectNotFoundError("order", kernel.NewUUID().String()),
			wantStatus: 404,
			wantBody:   "Order not found",
		},
		{
			name:       "dish not found",
			err:        errs.NewObjectNotFoundError("dish", kernel.NewUUID().String()),
			wantStatus: 404,
			wantBody:   "Dish not found",
		},
		{
			name:       "forbidden carries its message",
			err:        errs.NewAccessForbiddenError("You can not see that"),
			wantStatus: 403,
			wantBody:   "You can not see that",
		},
		{
			name:       "conflict carries its message",
			err:        errs.NewConflictError("This order already has a driver"),
			wantStatus: 409,
			wantBody:   "This order already has a driver",
		},
		{
			name:       "unknown errors fall back",
			err:        errors.New("pq: connection reset"),
			wantStatus: 500,
			wantBody:   "Could not create order",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newTestContext(t, nil)

			require.NoError(t, writeError(ctx, tc.err, "Could not create order"))
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.OK)
			assert.Equal(t, tc.wantBody, resp.Error)
		})
	}
}
