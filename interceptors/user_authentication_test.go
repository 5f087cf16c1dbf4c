package interceptors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/givehub/escrow.api/helpers"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitUserAuthenticationInterceptor(t *testing.T) {
	Convey("No identity type", t, func() {
		req := httptest.NewRequest("GET", "/escrow/esc-1", nil)
		w := httptest.NewRecorder()
		handler := UserAuthenticationInterceptor(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("next handler should not be called")
		}))
		handler.ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusUnauthorized)
	})

	Convey("Identity type not oauth2", t, func() {
		req := httptest.NewRequest("GET", "/escrow/esc-1", nil)
		req.Header.Set("GH-Identity-Type", "key")
		req.Header.Set("GH-Identity", "user-1")
		w := httptest.NewRecorder()
		handler := UserAuthenticationInterceptor(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("next handler should not be called")
		}))
		handler.ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusUnauthorized)
	})

	Convey("No identity", t, func() {
		req := httptest.NewRequest("GET", "/escrow/esc-1", nil)
		req.Header.Set("GH-Identity-Type", helpers.Oauth2IdentityType)
		w := httptest.NewRecorder()
		handler := UserAuthenticationInterceptor(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("next handler should not be called")
		}))
		handler.ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusUnauthorized)
	})

	Convey("Authenticated caller has their identity added to the context", t, func() {
		req := httptest.NewRequest("GET", "/escrow/esc-1", nil)
		req.Header.Set("GH-Identity-Type", helpers.Oauth2IdentityType)
		req.Header.Set("GH-Identity", "user-1")
		w := httptest.NewRecorder()

		var callerID string
		handler := UserAuthenticationInterceptor(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			callerID = CallerID(r)
		}))
		handler.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(callerID, ShouldEqual, "user-1")
	})
}

func TestUnitCallerID(t *testing.T) {
	Convey("CallerID is empty when no identity was intercepted", t, func() {
		req := httptest.NewRequest("GET", "/escrow/esc-1", nil)
		So(CallerID(req), ShouldBeEmpty)
	})
}
