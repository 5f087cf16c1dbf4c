package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"

	"github.com/givehub/escrow.api/helpers"
)

// UserAuthenticationInterceptor checks that the gateway has authenticated the
// caller and adds their user ID to the request context
func UserAuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check headers for identity type and identity
		identityType := helpers.GetAuthorisedIdentityType(r)
		if identityType != helpers.Oauth2IdentityType {
			log.Error(fmt.Errorf("authentication interceptor unauthorised: not oauth2 identity type"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		identity := helpers.GetAuthorisedIdentity(r)
		if identity == "" {
			log.Error(fmt.Errorf("authentication interceptor unauthorised: no authorised identity"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerID returns the authenticated user ID added to the context by
// UserAuthenticationInterceptor
func CallerID(r *http.Request) string {
	id, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	return id
}
