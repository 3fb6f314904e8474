package httpapi

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"chatchat-order/order-svc/internal/domain"
)

// StaffAuth checks the Authorization header against a shared staff secret.
type StaffAuth struct {
	token string
}

func NewStaffAuth(token string) StaffAuth {
	return StaffAuth{token: token}
}

func (a StaffAuth) Verify(authorization string) error {
	if a.token == "" {
		return &domain.ConfigError{Component: "staff auth", Missing: []string{"STAFF_TOKEN"}}
	}
	// compare digests so the comparison time does not depend on header length
	got := sha256.Sum256([]byte(authorization))
	want := sha256.Sum256([]byte("Bearer " + a.token))
	if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

func (h *Handler) staffOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.Auth.Verify(r.Header.Get("Authorization")); err != nil {
			h.fail(w, r, err)
			return
		}
		next(w, r)
	}
}
