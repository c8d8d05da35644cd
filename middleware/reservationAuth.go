package middleware

import (
	"net/http"
	"strings"

	"realtalk/utils"

	"github.com/gin-gonic/gin"
)

// ReservationTokenMiddleware guards the requester's self-service routes. The
// token comes from the emailed link (?token=) or a bearer header and must
// have been issued for the reservation in the :id path parameter.
func ReservationTokenMiddleware(signer *utils.TokenSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "This link is missing its access token")
			return
		}

		id, err := signer.ExtractSubject(token, utils.ScopeReservation)
		if err != nil || id != c.Param("id") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "This link is invalid or has expired")
			return
		}

		c.Set("reservationID", id)
		c.Next()
	}
}
