package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/constants"
)

// OffsetParams holds offset/limit pagination parameters for the chat
// history endpoint.
type OffsetParams struct {
	Offset int
	Limit  int
}

// GetOffsetParams extracts and clamps offset/limit from the query string.
func GetOffsetParams(c *gin.Context) OffsetParams {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultMessagePageSize)))

	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > constants.MaxMessagePageSize {
		limit = constants.DefaultMessagePageSize
	}

	return OffsetParams{
		Offset: offset,
		Limit:  limit,
	}
}
