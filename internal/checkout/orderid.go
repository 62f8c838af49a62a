package checkout

import (
	"fmt"
	"math/rand"
	"time"
)

const orderIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderID builds a human-scannable order token like TRB-240615-X7K2:
// prefix, YYMMDD date fragment, four random base36 characters. Uniqueness is
// probabilistic only. That is acceptable while orders live nowhere but an
// email inbox; if orders ever get a backing store, this must be replaced with
// a collision-checked scheme.
func GenerateOrderID(prefix string, now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderIDCharset[rand.Intn(len(orderIDCharset))]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), suffix)
}
