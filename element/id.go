package element

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random UUID, or a timestamp+random id when the UUID source fails.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID()
	}
	return id.String()
}

func fallbackID() string {
	return "el-" + strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(rand.Uint64(), 36)
}
