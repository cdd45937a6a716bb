package common

import (
	"strings"
	"time"

	"github.com/thanhpk/randstr"
)

const referralCodeLength = 8

func GetTimestamp() int64 {
	return time.Now().Unix()
}

// GenerateReferralCode returns an uppercase alphanumeric code. Uniqueness is
// enforced by the database column, callers retry on conflict.
func GenerateReferralCode() string {
	return strings.ToUpper(randstr.String(referralCodeLength))
}
